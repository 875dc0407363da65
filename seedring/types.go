package seedring

import (
	"errors"

	"github.com/katalvlaran/haze/mix"
)

// Sentinel errors for ring operations.
var (
	// ErrNilRules is returned when Traverse is called without Rules.
	ErrNilRules = errors.New("seedring: rules are nil")

	// ErrPortalOutOfRange is returned when a doorway index is not in 0..N-1.
	ErrPortalOutOfRange = errors.New("seedring: portal index out of range")
)

// Seed is a single slot value of a Ring.
type Seed = uint32

// OrientationBit is the flag bit reserved by oriented seeds.
const OrientationBit Seed = 1 << 31

// offsetSpread decorrelates the per-offset keys when offsets are folded
// into the traversal hash (2^32 / golden ratio).
const offsetSpread Seed = 0x9e3779b9

// Rules is the traversal policy applied to every slot of a Ring.
//
// Implementations must satisfy, for all seeds s, b and offsets o:
//
//	Hash(Reverse(s)) == Hash(s)
//	Reverse(Reverse(s)) == s
//	Traverse(Traverse(b, h, o), h, o) == b
//
// Together these make Ring.Traverse self-inverse.
type Rules interface {
	// Hash mixes the seed of the doorway being traversed.
	Hash(s Seed) Seed

	// Reverse returns the far side of a doorway.
	Reverse(s Seed) Seed

	// Traverse updates a slot at cyclic distance offset from the
	// traversed doorway, given that doorway's hash.
	Traverse(base, through Seed, offset int) Seed
}

// Basic rules operate on plain seeds: the whole width is magnitude and
// Reverse is the identity.
type Basic struct {
	// Mixer overrides the hash function; nil means mix.FastHash32.
	Mixer mix.Func

	// FoldOffset mixes the slot offset into the XOR key so that doorways
	// of the same section produce distinguishable neighbors.
	FoldOffset bool
}

// Hash implements Rules.
func (r Basic) Hash(s Seed) Seed { return mix.OrDefault(r.Mixer)(s) }

// Reverse implements Rules.
func (Basic) Reverse(s Seed) Seed { return s }

// Traverse implements Rules.
func (r Basic) Traverse(base, through Seed, offset int) Seed {
	return base ^ key(r.Mixer, r.FoldOffset, through, offset)
}

// Oriented rules reserve OrientationBit as a per-doorway orientation flag.
// Hash ignores the flag, Reverse flips it, and Traverse never touches it.
type Oriented struct {
	// Mixer overrides the hash function; nil means mix.FastHash32.
	Mixer mix.Func

	// FoldOffset mixes the slot offset into the XOR key.
	FoldOffset bool
}

// Hash implements Rules.
func (r Oriented) Hash(s Seed) Seed { return mix.OrDefault(r.Mixer)(Magnitude(s)) }

// Reverse implements Rules.
func (Oriented) Reverse(s Seed) Seed { return s ^ OrientationBit }

// Traverse implements Rules.
func (r Oriented) Traverse(base, through Seed, offset int) Seed {
	return base ^ (key(r.Mixer, r.FoldOffset, through, offset) &^ OrientationBit)
}

// Magnitude strips the orientation flag from s.
func Magnitude(s Seed) Seed { return s &^ OrientationBit }

// Orientation reports the orientation flag of s.
func Orientation(s Seed) bool { return s&OrientationBit != 0 }

// key is the value XOR-ed into a slot. It depends only on (through, offset),
// which is what keeps Traverse an involution.
func key(fn mix.Func, fold bool, through Seed, offset int) Seed {
	if !fold {
		return through
	}

	return mix.OrDefault(fn)(through ^ Seed(offset)*offsetSpread)
}

// Flagged is implemented by rules that reserve seed bits outside the
// magnitude. Clamping must preserve those bits.
type Flagged interface {
	FlagBits() Seed
}

// FlagBits implements Flagged.
func (Oriented) FlagBits() Seed { return OrientationBit }

// FlagBits returns the bits r reserves, or 0 when r does not implement Flagged.
func FlagBits(r Rules) Seed {
	if f, ok := r.(Flagged); ok {
		return f.FlagBits()
	}

	return 0
}
