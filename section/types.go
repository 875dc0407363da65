package section

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/haze/seedring"
)

// ErrConfiguration is the base class of every Space validation error.
var ErrConfiguration = errors.New("section: invalid configuration")

// Configuration errors; all satisfy errors.Is(err, ErrConfiguration).
var (
	// ErrRingSize indicates a ring size below 1.
	ErrRingSize = fmt.Errorf("%w: ring size must be at least 1", ErrConfiguration)

	// ErrCollapsedDomain indicates a clamp mask that maps every seed to one value.
	ErrCollapsedDomain = fmt.Errorf("%w: clamp mask collapses the seed domain", ErrConfiguration)

	// ErrNilRules indicates WithRules(nil).
	ErrNilRules = fmt.Errorf("%w: rules are nil", ErrConfiguration)

	// ErrThreshold indicates an unusable Threshold predicate.
	ErrThreshold = fmt.Errorf("%w: invalid doorway threshold", ErrConfiguration)
)

// Runtime errors.
var (
	// ErrSeedCount indicates a seed slice whose length differs from the ring size.
	ErrSeedCount = errors.New("section: seed count does not match ring size")

	// ErrDoorOutOfRange indicates a doorway index outside 0..N-1.
	ErrDoorOutOfRange = errors.New("section: doorway index out of range")

	// ErrNeedRandSource indicates RandomOrigin was called with a nil generator.
	ErrNeedRandSource = errors.New("section: rng is required")
)

// Defaults reproduce the classic labyrinth tuning.
const (
	// DefaultRingSize is the number of doorways per section.
	DefaultRingSize = 4

	// DefaultMask bounds every seed to 9 bits.
	DefaultMask seedring.Seed = 0x1FF

	// DefaultLowBits is the number of low seed bits inspected by the door predicate.
	DefaultLowBits = 3

	// DefaultWallBelow makes a doorway a wall when its low bits are below it.
	DefaultWallBelow seedring.Seed = 5
)

// OpenFunc reports whether a doorway with the given seed can be traversed.
// It must be pure.
type OpenFunc func(seed seedring.Seed) bool

// Threshold returns an OpenFunc that opens a doorway iff the lowBits low bits
// of its seed are >= wallBelow. Threshold(3, 5) is the default policy.
func Threshold(lowBits uint, wallBelow seedring.Seed) OpenFunc {
	low := seedring.Seed(1)<<lowBits - 1

	return func(seed seedring.Seed) bool {
		return seed&low >= wallBelow
	}
}

// AlwaysOpen opens every doorway.
func AlwaysOpen(seedring.Seed) bool { return true }

// Key is the canonical hash of a section.
type Key uint32

// Option configures a Space. Invalid values are recorded and surfaced by NewSpace.
type Option func(*spaceConfig)

// spaceConfig accumulates options before validation.
type spaceConfig struct {
	size  int
	rules seedring.Rules
	mask  seedring.Seed
	open  OpenFunc
	err   error
}

// WithRingSize sets the number of doorways per section.
func WithRingSize(n int) Option {
	return func(c *spaceConfig) {
		if n < 1 {
			c.err = fmt.Errorf("%w (%d)", ErrRingSize, n)
			return
		}
		c.size = n
	}
}

// WithRules sets the traversal policy.
func WithRules(r seedring.Rules) Option {
	return func(c *spaceConfig) {
		if r == nil {
			c.err = ErrNilRules
			return
		}
		c.rules = r
	}
}

// WithMask sets the clamp mask applied to every seed after each transform.
func WithMask(mask seedring.Seed) Option {
	return func(c *spaceConfig) {
		c.mask = mask
	}
}

// WithOpenFunc installs a custom doorway predicate; nil is ignored.
func WithOpenFunc(fn OpenFunc) Option {
	return func(c *spaceConfig) {
		if fn != nil {
			c.open = fn
		}
	}
}

// WithThreshold installs Threshold(lowBits, wallBelow).
// lowBits must be in 1..31 and wallBelow must not exceed 1<<lowBits.
func WithThreshold(lowBits uint, wallBelow seedring.Seed) Option {
	return func(c *spaceConfig) {
		if lowBits < 1 || lowBits > 31 || wallBelow > seedring.Seed(1)<<lowBits {
			c.err = fmt.Errorf("%w: lowBits=%d wallBelow=%d", ErrThreshold, lowBits, wallBelow)
			return
		}
		c.open = Threshold(lowBits, wallBelow)
	}
}
