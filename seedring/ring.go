package seedring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/haze/mix"
)

// Ring is a cyclic sequence of seeds. Order within the ring matters; which
// element comes first does not.
type Ring []Seed

// Len returns the ring size N.
func (r Ring) Len() int { return len(r) }

// Clone returns an independent copy of r.
func (r Ring) Clone() Ring {
	out := make(Ring, len(r))
	copy(out, r)

	return out
}

// Traverse returns the ring reached by going through doorway portal.
// The receiver is not modified.
// Returns ErrNilRules or ErrPortalOutOfRange on invalid input.
func (r Ring) Traverse(rules Rules, portal int) (Ring, error) {
	if rules == nil {
		return nil, ErrNilRules
	}
	n := len(r)
	if portal < 0 || portal >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrPortalOutOfRange, portal, n)
	}

	out := make(Ring, n)
	through := rules.Hash(r[portal])
	out[portal] = rules.Reverse(r[portal])
	for off := 1; off < n; off++ {
		i := (portal + off) % n
		out[i] = rules.Traverse(r[i], through, off)
	}

	return out, nil
}

// compareAt compares a starting at ai with b starting at bi, element by
// element around the cycle. Both rings must have the same length.
func compareAt(a Ring, ai int, b Ring, bi int) int {
	n := len(a)
	for k := 0; k < n; k++ {
		sa, sb := a[(ai+k)%n], b[(bi+k)%n]
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return +1
		}
	}

	return 0
}

// CanonicalStart returns the rotation offset with the lexicographically
// smallest cyclic ordering. Ties resolve to the lowest index.
func (r Ring) CanonicalStart() int {
	best := 0
	for i := 1; i < len(r); i++ {
		if compareAt(r, i, r, best) < 0 {
			best = i
		}
	}

	return best
}

// Canonical returns r rotated to its canonical start.
func (r Ring) Canonical() Ring {
	return r.Rotate(r.CanonicalStart())
}

// Rotate returns a copy of r whose element 0 is r[k mod N].
func (r Ring) Rotate(k int) Ring {
	n := len(r)
	out := make(Ring, n)
	if n == 0 {
		return out
	}
	k = ((k % n) + n) % n
	for i := 0; i < n; i++ {
		out[i] = r[(k+i)%n]
	}

	return out
}

// Equal reports exact, position-by-position equality.
func (r Ring) Equal(other Ring) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}

	return true
}

// CanonicalEquals reports whether r and other are the same ring up to rotation.
func (r Ring) CanonicalEquals(other Ring) bool {
	return r.Compare(other) == 0
}

// Compare orders rings by size, then by canonical content.
// It returns -1, 0 or +1 and is 0 exactly when CanonicalEquals holds.
func (r Ring) Compare(other Ring) int {
	switch {
	case len(r) < len(other):
		return -1
	case len(r) > len(other):
		return +1
	case len(r) == 0:
		return 0
	}

	return compareAt(r, r.CanonicalStart(), other, other.CanonicalStart())
}

// CanonicalHash returns the rotation-invariant hash of r using mix.FastHash32.
func (r Ring) CanonicalHash() uint32 {
	return r.CanonicalHashWith(mix.FastHash32)
}

// CanonicalHashWith folds every seed, starting at the canonical start,
// through fn combined with a running accumulator.
func (r Ring) CanonicalHashWith(fn mix.Func) uint32 {
	fn = mix.OrDefault(fn)
	n := len(r)
	start := r.CanonicalStart()

	var h uint32
	for k := 0; k < n; k++ {
		h = fn(h ^ r[(start+k)%n])
	}

	return h
}

// String renders the ring as comma-separated decimal seeds, e.g. "1,2,3,4".
func (r Ring) String() string {
	var sb strings.Builder
	for i, s := range r {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(s), 10))
	}

	return sb.String()
}
