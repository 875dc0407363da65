package section

import "github.com/katalvlaran/haze/seedring"

// Section is one node of the labyrinth. The zero value has no doorways.
// Sections are values: every transform computes a new ring, nothing is aliased.
type Section struct {
	ring seedring.Ring
}

// Ring returns a copy of the section's seed ring.
func (s Section) Ring() seedring.Ring { return s.ring.Clone() }

// Len returns the number of doorways.
func (s Section) Len() int { return len(s.ring) }

// Seed returns the seed of doorway door, or 0 when out of range.
func (s Section) Seed(door int) seedring.Seed {
	if door < 0 || door >= len(s.ring) {
		return 0
	}

	return s.ring[door]
}

// Key returns the canonical, rotation-invariant hash.
func (s Section) Key() Key { return Key(s.ring.CanonicalHash()) }

// Same reports canonical equality: same ring up to rotation.
func (s Section) Same(other Section) bool { return s.ring.CanonicalEquals(other.ring) }

// Equal reports exact equality, doorway by doorway.
func (s Section) Equal(other Section) bool { return s.ring.Equal(other.ring) }

// IsZero reports whether s is the zero Section.
func (s Section) IsZero() bool { return len(s.ring) == 0 }

// String renders the seeds as "a,b,c,d".
func (s Section) String() string { return s.ring.String() }
