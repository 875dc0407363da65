package section

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/haze/seedring"
)

// Space is the immutable policy shared by all sections of one labyrinth.
// It is safe for concurrent use.
type Space struct {
	size  int
	rules seedring.Rules
	mask  seedring.Seed // effective mask, flag bits included
	open  OpenFunc
}

// NewSpace builds a Space from deterministic defaults and the given options,
// applied in order. Returns an error wrapping ErrConfiguration when any
// option is invalid or the mask collapses the seed domain.
func NewSpace(opts ...Option) (*Space, error) {
	cfg := spaceConfig{
		size:  DefaultRingSize,
		rules: seedring.Basic{},
		mask:  DefaultMask,
		open:  Threshold(DefaultLowBits, DefaultWallBelow),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	flags := seedring.FlagBits(cfg.rules)
	if cfg.mask&^flags == 0 {
		return nil, fmt.Errorf("%w: mask=%#x", ErrCollapsedDomain, cfg.mask)
	}

	return &Space{
		size:  cfg.size,
		rules: cfg.rules,
		mask:  cfg.mask | flags,
		open:  cfg.open,
	}, nil
}

// Size returns the number of doorways per section.
func (sp *Space) Size() int { return sp.size }

// Rules returns the traversal policy.
func (sp *Space) Rules() seedring.Rules { return sp.rules }

// Mask returns the effective clamp mask, including preserved flag bits.
func (sp *Space) Mask() seedring.Seed { return sp.mask }

// Clamp bounds a single seed into the Space's domain.
func (sp *Space) Clamp(s seedring.Seed) seedring.Seed { return s & sp.mask }

// clampRing clamps r in place.
func (sp *Space) clampRing(r seedring.Ring) {
	for i := range r {
		r[i] &= sp.mask
	}
}

// New builds a section from exactly Size() seeds, clamping each.
func (sp *Space) New(seeds ...seedring.Seed) (Section, error) {
	return sp.FromRing(seedring.Ring(seeds))
}

// FromRing builds a section from a copy of r, clamping each slot.
func (sp *Space) FromRing(r seedring.Ring) (Section, error) {
	if len(r) != sp.size {
		return Section{}, fmt.Errorf("%w: got %d, want %d", ErrSeedCount, len(r), sp.size)
	}
	ring := r.Clone()
	sp.clampRing(ring)

	return Section{ring: ring}, nil
}

// RandomOrigin draws Size() seeds from rng and clamps them.
// The generator is owned by the caller; the Space keeps no reference to it.
func (sp *Space) RandomOrigin(rng *rand.Rand) (Section, error) {
	if rng == nil {
		return Section{}, ErrNeedRandSource
	}
	ring := make(seedring.Ring, sp.size)
	for i := range ring {
		ring[i] = rng.Uint32()
	}
	sp.clampRing(ring)

	return Section{ring: ring}, nil
}

// NeighborThrough returns the section reached through doorway door of s.
// The result is clamped into the Space's domain. Walls are not checked;
// callers decide whether to honor IsOpen.
func (sp *Space) NeighborThrough(s Section, door int) (Section, error) {
	if err := sp.checkDoor(s, door); err != nil {
		return Section{}, err
	}
	ring, err := s.ring.Traverse(sp.rules, door)
	if err != nil {
		return Section{}, fmt.Errorf("section: traverse %v via %d: %w", s, door, err)
	}
	sp.clampRing(ring)

	return Section{ring: ring}, nil
}

// IsOpen reports whether doorway door of s is traversable.
// Out-of-range doorways are reported closed.
func (sp *Space) IsOpen(s Section, door int) bool {
	if door < 0 || door >= len(s.ring) {
		return false
	}

	return sp.open(s.ring[door])
}

// OpenDoors lists the open doorway indices of s in ascending order.
func (sp *Space) OpenDoors(s Section) []int {
	doors := make([]int, 0, len(s.ring))
	for i := range s.ring {
		if sp.open(s.ring[i]) {
			doors = append(doors, i)
		}
	}

	return doors
}

// Degree counts the open doorways of s.
func (sp *Space) Degree(s Section) int {
	n := 0
	for i := range s.ring {
		if sp.open(s.ring[i]) {
			n++
		}
	}

	return n
}

// checkDoor validates that s belongs to this Space and door is in range.
func (sp *Space) checkDoor(s Section, door int) error {
	if len(s.ring) != sp.size {
		return fmt.Errorf("%w: section has %d seeds, space expects %d", ErrSeedCount, len(s.ring), sp.size)
	}
	if door < 0 || door >= sp.size {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrDoorOutOfRange, door, sp.size)
	}

	return nil
}
