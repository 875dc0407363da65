// Package section turns seed rings into labyrinth sections: graph nodes with
// a bounded state space and a per-doorway open/closed policy.
//
// What
//
//   - Space:   the policy shared by every section of one labyrinth: ring size,
//     traversal Rules, clamp mask and doorway-open predicate.
//   - Section: an immutable seed ring; its identity is the ring's canonical
//     (rotation-invariant) hash plus canonical equality.
//   - Set:     a hash-indexed set of sections with exact canonical-equality
//     fallback on hash collisions.
//
// Bounding
//
//	The seed algebra has an unbounded range. After every transform the Space
//	clamps each slot by AND-ing it with the mask, which makes the reachable
//	state space finite (at most (mask+1)^N rings). The clamp is idempotent
//	and commutes with the XOR-based traversal, so clamped sections keep the
//	self-inverse property. Oriented rules keep their orientation bit.
//
// Doorways
//
//	A doorway is open iff the Space's OpenFunc accepts the slot's seed.
//	Because traversal leaves the doorway slot's low bits untouched, both
//	sides of a doorway always agree on whether it is open.
//
// Defaults (tuning constants, not semantics)
//
//   - Ring size 4.
//   - seedring.Basic rules with mix.FastHash32.
//   - Clamp mask 0x1FF.
//   - Threshold(3, 5): a doorway is a wall iff seed&7 < 5.
//
// Randomness
//
//	Origins are drawn only from a caller-owned *rand.Rand (RandomOrigin);
//	there is no package-level generator.
//
// Errors
//
//   - ErrConfiguration    base class for invalid Space options.
//   - ErrRingSize         ring size < 1.
//   - ErrCollapsedDomain  mask leaves no magnitude bit.
//   - ErrNilRules         nil Rules option.
//   - ErrSeedCount        wrong number of seeds for New/FromRing.
//   - ErrDoorOutOfRange   doorway index outside 0..N-1.
//   - ErrNeedRandSource   RandomOrigin without a generator.
package section
