// Package seedring implements the seed-ring algebra behind the hash labyrinth:
// a fixed-size cyclic sequence of seeds whose neighbor relation and identity
// are computed, never stored.
//
// What
//
//   - Seed:  a 32-bit seed value; oriented seeds reserve bit 31 as a flag.
//   - Rules: the injectable policy {Hash, Reverse, Traverse} (Basic, Oriented).
//   - Ring:  the cyclic sequence with Traverse, CanonicalStart,
//     CanonicalEquals and CanonicalHash.
//
// Traversal
//
//	Going through doorway p of ring R produces R' where
//	  R'[p]         = Reverse(R[p])
//	  R'[(p+k) % N] = Traverse(R[(p+k) % N], Hash(R[p]), k)   for k in 1..N-1
//	Rules guarantee Hash(Reverse(s)) == Hash(s) and that Traverse is an
//	involution for a fixed (hash, offset) pair, so
//	  R.Traverse(p).Traverse(p) == R
//	holds exactly for every ring and doorway.
//
// Identity
//
//	Rings are cyclic: rotating the start index yields the same section.
//	CanonicalStart picks the rotation with the lexicographically smallest
//	cyclic ordering (lowest index on ties). CanonicalEquals and CanonicalHash
//	walk the ring from that start, so both are rotation-invariant.
//
// Complexity (N = ring size)
//
//   - Traverse:        O(N) time, one allocation.
//   - CanonicalStart:  O(N²) time, no allocations. N is small (typically 4).
//   - CanonicalHash:   O(N²) time.
//
// Errors
//
//   - ErrNilRules          if Traverse is given nil Rules.
//   - ErrPortalOutOfRange  if the doorway index is outside 0..N-1.
package seedring
