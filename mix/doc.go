// Package mix provides the integer avalanche function used to derive
// labyrinth connectivity from seed values.
//
// What
//
//   - FastHash32: a fixed xor-shift / multiply mixer over uint32.
//   - Func:       the injectable mixer signature consumed by seedring rules.
//
// Why
//
//	Neighbor rings are computed by XOR-ing seeds with the mixed value of the
//	traversed doorway's seed. Good bit avalanche makes neighboring sections
//	look unrelated even when their seeds differ by a single bit.
//	The mixer is not cryptographic and makes no attempt to be.
//
// Guarantees
//
//   - Pure, deterministic, total: defined for every input, 0 maps to 0.
//   - Fixed-width wraparound arithmetic; overflow is not an error.
//
// Complexity: O(1) time, O(1) memory, no allocations.
package mix
