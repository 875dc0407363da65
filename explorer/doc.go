// Package explorer discovers the implicit section graph of a section.Space,
// breadth-first by layers or depth-first with an explicit bounded stack,
// while deduplicating sections by canonical identity, verifying the
// doorway symmetry invariant and accumulating degree statistics.
//
// What
//
//   - Explorer holds the known set (fully expanded sections), the frontier
//     (discovered, not yet expanded) and the running Stats.
//   - ExpandOne expands a single section.
//   - ExploreLayer drains the frontier once: one breadth-first layer.
//   - Run repeats ExploreLayer until exhaustion, budget, layer cap or
//     cancellation.
//   - ExploreDepthFirst walks from a section up to a maximum depth.
//   - Meander takes a random walk driven by a caller-owned generator.
//
// State machine
//
//	Running  frontier non-empty (or about to be seeded with the origin).
//	Halted   frontier drained, or a ConsistencyViolation occurred.
//
//	Budgets, layer caps and context cancellation stop Run cooperatively
//	without halting: known and frontier remain valid and Run may be resumed.
//
// Symmetry check
//
//	For every open doorway d of an expanded section S whose neighbor N is not
//	yet known, the explorer recomputes N's neighbor through the same d and
//	requires it to equal S exactly. A mismatch is a *ConsistencyViolation:
//	the explorer halts and every later call returns the same error.
//	Retrying cannot help; the computation is deterministic.
//
// Parallel layers
//
//	WithWorkers(n>1) partitions each layer across n goroutines. Workers
//	compute expansions against a read-only known set; the merge into known
//	and frontier is sequential and in deterministic batch order, so the
//	result matches the sequential mode exactly. The first violation cancels
//	the remaining workers.
//
// Statistics
//
//	Every expanded section adds its open doorways to Doors and its closed ones
//	to Walls, and is tallied as a dead end, hallway, three-way or four-way
//	when it has 1, 2, 3 or 4 open doorways. Other degrees are counted in
//	Sections only.
//
// Observability
//
//	WithLogger (log/slog), WithRecorder (see package metrics) and WithTracer
//	(OpenTelemetry) are optional; the defaults discard everything except
//	spans sent to the global otel TracerProvider.
//
// Complexity (V = sections expanded, N = ring size)
//
//   - Time:   O(V · N³): N neighbors per section, each canonicalized in O(N²).
//   - Memory: O(V · N) for the known and frontier sets.
//
// Errors
//
//   - ErrNilSpace          New without a Space.
//   - ErrOptionViolation   invalid option (e.g. negative budget).
//   - ErrNeedRandSource    Meander without a generator.
//   - ErrConsistency       class of *ConsistencyViolation.
//   - context errors       when the context is done.
package explorer
