// Package haze explores hash labyrinths: implicit, effectively unbounded
// graphs whose nodes ("sections") are small rings of 32-bit seeds and whose
// edges ("doorways") are computed on demand by mixing those seeds.
//
// 🚀 What is haze?
//
//	A small library plus a command-line driver that:
//		• Mixes seeds with a fast 32-bit avalanche hash
//		• Computes the neighbor of a ring through any doorway, reversibly
//		• Identifies sections up to rotation (canonical start, canonical hash)
//		• Decides which doorways are open with a pluggable predicate
//		• Explores the labyrinth breadth-first, depth-first or by random walk,
//		  checking on every new doorway that the way back leads home
//
// ✨ Why haze?
//
//   - Deterministic - the same origin and policy always give the same labyrinth
//   - Caller-owned randomness - no hidden global generators
//   - Observable - slog logging, Prometheus counters and OpenTelemetry spans
//   - Bounded - node budgets, layer caps, depth limits and context cancellation
//
// Packages:
//
//	mix/       FastHash32 and the pluggable mixer type
//	seedring/  Ring, traversal rules (Basic, Oriented), canonical identity
//	section/   Space (ring size, clamp mask, door policy), Section, Set
//	explorer/  Explorer: layers, depth-first walks, meander, statistics
//	metrics/   Prometheus collector for explorer events
//	config/    YAML + HAZE_ environment configuration
//	cmd/haze/  the haze command
//
// Quick ASCII example (4-door section, doorway 2 is a wall):
//
//	      [0]
//	  [3]  S  ▒2▒
//	      [1]
//
//	go install github.com/katalvlaran/haze/cmd/haze@latest
package haze
