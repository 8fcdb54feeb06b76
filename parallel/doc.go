// SPDX-License-Identifier: MIT

// Package parallel provides the synchronization primitives behind
// multithreaded matrix builds.
//
// What:
//   - Policy and ShouldMultithread: the pure single- vs multi-thread decision.
//   - Gate: a one-shot broadcast the orchestrator opens to start a phase.
//   - Signal: a once-resolved per-worker, per-phase completion result.
//   - LevelCounter: an atomic counter with wait-for-change semantics.
//   - MergeTree: a coordinator-free reduction schedule over W workers where
//     partner ids derive from bit arithmetic on the worker's own id.
//   - Pipeline: W goroutines stepping through barriered phases, joined with
//     errgroup, with panics recovered into *WorkerError.
//
// Merge schedule (W = 5, initial level 3):
//
//	level 3:  0 ← 1,  2 ← 3
//	level 2:  0 ← 2
//	level 1:  0 ← 4
//
// Worker i stops at level 4-bitWidth(lowbit(i)); worker 0 runs to level 0
// and ends up holding the union of every worker's data.
//
// Suspension points are the phase gates and merge waits only; neither holds
// a mutex.
package parallel
