// SPDX-License-Identifier: MIT

// Package parallel - MergeTree.
//
// Purpose:
//   - Reduce W per-worker results into worker 0 in ⌈log₂W⌉+1 rounds with no
//     shared coordinator.
//
// Schedule (I = InitialLevel() = bitWidth(bitFloor(W))):
//   - Every worker starts at I+1; the extra level means "local discovery
//     pending" and is dropped by Ready.
//   - At level L > TerminalLevel(i) worker i merges partner p = i + 2^(I-L)
//     when p < W, after p's level reaches ≤ L, and then decrements its own
//     level. TerminalLevel(p) = L, so p is complete at that point.
//   - TerminalLevel(i) = I+1-bitWidth(lowbit(i)); worker 0 runs down to 0.
//
// Failure:
//   - Fail marks a worker's counter; anyone waiting on it gets ErrPartnerFailed
//     and marks its own counter in turn, so failures travel up the tree.

package parallel

import "math/bits"

// MergeTree is a bit-indexed reduction schedule over W workers.
type MergeTree struct {
	workers  int
	initial  int
	counters []*LevelCounter
}

// NewMergeTree returns a tree for workers ≥ 1 with every counter at the
// discovery-pending level.
func NewMergeTree(workers int) *MergeTree {
	if workers < 1 {
		panic(ErrNoWorkers)
	}
	t := &MergeTree{
		workers:  workers,
		initial:  bits.Len(uint(bitFloor(workers))),
		counters: make([]*LevelCounter, workers),
	}
	for i := range t.counters {
		t.counters[i] = NewLevelCounter(t.initial + 1)
	}
	return t
}

// Workers returns W.
func (t *MergeTree) Workers() int { return t.workers }

// InitialLevel returns bitWidth(bitFloor(W)).
func (t *MergeTree) InitialLevel() int { return t.initial }

// TerminalLevel returns the level at which worker holds its complete subtree:
// I+1-bitWidth(lowbit(worker)), and 0 for worker 0.
func (t *MergeTree) TerminalLevel(worker int) int {
	if worker == 0 {
		return 0
	}
	return t.initial + 1 - bits.Len(uint(worker&-worker))
}

// Level returns the current level of worker.
func (t *MergeTree) Level(worker int) int { return t.counters[worker].Level() }

// Ready marks worker's local data as available to its parent.
func (t *MergeTree) Ready(worker int) { t.counters[worker].Decrement() }

// Fail marks worker as failed and wakes anyone waiting on it.
func (t *MergeTree) Fail(worker int) { t.counters[worker].Fail() }

// Reset returns every counter to the discovery-pending level.
func (t *MergeTree) Reset() {
	for _, c := range t.counters {
		c.Reset(t.initial + 1)
	}
}

// Reduce runs worker's merge schedule. merge(partner) folds the partner's
// complete data into the worker's own. Call after Ready. On error the
// worker's counter is marked failed.
func (t *MergeTree) Reduce(worker int, merge func(partner int) error) error {
	own := t.counters[worker]
	terminal := t.TerminalLevel(worker)
	for level := own.Level(); level > terminal; level = own.Level() {
		if partner := worker + 1<<(t.initial-level); partner < t.workers {
			if err := t.counters[partner].WaitAtMost(level); err != nil {
				own.Fail()
				return err
			}
			if err := merge(partner); err != nil {
				own.Fail()
				return err
			}
		}
		own.Decrement()
	}
	return nil
}

// bitFloor returns the largest power of two ≤ n, or 0 for n = 0.
func bitFloor(n int) int {
	if n <= 0 {
		return 0
	}
	return 1 << (bits.Len(uint(n)) - 1)
}
