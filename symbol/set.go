// SPDX-License-Identifier: MIT

// Package symbol - Set: key-ordered symbol list.
//
// Purpose:
//   - Hold the symbols a worker discovered, sorted by Key with no duplicates.
//   - Merge two sets in O(|a|+|b|) with a two-cursor walk, so that the
//     parallel reduction tree costs linear time per round.
//
// Determinism:
//   - The merged content depends only on the union of keys; when both sides
//     hold a key the left entry is kept (both describe the same words).

package symbol

import "slices"

// Set is an ordered, duplicate-free collection of symbols keyed by Key().
// A Set is not safe for concurrent mutation.
type Set struct {
	symbols []Symbol
}

// NewSet builds a Set from arbitrary symbols; later duplicates are dropped.
func NewSet(symbols ...Symbol) *Set {
	out := slices.Clone(symbols)
	slices.SortStableFunc(out, func(x, y Symbol) int { return cmpKey(x.Key(), y.Key()) })
	out = slices.CompactFunc(out, func(x, y Symbol) bool { return x.Key() == y.Key() })
	return &Set{symbols: out}
}

// Len returns the number of symbols.
func (s *Set) Len() int { return len(s.symbols) }

// At returns the i-th symbol in key order.
func (s *Set) At(i int) Symbol { return s.symbols[i] }

// Symbols returns a copy of the symbols in key order.
func (s *Set) Symbols() []Symbol { return slices.Clone(s.symbols) }

// Keys returns the keys in ascending order.
func (s *Set) Keys() []uint64 {
	keys := make([]uint64, len(s.symbols))
	for i, sym := range s.symbols {
		keys[i] = sym.Key()
	}
	return keys
}

// Contains reports whether key is present. O(log n).
func (s *Set) Contains(key uint64) bool {
	_, ok := slices.BinarySearchFunc(s.symbols, key, func(sym Symbol, k uint64) int { return cmpKey(sym.Key(), k) })
	return ok
}

// Absorb merges right into s in place; s keeps its entry on shared keys.
func (s *Set) Absorb(right *Set) {
	if right == nil || len(right.symbols) == 0 {
		return
	}
	s.symbols = MergeSets(s, right).symbols
}

// MergeSets returns the union of left and right.
// Implementation:
//   - Stage 1: allocate len(left)+len(right) capacity.
//   - Stage 2: two-cursor walk; the smaller key advances, equal keys emit
//     the left entry and advance both cursors.
//   - Stage 3: append the tail of whichever side remains.
//
// Complexity: Time O(|left|+|right|), Space O(|left|+|right|).
func MergeSets(left, right *Set) *Set {
	a, b := left.symbols, right.symbols
	out := make([]Symbol, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ka, kb := a[i].Key(), b[j].Key()
		switch {
		case ka < kb:
			out = append(out, a[i])
			i++
		case ka > kb:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return &Set{symbols: out}
}

func cmpKey(x, y uint64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
