// SPDX-License-Identifier: MIT

// Package symbol - Table: the shared symbol registry.
//
// Purpose:
//   - Map structural hashes to (id, conjugated) for matrix emission.
//   - Assign ids monotonically; an id, once given, is never changed.
//
// Concurrency:
//   - Reads (Where, Lookup, Symbol, Contains) take a shared lock and may run
//     from any number of workers.
//   - Merge is the only writer. The engine calls it from one goroutine
//     between parallel phases, so id assignment never races.

package symbol

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/katalvlaran/lvlmoment/operator"
)

// Entry is the result of a hash lookup.
type Entry struct {
	ID         int
	Conjugated bool // the hash is the symbol's conjugate word
}

// Table is the registry of symbols. Safe for concurrent use.
type Table struct {
	ctx operator.Context

	mu      sync.RWMutex     // guards symbols and byHash
	symbols []Symbol         // index == id
	byHash  map[uint64]Entry // forward and conjugate hashes → entry
}

// NewTable returns a Table holding Zero (id 0) and Identity (id 1).
func NewTable(ctx operator.Context) *Table {
	t := &Table{ctx: ctx, byHash: make(map[uint64]Entry)}
	t.insert(zeroSymbol())
	t.insert(identitySymbol())
	return t
}

// insert appends sym with the next id. Caller holds mu (or owns t).
func (t *Table) insert(sym Symbol) int {
	sym.ID = len(t.symbols)
	t.symbols = append(t.symbols, sym)
	t.byHash[sym.ForwardHash()] = Entry{ID: sym.ID}
	if !sym.Hermitian {
		t.byHash[sym.ConjugateHash()] = Entry{ID: sym.ID, Conjugated: true}
	}
	return sym.ID
}

// Context returns the algebra the table classifies words with.
func (t *Table) Context() operator.Context { return t.ctx }

// Len returns the number of registered symbols.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.symbols)
}

// Symbol returns the symbol with the given id.
func (t *Table) Symbol(id int) (Symbol, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || id >= len(t.symbols) {
		return Symbol{}, fmt.Errorf("Symbol(%d): %w", id, ErrUnknownSymbol)
	}
	return t.symbols[id], nil
}

// Symbols returns a copy of every symbol in id order.
func (t *Table) Symbols() []Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.symbols)
}

// Where resolves a structural hash.
func (t *Table) Where(hash uint64) (Entry, bool) {
	t.mu.RLock()
	e, ok := t.byHash[hash]
	t.mu.RUnlock()
	return e, ok
}

// Contains reports whether hash belongs to a registered symbol.
func (t *Table) Contains(hash uint64) bool {
	_, ok := t.Where(hash)
	return ok
}

// Lookup resolves a word by its hash.
func (t *Table) Lookup(seq operator.Sequence) (Entry, bool) {
	return t.Where(seq.Hash())
}

// Entries returns a copy of the hash → entry map.
func (t *Table) Entries() map[uint64]Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return maps.Clone(t.byHash)
}

// Merge registers every symbol of set whose key is not yet known, in key
// order, and returns the ids it assigned. Merging the same set twice is a
// no-op the second time.
// Complexity: O(|set|) map operations under one exclusive lock.
func (t *Table) Merge(set *Set) []int {
	if set == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var added []int
	for _, sym := range set.symbols {
		if _, ok := t.byHash[sym.ForwardHash()]; ok {
			continue
		}
		added = append(added, t.insert(sym))
	}
	return added
}
