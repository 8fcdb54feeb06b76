// SPDX-License-Identifier: MIT

// Package matrix - MonomialEmitter.
//
// Purpose:
//   - Resolve every cell of an operator matrix to (symbol id, conjugated)
//     through a fully populated symbol.Table.
//   - Scale by prefactor × cell sign.
//   - Under Hermiticity compute the upper triangle only and mirror it.
//
// Errors:
//   - *LookupError when a word has no symbol: identification never ran, or
//     ran against different data. There is no recovery.

package matrix

import (
	"github.com/katalvlaran/lvlmoment/symbol"
)

// MonomialEmitter owns the output buffer of one emission.
// EmitStripe may run concurrently for distinct stripes.
type MonomialEmitter struct {
	src       *OperatorMatrix // the matrix symbols are read from (aliased if any)
	raw       *OperatorMatrix
	table     *symbol.Table
	prefactor complex128
	data      []Monomial
}

// NewMonomialEmitter prepares emission from raw (and aliased, which takes
// precedence when non-nil).
func NewMonomialEmitter(raw, aliased *OperatorMatrix, table *symbol.Table, prefactor complex128) *MonomialEmitter {
	src := raw
	if aliased != nil {
		src = aliased
	}
	return &MonomialEmitter{
		src:       src,
		raw:       raw,
		table:     table,
		prefactor: prefactor,
		data:      make([]Monomial, src.dim*src.dim),
	}
}

// EmitStripe writes the stripe's cells (and their mirrors when Hermitian).
func (e *MonomialEmitter) EmitStripe(worker, workers int) error {
	n := e.src.dim
	hermitian := e.src.hermitian
	for c := worker; c < n; c += workers {
		last := n - 1
		if hermitian {
			last = c
		}
		for r := 0; r <= last; r++ {
			mono, symHermitian, err := e.resolve(r, c)
			if err != nil {
				return err
			}
			e.data[r*n+c] = mono.scale(e.prefactor)
			if hermitian && r != c {
				e.data[c*n+r] = mono.Conj(symHermitian).scale(e.prefactor)
			}
		}
	}
	return nil
}

// resolve maps one cell to its unscaled monomial.
func (e *MonomialEmitter) resolve(r, c int) (Monomial, bool, error) {
	seq := e.src.data[r*e.src.dim+c]
	if seq.IsZero() {
		return Monomial{ID: symbol.ZeroID}, true, nil
	}
	entry, ok := e.table.Where(seq.Hash())
	if !ok {
		return Monomial{}, false, &LookupError{Row: r, Col: c, Sequence: e.table.Context().Format(seq)}
	}
	sym, err := e.table.Symbol(entry.ID)
	if err != nil {
		return Monomial{}, false, &LookupError{Row: r, Col: c, Sequence: e.table.Context().Format(seq)}
	}
	return Monomial{
		ID:         entry.ID,
		Factor:     seq.Sign().Complex(),
		Conjugated: entry.Conjugated,
	}, sym.Hermitian, nil
}

// Matrix freezes the output. Call after every stripe succeeded.
func (e *MonomialEmitter) Matrix() *MonomialMatrix {
	m := &MonomialMatrix{
		dim:       e.src.dim,
		data:      e.data,
		prefactor: e.prefactor,
		hermitian: e.src.hermitian,
		ops:       e.raw,
	}
	if e.src != e.raw {
		m.aliased = e.src
	}
	return m
}

// Emit runs the whole emission on the calling goroutine.
func (e *MonomialEmitter) Emit() (*MonomialMatrix, error) {
	if err := e.EmitStripe(0, 1); err != nil {
		return nil, err
	}
	return e.Matrix(), nil
}
