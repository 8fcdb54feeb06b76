// SPDX-License-Identifier: MIT

// Package matrix - OperatorMatrixBuilder.
//
// Purpose:
//   - Compute M[r,c] = combine(row[r], col[c]) over a generator pair, where
//     rows come from the conjugate generator and columns from the forward one.
//   - Establish Hermiticity: assumed (and exploited) when promised with no
//     aliasing, otherwise verified cell by cell.
//   - Re-simplify through the Context alias rule when the Context has aliases.
//
// Work split:
//   - GenerateStripe / AliasStripe write only cells owned by the stripe.
//   - CheckStripe / CheckAliasedStripe read any cell, so they must run after
//     every stripe of the corresponding write pass has finished.
//
// Complexity quicksheet:
//   - Hermitian shortcut: N(N+1)/2 combines + N(N-1)/2 conjugations.
//   - Full pass: N² combines, plus N(N+1)/2 conjugations per check.

package matrix

import (
	"github.com/katalvlaran/lvlmoment/dictionary"
	"github.com/katalvlaran/lvlmoment/operator"
	"github.com/katalvlaran/lvlmoment/symbol"
)

// Combine is a pure rule producing one matrix cell from a row and a column word.
type Combine func(row, col operator.Sequence) operator.Sequence

// OperatorMatrixBuilder owns the buffers of one operator matrix build.
// Per-stripe methods may run concurrently for distinct stripes.
type OperatorMatrixBuilder struct {
	ctx     operator.Context
	rows    *operator.Generator
	cols    *operator.Generator
	combine Combine

	expectHermitian bool
	aliasing        bool
	dim             int
	rawHermitian    bool // set by RawMatrix

	raw     []operator.Sequence
	aliased []operator.Sequence // nil unless aliasing
}

// NewOperatorMatrixBuilder prepares a build over pair with the given rule.
// Aliasing is enabled when ctx.CanHaveAliases().
//
// Errors: ErrNilDictionary, ErrNilCombine.
// Complexity: O(N²) allocation.
func NewOperatorMatrixBuilder(ctx operator.Context, pair *dictionary.Pair, combine Combine, expectHermitian bool) (*OperatorMatrixBuilder, error) {
	if pair == nil {
		return nil, ErrNilDictionary
	}
	if combine == nil {
		return nil, ErrNilCombine
	}
	b := &OperatorMatrixBuilder{
		ctx:             ctx,
		rows:            pair.Conjugate(),
		cols:            pair.Forward(),
		combine:         combine,
		expectHermitian: expectHermitian,
		aliasing:        ctx.CanHaveAliases(),
		dim:             pair.Len(),
	}
	b.raw = make([]operator.Sequence, b.dim*b.dim)
	if b.aliasing {
		b.aliased = make([]operator.Sequence, b.dim*b.dim)
	}
	return b, nil
}

// Dimension returns N.
func (b *OperatorMatrixBuilder) Dimension() int { return b.dim }

// Aliasing reports whether an alias pass is part of the build.
func (b *OperatorMatrixBuilder) Aliasing() bool { return b.aliasing }

// HermitianShortcut reports whether only the upper triangle is combined.
func (b *OperatorMatrixBuilder) HermitianShortcut() bool { return b.expectHermitian && !b.aliasing }

// GenerateStripe combines every cell of the stripe's columns. Under the
// Hermitian shortcut column c holds rows 0..c, and the stripe also writes
// the mirrors M[c,r] = conj(M[r,c]).
func (b *OperatorMatrixBuilder) GenerateStripe(worker, workers int) {
	n := b.dim
	shortcut := b.HermitianShortcut()
	for c := worker; c < n; c += workers {
		col := b.cols.At(c)
		if shortcut {
			for r := 0; r <= c; r++ {
				v := b.combine(b.rows.At(r), col)
				b.raw[r*n+c] = v
				if r != c {
					b.raw[c*n+r] = b.ctx.Conjugate(v)
				}
			}
			continue
		}
		for r := range n {
			b.raw[r*n+c] = b.combine(b.rows.At(r), col)
		}
	}
}

// AliasStripe writes SimplifyAlias of every raw cell in the stripe's columns.
// No-op when aliasing is off.
func (b *OperatorMatrixBuilder) AliasStripe(worker, workers int) {
	if !b.aliasing {
		return
	}
	n := b.dim
	for c := worker; c < n; c += workers {
		for r := range n {
			b.aliased[r*n+c] = b.ctx.SimplifyAlias(b.raw[r*n+c])
		}
	}
}

// CheckStripe returns the row-major first violation among the stripe's
// upper-triangle cells of the raw matrix, or nil.
func (b *OperatorMatrixBuilder) CheckStripe(worker, workers int) *Coordinate {
	return b.firstViolation(b.raw, worker, workers)
}

// CheckAliasedStripe is CheckStripe over the aliased matrix.
func (b *OperatorMatrixBuilder) CheckAliasedStripe(worker, workers int) *Coordinate {
	if !b.aliasing {
		return nil
	}
	return b.firstViolation(b.aliased, worker, workers)
}

// firstViolation scans cells (r, c), r ≤ c, c in the stripe.
func (b *OperatorMatrixBuilder) firstViolation(data []operator.Sequence, worker, workers int) *Coordinate {
	n := b.dim
	var best *Coordinate
	for c := worker; c < n; c += workers {
		for r := 0; r <= c; r++ {
			if best != nil && best.Row <= r {
				break // later rows of this column cannot beat best
			}
			if !conjugateMatch(b.ctx, data[r*n+c], data[c*n+r]) {
				best = &Coordinate{Row: r, Col: c}
				break
			}
		}
	}
	return best
}

// RawMatrix freezes the raw buffer. violation is the reduced result of
// CheckStripe over all stripes (ignored under the Hermitian shortcut).
// Returns *HermiticityError when Hermiticity was expected and violated.
func (b *OperatorMatrixBuilder) RawMatrix(violation *Coordinate) (*OperatorMatrix, error) {
	if b.HermitianShortcut() {
		violation = nil
	}
	m, err := b.freeze(b.raw, violation, false)
	if err == nil {
		b.rawHermitian = m.hermitian
	}
	return m, err
}

// IdentifyStripe feeds the stripe's cells into c, reading the aliased buffer
// when aliasing. It may run before AliasedMatrix: aliased Hermiticity is not
// known yet, so every aliased cell is visited. Call after RawMatrix.
func (b *OperatorMatrixBuilder) IdentifyStripe(c *symbol.Collector, worker, workers int) {
	if b.aliasing {
		identifyCells(b.aliased, b.dim, false, c, worker, workers)
		return
	}
	identifyCells(b.raw, b.dim, b.rawHermitian, c, worker, workers)
}

// AliasedMatrix freezes the aliased buffer; nil when aliasing is off.
func (b *OperatorMatrixBuilder) AliasedMatrix(violation *Coordinate) (*OperatorMatrix, error) {
	if !b.aliasing {
		return nil, nil
	}
	return b.freeze(b.aliased, violation, true)
}

func (b *OperatorMatrixBuilder) freeze(data []operator.Sequence, violation *Coordinate, aliased bool) (*OperatorMatrix, error) {
	if violation != nil && b.expectHermitian {
		n := b.dim
		return nil, &HermiticityError{
			Row:     violation.Row,
			Col:     violation.Col,
			Entry:   b.ctx.Format(data[violation.Row*n+violation.Col]),
			Mirror:  b.ctx.Format(data[violation.Col*n+violation.Row]),
			Aliased: aliased,
		}
	}
	return &OperatorMatrix{
		dim:       b.dim,
		data:      data,
		hermitian: violation == nil,
		violation: violation,
		aliased:   aliased,
	}, nil
}

// Build runs every pass on the calling goroutine and returns the raw and
// (when aliasing) aliased matrices.
func (b *OperatorMatrixBuilder) Build() (raw, aliased *OperatorMatrix, err error) {
	b.GenerateStripe(0, 1)
	var violation *Coordinate
	if !b.HermitianShortcut() {
		violation = b.CheckStripe(0, 1)
	}
	if raw, err = b.RawMatrix(violation); err != nil {
		return nil, nil, err
	}
	if !b.aliasing {
		return raw, nil, nil
	}
	b.AliasStripe(0, 1)
	aliased, err = b.AliasedMatrix(b.CheckAliasedStripe(0, 1))
	if err != nil {
		return nil, nil, err
	}
	return raw, aliased, nil
}
