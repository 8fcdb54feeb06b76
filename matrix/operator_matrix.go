// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/lvlmoment/operator"
)

// Coordinate addresses one cell.
type Coordinate struct {
	Row, Col int
}

// Less orders coordinates row-major: smaller row first, then smaller column.
func (c Coordinate) Less(o Coordinate) bool {
	return c.Row < o.Row || (c.Row == o.Row && c.Col < o.Col)
}

// EarliestViolation returns the row-major smallest of the non-nil candidates.
func EarliestViolation(candidates ...*Coordinate) *Coordinate {
	var best *Coordinate
	for _, c := range candidates {
		if c != nil && (best == nil || c.Less(*best)) {
			best = c
		}
	}
	return best
}

// OperatorMatrix is an immutable N×N grid of canonical words.
type OperatorMatrix struct {
	dim       int
	data      []operator.Sequence // row-major, len == dim*dim
	hermitian bool
	violation *Coordinate // first non-Hermitian cell, nil when Hermitian
	aliased   bool
}

// Dimension returns N.
func (m *OperatorMatrix) Dimension() int { return m.dim }

// At returns M[row,col] or ErrOutOfRange.
func (m *OperatorMatrix) At(row, col int) (operator.Sequence, error) {
	if row < 0 || col < 0 || row >= m.dim || col >= m.dim {
		return operator.Sequence{}, fmt.Errorf("OperatorMatrix.At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return m.data[row*m.dim+col], nil
}

// IsHermitian reports whether M[r,c] = conj(M[c,r]) for all cells.
func (m *OperatorMatrix) IsHermitian() bool { return m.hermitian }

// FirstViolation returns the row-major first non-Hermitian cell, if any.
func (m *OperatorMatrix) FirstViolation() (Coordinate, bool) {
	if m.violation == nil {
		return Coordinate{}, false
	}
	return *m.violation, true
}

// IsAliased reports whether the words went through SimplifyAlias.
func (m *OperatorMatrix) IsAliased() bool { return m.aliased }

// Sequences returns a copy of the row-major cells.
func (m *OperatorMatrix) Sequences() []operator.Sequence { return slices.Clone(m.data) }

// Format renders the grid one row per line using ctx.Format.
func (m *OperatorMatrix) Format(ctx operator.Context) string {
	var sb strings.Builder
	for r := range m.dim {
		sb.WriteString("[")
		for c := range m.dim {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(ctx.Format(m.data[r*m.dim+c]))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// conjugateMatch reports whether x == conj(y).
func conjugateMatch(ctx operator.Context, x, y operator.Sequence) bool {
	return x.Equal(ctx.Conjugate(y))
}
