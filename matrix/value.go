// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math/cmplx"
	"slices"
)

// DefaultHermitianTolerance is the absolute tolerance used when
// classifying a ValueMatrix as Hermitian.
const DefaultHermitianTolerance = 1e-12

// ValueMatrix is an immutable N×N grid of complex numbers.
type ValueMatrix struct {
	dim       int
	data      []complex128
	hermitian bool
}

// NewValueMatrix copies row-major values into a ValueMatrix.
// Errors: ErrDimensionMismatch if len(values) != dim*dim.
func NewValueMatrix(dim int, values []complex128) (*ValueMatrix, error) {
	if dim < 0 || len(values) != dim*dim {
		return nil, fmt.Errorf("NewValueMatrix(%d): %d values: %w", dim, len(values), ErrDimensionMismatch)
	}
	m := &ValueMatrix{dim: dim, data: slices.Clone(values)}
	m.hermitian = m.checkHermitian(DefaultHermitianTolerance)
	return m, nil
}

// Dimension returns N.
func (m *ValueMatrix) Dimension() int { return m.dim }

// At returns M[row,col] or ErrOutOfRange.
func (m *ValueMatrix) At(row, col int) (complex128, error) {
	if row < 0 || col < 0 || row >= m.dim || col >= m.dim {
		return 0, fmt.Errorf("ValueMatrix.At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return m.data[row*m.dim+col], nil
}

// IsHermitian reports whether |M[r,c] - conj(M[c,r])| ≤ tolerance everywhere.
func (m *ValueMatrix) IsHermitian() bool { return m.hermitian }

func (m *ValueMatrix) checkHermitian(tol float64) bool {
	n := m.dim
	for r := range n {
		for c := r; c < n; c++ {
			if cmplx.Abs(m.data[r*n+c]-cmplx.Conj(m.data[c*n+r])) > tol {
				return false
			}
		}
	}
	return true
}

// Substitute evaluates a monomial matrix at the given symbol values.
// A conjugated entry uses conj(value).
// Complexity: O(N²) calls to value.
func Substitute(m *MonomialMatrix, value func(id int) complex128) *ValueMatrix {
	out := &ValueMatrix{dim: m.dim, data: make([]complex128, len(m.data))}
	for i, t := range m.data {
		if t.IsZero() {
			continue
		}
		v := value(t.ID)
		if t.Conjugated {
			v = cmplx.Conj(v)
		}
		out.data[i] = t.Factor * v
	}
	out.hermitian = out.checkHermitian(DefaultHermitianTolerance)
	return out
}
