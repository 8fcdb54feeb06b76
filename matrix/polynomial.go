// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"slices"
	"strings"
)

// Polynomial is a canonical sum of monomials: sorted by (ID, Conjugated),
// like terms merged, zero terms dropped.
type Polynomial []Monomial

// NewPolynomial canonicalizes terms.
// Complexity: O(k log k).
func NewPolynomial(terms ...Monomial) Polynomial {
	sorted := slices.Clone(terms)
	slices.SortFunc(sorted, func(x, y Monomial) int {
		if x.ID != y.ID {
			return x.ID - y.ID
		}
		switch {
		case x.Conjugated == y.Conjugated:
			return 0
		case !x.Conjugated:
			return -1
		}
		return 1
	})
	out := make(Polynomial, 0, len(sorted))
	for _, t := range sorted {
		if n := len(out); n > 0 && out[n-1].ID == t.ID && out[n-1].Conjugated == t.Conjugated {
			out[n-1].Factor += t.Factor
			continue
		}
		out = append(out, t)
	}
	return slices.DeleteFunc(out, func(t Monomial) bool { return t.IsZero() })
}

// IsZero reports whether the polynomial has no terms.
func (p Polynomial) IsZero() bool { return len(p) == 0 }

// String renders "0" or terms joined by " + ".
func (p Polynomial) String() string {
	if len(p) == 0 {
		return "0"
	}
	parts := make([]string, len(p))
	for i, t := range p {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

// PolynomialMatrix is an immutable N×N grid of Polynomials.
type PolynomialMatrix struct {
	dim       int
	data      []Polynomial
	hermitian bool
}

// Dimension returns N.
func (m *PolynomialMatrix) Dimension() int { return m.dim }

// At returns M[row,col] or ErrOutOfRange.
func (m *PolynomialMatrix) At(row, col int) (Polynomial, error) {
	if row < 0 || col < 0 || row >= m.dim || col >= m.dim {
		return nil, fmt.Errorf("PolynomialMatrix.At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return slices.Clone(m.data[row*m.dim+col]), nil
}

// IsHermitian reports whether the matrix was combined from Hermitian
// operands with real weights.
func (m *PolynomialMatrix) IsHermitian() bool { return m.hermitian }

// WeightedSum returns Σ weights[k] · mats[k].
// Implementation:
//   - Stage 1: validate a non-empty, equal-length, equal-dimension input.
//   - Stage 2: for each cell gather the weighted monomials and canonicalize.
//
// Errors: ErrEmptyCombination, ErrDimensionMismatch.
// Complexity: O(K · N² log K).
func WeightedSum(weights []float64, mats ...*MonomialMatrix) (*PolynomialMatrix, error) {
	if len(mats) == 0 {
		return nil, ErrEmptyCombination
	}
	if len(weights) != len(mats) {
		return nil, fmt.Errorf("WeightedSum: %d weights for %d matrices: %w", len(weights), len(mats), ErrDimensionMismatch)
	}
	n := mats[0].dim
	hermitian := true
	for k, m := range mats {
		if m.dim != n {
			return nil, fmt.Errorf("WeightedSum: operand %d has dimension %d, want %d: %w", k, m.dim, n, ErrDimensionMismatch)
		}
		hermitian = hermitian && m.hermitian
	}

	out := &PolynomialMatrix{dim: n, data: make([]Polynomial, n*n), hermitian: hermitian}
	terms := make([]Monomial, 0, len(mats))
	for i := range out.data {
		terms = terms[:0]
		for k, m := range mats {
			t := m.data[i]
			t.Factor *= complex(weights[k], 0)
			terms = append(terms, t)
		}
		out.data[i] = NewPolynomial(terms...)
	}
	return out, nil
}

// PolynomialFromMonomial lifts a monomial matrix to one-term polynomials.
func PolynomialFromMonomial(m *MonomialMatrix) *PolynomialMatrix {
	out := &PolynomialMatrix{dim: m.dim, data: make([]Polynomial, len(m.data)), hermitian: m.hermitian}
	for i, t := range m.data {
		out.data[i] = NewPolynomial(t)
	}
	return out
}
