// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math/cmplx"
	"slices"
	"strconv"
	"strings"
)

// Monomial is one symbolic entry: Factor · S[ID], or Factor · conj(S[ID])
// when Conjugated.
type Monomial struct {
	ID         int
	Factor     complex128
	Conjugated bool
}

// IsZero reports whether the entry vanishes.
func (m Monomial) IsZero() bool { return m.Factor == 0 }

// Conj returns the complex conjugate of the entry. For a Hermitian symbol
// the conjugation flag stays cleared.
func (m Monomial) Conj(hermitianSymbol bool) Monomial {
	out := Monomial{ID: m.ID, Factor: cmplx.Conj(m.Factor)}
	if !hermitianSymbol {
		out.Conjugated = !m.Conjugated
	}
	return out
}

func (m Monomial) scale(f complex128) Monomial {
	m.Factor *= f
	return m
}

// String renders the entry, e.g. "0", "#3", "-#4*", "(0+2i)#5".
func (m Monomial) String() string {
	if m.IsZero() {
		return "0"
	}
	var sb strings.Builder
	switch m.Factor {
	case 1:
	case -1:
		sb.WriteByte('-')
	default:
		sb.WriteString(strconv.FormatComplex(m.Factor, 'g', -1, 128))
	}
	sb.WriteByte('#')
	sb.WriteString(strconv.Itoa(m.ID))
	if m.Conjugated {
		sb.WriteByte('*')
	}
	return sb.String()
}

// MonomialMatrix is an immutable N×N grid of Monomials.
type MonomialMatrix struct {
	dim       int
	data      []Monomial // row-major
	prefactor complex128
	hermitian bool

	ops     *OperatorMatrix // unaliased source
	aliased *OperatorMatrix // nil when the Context has no aliases
}

// Dimension returns N.
func (m *MonomialMatrix) Dimension() int { return m.dim }

// At returns M[row,col] or ErrOutOfRange.
func (m *MonomialMatrix) At(row, col int) (Monomial, error) {
	if row < 0 || col < 0 || row >= m.dim || col >= m.dim {
		return Monomial{}, fmt.Errorf("MonomialMatrix.At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return m.data[row*m.dim+col], nil
}

// Monomials returns a copy of the row-major cells.
func (m *MonomialMatrix) Monomials() []Monomial { return slices.Clone(m.data) }

// Prefactor returns the global scalar applied to every entry.
func (m *MonomialMatrix) Prefactor() complex128 { return m.prefactor }

// IsHermitian reports whether the symbolic matrix is Hermitian.
func (m *MonomialMatrix) IsHermitian() bool { return m.hermitian }

// OperatorMatrix returns the unaliased operator matrix the entries came from.
func (m *MonomialMatrix) OperatorMatrix() *OperatorMatrix { return m.ops }

// AliasedOperatorMatrix returns the aliased operator matrix, if any.
func (m *MonomialMatrix) AliasedOperatorMatrix() (*OperatorMatrix, bool) {
	return m.aliased, m.aliased != nil
}

// IncludedSymbols returns the distinct symbol ids referenced by non-zero entries, ascending.
func (m *MonomialMatrix) IncludedSymbols() []int {
	seen := make(map[int]struct{})
	for _, e := range m.data {
		if !e.IsZero() {
			seen[e.ID] = struct{}{}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// String renders the grid one row per line.
func (m *MonomialMatrix) String() string {
	var sb strings.Builder
	for r := range m.dim {
		sb.WriteString("[")
		for c := range m.dim {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.data[r*m.dim+c].String())
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
