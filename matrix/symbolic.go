// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Kind enumerates the closed set of symbolic matrix representations.
type Kind uint8

const (
	// KindMonomial holds one symbol reference per cell.
	KindMonomial Kind = iota + 1
	// KindPolynomial holds a sum of symbol references per cell.
	KindPolynomial
	// KindValue holds a number per cell.
	KindValue
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMonomial:
		return "monomial"
	case KindPolynomial:
		return "polynomial"
	case KindValue:
		return "value"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// SymbolicMatrix is a tagged union over the three matrix kinds. Exactly one
// payload is set, selected by Kind. The zero value is invalid.
type SymbolicMatrix struct {
	kind       Kind
	monomial   *MonomialMatrix
	polynomial *PolynomialMatrix
	value      *ValueMatrix
}

// FromMonomial wraps m.
func FromMonomial(m *MonomialMatrix) SymbolicMatrix {
	return SymbolicMatrix{kind: KindMonomial, monomial: m}
}

// FromPolynomial wraps m.
func FromPolynomial(m *PolynomialMatrix) SymbolicMatrix {
	return SymbolicMatrix{kind: KindPolynomial, polynomial: m}
}

// FromValue wraps m.
func FromValue(m *ValueMatrix) SymbolicMatrix {
	return SymbolicMatrix{kind: KindValue, value: m}
}

// Kind returns the active representation.
func (s SymbolicMatrix) Kind() Kind { return s.kind }

// Monomial returns the monomial payload.
func (s SymbolicMatrix) Monomial() (*MonomialMatrix, bool) { return s.monomial, s.kind == KindMonomial }

// Polynomial returns the polynomial payload.
func (s SymbolicMatrix) Polynomial() (*PolynomialMatrix, bool) {
	return s.polynomial, s.kind == KindPolynomial
}

// Value returns the value payload.
func (s SymbolicMatrix) Value() (*ValueMatrix, bool) { return s.value, s.kind == KindValue }

// Dimension returns N of the active payload.
func (s SymbolicMatrix) Dimension() int {
	switch s.kind {
	case KindMonomial:
		return s.monomial.Dimension()
	case KindPolynomial:
		return s.polynomial.Dimension()
	case KindValue:
		return s.value.Dimension()
	}
	panic(fmt.Sprintf("matrix: invalid %s", s.kind))
}

// IsHermitian reports Hermiticity of the active payload.
func (s SymbolicMatrix) IsHermitian() bool {
	switch s.kind {
	case KindMonomial:
		return s.monomial.IsHermitian()
	case KindPolynomial:
		return s.polynomial.IsHermitian()
	case KindValue:
		return s.value.IsHermitian()
	}
	panic(fmt.Sprintf("matrix: invalid %s", s.kind))
}

// AsPolynomial converts a symbolic payload to polynomial form.
// Errors: ErrNotSymbolic for KindValue.
func (s SymbolicMatrix) AsPolynomial() (*PolynomialMatrix, error) {
	switch s.kind {
	case KindMonomial:
		return PolynomialFromMonomial(s.monomial), nil
	case KindPolynomial:
		return s.polynomial, nil
	case KindValue:
		return nil, ErrNotSymbolic
	}
	panic(fmt.Sprintf("matrix: invalid %s", s.kind))
}

// Describe returns a one-line summary, e.g. "3x3 Hermitian monomial matrix".
func (s SymbolicMatrix) Describe() string {
	h := "non-Hermitian"
	if s.IsHermitian() {
		h = "Hermitian"
	}
	n := s.Dimension()
	return fmt.Sprintf("%dx%d %s %s matrix", n, n, h, s.kind)
}
