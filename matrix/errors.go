// SPDX-License-Identifier: MIT
// Package matrix: sentinel and typed errors.
// Callers match sentinels with errors.Is and typed failures with errors.As.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates that a row or column index is outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates operands of different dimension.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilDictionary indicates a nil generator pair.
	ErrNilDictionary = errors.New("matrix: nil dictionary pair")

	// ErrNilCombine indicates a nil combination rule.
	ErrNilCombine = errors.New("matrix: nil combination rule")

	// ErrNotHermitian indicates that a matrix expected to be Hermitian is not.
	// Reported as *HermiticityError.
	ErrNotHermitian = errors.New("matrix: matrix expected Hermitian is not")

	// ErrSymbolNotFound indicates a word missing from the symbol table at
	// emission time. Reported as *LookupError.
	ErrSymbolNotFound = errors.New("matrix: symbol not found")

	// ErrEmptyCombination indicates a polynomial combination with no terms.
	ErrEmptyCombination = errors.New("matrix: empty combination")

	// ErrNotSymbolic indicates an operation that needs symbols on a ValueMatrix.
	ErrNotSymbolic = errors.New("matrix: matrix holds values, not symbols")
)

// HermiticityError reports the first cell (row-major, Row ≤ Col) where
// M[Row,Col] differs from conj(M[Col,Row]).
type HermiticityError struct {
	Row, Col int
	Entry    string // formatted M[Row,Col]
	Mirror   string // formatted M[Col,Row]
	Aliased  bool   // detected after alias re-simplification
}

func (e *HermiticityError) Error() string {
	stage := "operator matrix"
	if e.Aliased {
		stage = "aliased operator matrix"
	}
	return fmt.Sprintf("%s: M[%d,%d] = %q but M[%d,%d] = %q: %v",
		stage, e.Row, e.Col, e.Entry, e.Col, e.Row, e.Mirror, ErrNotHermitian)
}

func (e *HermiticityError) Unwrap() error { return ErrNotHermitian }

// LookupError reports a matrix cell whose word has no registered symbol.
type LookupError struct {
	Row, Col int
	Sequence string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("cell [%d,%d] %q: %v", e.Row, e.Col, e.Sequence, ErrSymbolNotFound)
}

func (e *LookupError) Unwrap() error { return ErrSymbolNotFound }
