// SPDX-License-Identifier: MIT

package operator

import "errors"

// Sentinel errors for algebra construction and word parsing.
// Every message is prefixed with "operator: ..." for grep-ability.
var (
	// ErrEmptyAlgebra indicates that an Algebra was requested with no operators.
	ErrEmptyAlgebra = errors.New("operator: algebra has no operators")

	// ErrTooManyOperators indicates that the operator count does not fit an ID.
	ErrTooManyOperators = errors.New("operator: too many operators")

	// ErrDuplicateOperator indicates that two operators share a name.
	ErrDuplicateOperator = errors.New("operator: duplicate operator name")

	// ErrEmptyOperatorName indicates an operator declared with an empty name.
	ErrEmptyOperatorName = errors.New("operator: operator name is empty")

	// ErrUnknownOperator indicates a name that is not declared in the algebra.
	ErrUnknownOperator = errors.New("operator: unknown operator")

	// ErrProjectorNotHermitian indicates a projector rule on a non-Hermitian operator.
	ErrProjectorNotHermitian = errors.New("operator: projector must be Hermitian")

	// ErrInvalidSymmetry indicates a symmetry that is not a bijection on the
	// operators or does not preserve adjoints.
	ErrInvalidSymmetry = errors.New("operator: invalid symmetry")

	// ErrSymmetryNeedsCommuting indicates that symmetry aliasing was requested
	// on an algebra where it would not commute with conjugation.
	ErrSymmetryNeedsCommuting = errors.New("operator: symmetry requires a commuting Hermitian algebra")
)
