// SPDX-License-Identifier: MIT

package operator

// Context supplies the algebra rules consumed by the matrix engine.
//
// Implementations must be safe for concurrent use by multiple goroutines
// and must be pure: the same inputs always yield the same outputs. The
// engine never mutates a Context and relies on the following contract:
//
//   - Hash is shortlex-monotone and collision-free on canonical words,
//     ZeroHash and IdentityHash are reserved.
//   - Generate(k) returns unique, non-zero canonical words sorted by hash;
//     Generate(k) is a prefix of Generate(k') for k < k'.
//   - Conjugate(Conjugate(x)) equals x.
//   - SimplifyAlias commutes with Conjugate.
type Context interface {
	// Size returns the number of operators (ids are 0..Size()-1).
	Size() int

	// Generate returns every canonical word of length ≤ maxLength.
	Generate(maxLength int) []Sequence

	// Simplify canonicalizes a raw word with the given scalar.
	Simplify(raw []ID, sign Sign) Sequence

	// Conjugate returns the canonical Hermitian conjugate of seq.
	Conjugate(seq Sequence) Sequence

	// Multiply returns the canonical product lhs·rhs.
	Multiply(lhs, rhs Sequence) Sequence

	// Hash returns the structural hash of canonical ops.
	Hash(ops []ID) uint64

	// SimplifyAlias maps seq to its alias-class representative.
	SimplifyAlias(seq Sequence) Sequence

	// CanHaveAliases reports whether SimplifyAlias may change a word.
	CanHaveAliases() bool

	// CanBeNonHermitian reports whether any word may differ from its conjugate.
	CanBeNonHermitian() bool

	// Format renders seq with operator names.
	Format(seq Sequence) string
}
