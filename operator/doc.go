// Package operator defines operator words and the algebra contract the
// matrix engine consumes.
//
// The package provides:
//
//   - Sequence: a canonical word over operator ids with a scalar Sign
//     (±1, ±i), a zero flag and a structural hash.
//   - Context: the algebra rules (canonicalization, conjugation, hashing,
//     aliasing, word generation) the engine borrows for the duration of a build.
//   - Algebra: a reference Context over named operators with optional
//     commutation, projector, orthogonality and symmetry rules.
//   - Generator: an ordered list of canonical words up to a maximum length.
//
// Hashes are shortlex: every shorter word hashes below every longer word,
// words of equal length are ordered lexicographically by operator id.
// Hash 0 is reserved for Zero and hash 1 for Identity (the empty word).
//
// Sequences are immutable once built and safe to share across goroutines.
package operator
