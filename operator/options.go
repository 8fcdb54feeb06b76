// SPDX-License-Identifier: MIT

package operator

// Operator declares one named generator of an Algebra.
// A non-Hermitian operator "x" automatically gets an adjoint "x*".
type Operator struct {
	Name      string
	Hermitian bool
}

// AdjointSuffix is appended to a non-Hermitian operator's name to form its adjoint.
const AdjointSuffix = "*"

// AlgebraOption configures an Algebra before creation.
type AlgebraOption func(cfg *algebraConfig)

// algebraConfig collects name-based rules; names are resolved in NewAlgebra.
type algebraConfig struct {
	commuting  bool
	projectors []string
	orthogonal [][2]string
	symmetries []map[string]string
}

// WithCommuting makes every pair of operators commute.
func WithCommuting() AlgebraOption {
	return func(cfg *algebraConfig) { cfg.commuting = true }
}

// WithProjectors marks the named Hermitian operators as idempotent (x·x = x).
func WithProjectors(names ...string) AlgebraOption {
	return func(cfg *algebraConfig) { cfg.projectors = append(cfg.projectors, names...) }
}

// WithOrthogonal declares x·y = y·x = 0 for the named operators.
// In a non-commuting algebra only adjacent occurrences vanish.
func WithOrthogonal(x, y string) AlgebraOption {
	return func(cfg *algebraConfig) { cfg.orthogonal = append(cfg.orthogonal, [2]string{x, y}) }
}

// WithSymmetry adds an operator relabeling (name → name) to the alias group.
// Unmapped operators are fixed. The group generated by all symmetries is
// used by SimplifyAlias, which picks the smallest-hash image of a word.
// Symmetries are only accepted on commuting algebras of Hermitian operators.
func WithSymmetry(perm map[string]string) AlgebraOption {
	return func(cfg *algebraConfig) { cfg.symmetries = append(cfg.symmetries, perm) }
}
