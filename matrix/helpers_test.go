package matrix_test

import (
	"slices"
	"testing"

	"github.com/katalvlaran/lvlmoment/dictionary"
	"github.com/katalvlaran/lvlmoment/matrix"
	"github.com/katalvlaran/lvlmoment/operator"
	"github.com/stretchr/testify/require"
)

// hermitianAB returns a non-commuting algebra of Hermitian a, b.
func hermitianAB(t testing.TB, opts ...operator.AlgebraOption) *operator.Algebra {
	t.Helper()
	a, err := operator.NewAlgebra([]operator.Operator{{Name: "a", Hermitian: true}, {Name: "b", Hermitian: true}}, opts...)
	require.NoError(t, err)
	return a
}

// mustPair returns the dictionary pair of ctx at level.
func mustPair(t testing.TB, ctx operator.Context, level int) *dictionary.Pair {
	t.Helper()
	p, err := dictionary.New(ctx).Level(level)
	require.NoError(t, err)
	return p
}

// momentRule is the moment-matrix combination rule of ctx.
func momentRule(ctx operator.Context) matrix.Combine {
	return func(row, col operator.Sequence) operator.Sequence { return ctx.Multiply(row, col) }
}

// sortingAlias wraps an Algebra with an alias rule that sorts operators.
// Sorting does not commute with conjugation in a non-commuting algebra,
// so it breaks Hermiticity on purpose.
type sortingAlias struct {
	*operator.Algebra
}

func (s sortingAlias) CanHaveAliases() bool { return true }

func (s sortingAlias) SimplifyAlias(seq operator.Sequence) operator.Sequence {
	if seq.IsZero() {
		return seq
	}
	ops := seq.Ops()
	slices.Sort(ops)
	return s.Simplify(ops, seq.Sign())
}

// mustBuild runs a single-threaded operator matrix build.
func mustBuild(t testing.TB, ctx operator.Context, level int, rule matrix.Combine, hermitian bool) (*matrix.OperatorMatrix, *matrix.OperatorMatrix) {
	t.Helper()
	b, err := matrix.NewOperatorMatrixBuilder(ctx, mustPair(t, ctx, level), rule, hermitian)
	require.NoError(t, err)
	raw, aliased, err := b.Build()
	require.NoError(t, err)
	return raw, aliased
}

// format returns ctx.Format of m[r,c].
func format(t testing.TB, ctx operator.Context, m *matrix.OperatorMatrix, r, c int) string {
	t.Helper()
	s, err := m.At(r, c)
	require.NoError(t, err)
	return ctx.Format(s)
}
