package engine_test

import (
	"math"
	"slices"
	"testing"

	"github.com/katalvlaran/lvlmoment/dictionary"
	"github.com/katalvlaran/lvlmoment/engine"
	"github.com/katalvlaran/lvlmoment/matrix"
	"github.com/katalvlaran/lvlmoment/operator"
	"github.com/katalvlaran/lvlmoment/parallel"
	"github.com/katalvlaran/lvlmoment/symbol"
	"github.com/stretchr/testify/require"
)

func newAlgebra(t testing.TB, ops []operator.Operator, opts ...operator.AlgebraOption) *operator.Algebra {
	t.Helper()
	alg, err := operator.NewAlgebra(ops, opts...)
	require.NoError(t, err)
	return alg
}

// hermitianAB is the non-commuting algebra of Hermitian a, b.
func hermitianAB(t testing.TB) *operator.Algebra {
	return newAlgebra(t, []operator.Operator{{Name: "a", Hermitian: true}, {Name: "b", Hermitian: true}})
}

// build runs BuildMatrix over fresh table and dictionary.
func build(t testing.TB, ctx operator.Context, index engine.Index, policy parallel.Policy, opts ...engine.Option) (*matrix.MonomialMatrix, *symbol.Table, error) {
	t.Helper()
	table := symbol.NewTable(ctx)
	m, err := engine.BuildMatrix(ctx, table, dictionary.New(ctx), index, policy, opts...)
	return m, table, err
}

// sortingAlias aliases every word to its sorted form, which breaks
// Hermiticity in a non-commuting algebra.
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

// panicAbove panics whenever a product reaches the given length.
type panicAbove struct {
	*operator.Algebra
	limit int
}

func (p panicAbove) Multiply(lhs, rhs operator.Sequence) operator.Sequence {
	out := p.Algebra.Multiply(lhs, rhs)
	if out.Len() >= p.limit {
		panic("product too long")
	}
	return out
}

// markedHash tags the word produced by poisonedAlias.
const markedHash = math.MaxUint64

// poisonedAlias aliases target to a marked copy whose conjugation panics.
// Only identification conjugates aliased cells, so the failure happens in
// that phase on whichever worker owns the target's column.
type poisonedAlias struct {
	*operator.Algebra
	target operator.Sequence
}

func (p poisonedAlias) CanHaveAliases() bool { return true }

func (p poisonedAlias) SimplifyAlias(seq operator.Sequence) operator.Sequence {
	if !seq.IsZero() && seq.Hash() == p.target.Hash() {
		return operator.NewSequence(seq.Ops(), markedHash, seq.Sign())
	}
	return seq
}

func (p poisonedAlias) Conjugate(seq operator.Sequence) operator.Sequence {
	if seq.Hash() == markedHash {
		panic("conjugate of marked word")
	}
	return p.Algebra.Conjugate(seq)
}
