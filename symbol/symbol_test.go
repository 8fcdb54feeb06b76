package symbol_test

import (
	"testing"

	"github.com/katalvlaran/lvlmoment/operator"
	"github.com/katalvlaran/lvlmoment/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture is a non-commuting algebra of Hermitian a, b plus non-Hermitian x.
type fixture struct {
	alg *operator.Algebra
	t   *testing.T
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	alg, err := operator.NewAlgebra([]operator.Operator{
		{Name: "a", Hermitian: true},
		{Name: "b", Hermitian: true},
		{Name: "x"},
	})
	require.NoError(t, err)
	return fixture{alg: alg, t: t}
}

func (f fixture) w(names ...string) operator.Sequence {
	f.t.Helper()
	s, err := f.alg.Word(names...)
	require.NoError(f.t, err)
	return s
}

func TestClassify(t *testing.T) {
	f := newFixture(t)

	aa := symbol.Classify(f.alg, f.w("a", "a"))
	assert.True(t, aa.Hermitian)
	assert.Equal(t, aa.ForwardHash(), aa.ConjugateHash())
	assert.Equal(t, symbol.Unassigned, aa.ID)

	ab := symbol.Classify(f.alg, f.w("a", "b"))
	ba := symbol.Classify(f.alg, f.w("b", "a").WithSign(operator.Negative))
	assert.False(t, ab.Hermitian)
	assert.Equal(t, ab.Key(), ba.Key(), "both members map to the smaller hash")
	assert.True(t, ab.Forward.Equal(ba.Forward))
	assert.Equal(t, operator.Positive, ba.Forward.Sign(), "stored words are unsigned")
	assert.Less(t, ab.ForwardHash(), ab.ConjugateHash())
}

func TestCollector_DeduplicatesPairs(t *testing.T) {
	f := newFixture(t)
	c := symbol.NewCollector(f.alg, nil)
	require.Equal(t, 2, c.Len(), "zero and identity are seeded")

	c.Add(f.w("b", "a"))
	c.Add(f.w("a", "b"))
	c.Add(f.w("a", "b").WithSign(operator.Imaginary))
	c.Add(operator.Zero())
	c.Add(operator.Identity())
	c.Add(f.w("x"))
	c.Add(f.w("x*"))

	set := c.Set()
	require.Equal(t, 4, set.Len())
	assert.Equal(t, []uint64{
		operator.ZeroHash,
		operator.IdentityHash,
		f.w("x").Hash(),
		f.w("a", "b").Hash(),
	}, set.Keys())
}

// TestCollector_SelfAdjointWords checks that a Hermitian word is its own
// partner and is stored exactly once under its own hash.
func TestCollector_SelfAdjointWords(t *testing.T) {
	f := newFixture(t)
	tbl := symbol.NewTable(f.alg)
	c := symbol.NewCollector(f.alg, tbl.Contains)

	c.Add(f.w("a"))
	c.Add(f.w("a"))
	c.Add(f.w("a", "a").WithSign(operator.Negative))
	c.Add(f.w("x*", "x"))
	require.Equal(t, 5, c.Len(), "zero, identity, a, a a, x* x")

	assert.Equal(t, []int{2, 3, 4}, tbl.Merge(c.Set()))
	for _, word := range [][]string{{"a"}, {"a", "a"}, {"x*", "x"}} {
		e, ok := tbl.Lookup(f.w(word...))
		require.True(t, ok, "%v", word)
		assert.False(t, e.Conjugated, "%v", word)
		sym, err := tbl.Symbol(e.ID)
		require.NoError(t, err)
		assert.True(t, sym.Hermitian, "%v", word)
	}
}

func TestCollector_SkipsKnown(t *testing.T) {
	f := newFixture(t)
	known := f.w("b", "a").Hash()
	c := symbol.NewCollector(f.alg, func(h uint64) bool { return h == known })
	c.Add(f.w("a", "b"))
	assert.Equal(t, 2, c.Len(), "conjugate partner already registered")
}

func TestMergeSets_UnionLeftWins(t *testing.T) {
	f := newFixture(t)
	a := symbol.Classify(f.alg, f.w("a"))
	b := symbol.Classify(f.alg, f.w("b"))
	ab := symbol.Classify(f.alg, f.w("a", "b"))
	marked := b
	marked.ID = 42

	left := symbol.NewSet(a, b)
	right := symbol.NewSet(marked, ab)
	merged := symbol.MergeSets(left, right)

	require.Equal(t, 3, merged.Len())
	assert.Equal(t, []uint64{a.Key(), b.Key(), ab.Key()}, merged.Keys())
	assert.Equal(t, symbol.Unassigned, merged.At(1).ID, "left entry kept on shared key")

	left.Absorb(right)
	assert.Equal(t, merged.Keys(), left.Keys())
	assert.True(t, left.Contains(ab.Key()))
	assert.False(t, left.Contains(f.w("b", "b").Hash()))
}

func TestNewSet_SortsAndDeduplicates(t *testing.T) {
	f := newFixture(t)
	s := symbol.NewSet(
		symbol.Classify(f.alg, f.w("b", "a")),
		symbol.Classify(f.alg, f.w("a")),
		symbol.Classify(f.alg, f.w("a", "b")),
	)
	assert.Equal(t, []uint64{f.w("a").Hash(), f.w("a", "b").Hash()}, s.Keys())
}

func TestTable_MergeAssignsSequentialIDs(t *testing.T) {
	f := newFixture(t)
	tbl := symbol.NewTable(f.alg)
	require.Equal(t, 2, tbl.Len())

	c := symbol.NewCollector(f.alg, tbl.Contains)
	c.Add(f.w("b", "a"))
	c.Add(f.w("a"))
	added := tbl.Merge(c.Set())
	assert.Equal(t, []int{2, 3}, added, "ids follow key order, not discovery order")

	assert.Empty(t, tbl.Merge(c.Set()), "merge is idempotent")

	eA, ok := tbl.Lookup(f.w("a"))
	require.True(t, ok)
	assert.Equal(t, symbol.Entry{ID: 2}, eA)

	eAB, ok := tbl.Lookup(f.w("a", "b"))
	require.True(t, ok)
	eBA, ok := tbl.Lookup(f.w("b", "a"))
	require.True(t, ok)
	assert.Equal(t, eAB.ID, eBA.ID)
	assert.False(t, eAB.Conjugated)
	assert.True(t, eBA.Conjugated)

	sym, err := tbl.Symbol(eAB.ID)
	require.NoError(t, err)
	assert.False(t, sym.Hermitian)
	_, err = tbl.Symbol(99)
	assert.ErrorIs(t, err, symbol.ErrUnknownSymbol)

	assert.Len(t, tbl.Entries(), 5, "0, 1, a, ab, ba")
}

func TestTable_MergeConjugatedEntry(t *testing.T) {
	f := newFixture(t)
	tbl := symbol.NewTable(f.alg)
	c := symbol.NewCollector(f.alg, tbl.Contains)
	c.Add(f.w("x*", "a"))
	assert.Equal(t, []int{2}, tbl.Merge(c.Set()))

	e, ok := tbl.Lookup(f.w("x*", "a"))
	require.True(t, ok)
	assert.Equal(t, 2, e.ID)
	assert.True(t, e.Conjugated, "x* a has the larger hash of the pair (a x, x* a)")
	fwd, ok := tbl.Lookup(f.w("a", "x"))
	require.True(t, ok)
	assert.Equal(t, symbol.Entry{ID: 2}, fwd)
}
