package engine_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/lvlmoment/dictionary"
	"github.com/katalvlaran/lvlmoment/engine"
	"github.com/katalvlaran/lvlmoment/matrix"
	"github.com/katalvlaran/lvlmoment/operator"
	"github.com/katalvlaran/lvlmoment/parallel"
	"github.com/katalvlaran/lvlmoment/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// TestBuildMatrix_MomentLevelOne is the depth-1 moment matrix over two
// non-commuting Hermitian generators.
func TestBuildMatrix_MomentLevelOne(t *testing.T) {
	alg := hermitianAB(t)
	for _, policy := range []parallel.Policy{parallel.PolicyNever, parallel.PolicyAlways} {
		t.Run(policy.String(), func(t *testing.T) {
			m, table, err := build(t, alg, engine.MomentIndex(1), policy, engine.WithWorkers(2))
			require.NoError(t, err)
			require.Equal(t, 3, m.Dimension())
			assert.True(t, m.IsHermitian())

			// 0, 1, a, b, a a, a b / b a, b b
			assert.Equal(t, 7, table.Len())
			upper, err := m.At(1, 2)
			require.NoError(t, err)
			lower, err := m.At(2, 1)
			require.NoError(t, err)
			assert.Equal(t, upper.ID, lower.ID)
			assert.NotEqual(t, upper.Conjugated, lower.Conjugated)

			id, err := m.At(0, 0)
			require.NoError(t, err)
			assert.Equal(t, matrix.Monomial{ID: symbol.IdentityID, Factor: 1}, id)
		})
	}
}

// TestBuildMatrix_Determinism builds the same index with 1, 2, 4 and 8
// workers and compares matrix content and table state with the
// single-threaded build.
func TestBuildMatrix_Determinism(t *testing.T) {
	xy := newAlgebra(t, []operator.Operator{{Name: "x"}, {Name: "y", Hermitian: true}})
	y, err := xy.Word("y")
	require.NoError(t, err)
	x, err := xy.Word("x")
	require.NoError(t, err)
	sym := newAlgebra(t,
		[]operator.Operator{{Name: "a", Hermitian: true}, {Name: "b", Hermitian: true}, {Name: "c", Hermitian: true}},
		operator.WithCommuting(), operator.WithSymmetry(map[string]string{"a": "b", "b": "c", "c": "a"}))

	cases := []struct {
		name  string
		ctx   operator.Context
		index engine.Index
	}{
		{"moment x,y", xy, engine.MomentIndex(3)},
		{"localizing y", xy, engine.LocalizingIndex(2, y)},
		{"localizing x", xy, engine.LocalizingIndex(2, x).WithScale(-0.5)},
		{"aliased moment", sym, engine.MomentIndex(2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want, wantTable, err := build(t, tc.ctx, tc.index, parallel.PolicyNever)
			require.NoError(t, err)
			for _, workers := range []int{1, 2, 4, 8} {
				got, gotTable, err := build(t, tc.ctx, tc.index, parallel.PolicyAlways,
					engine.WithWorkers(workers), engine.WithLogger(zaptest.NewLogger(t)))
				require.NoError(t, err, "workers=%d", workers)
				assert.Empty(t, cmp.Diff(want.Monomials(), got.Monomials()), "workers=%d matrix", workers)
				assert.Empty(t, cmp.Diff(wantTable.Entries(), gotTable.Entries()), "workers=%d table", workers)
				assert.Equal(t, want.IsHermitian(), got.IsHermitian())
			}
		})
	}
}

func TestBuildMatrix_ThresholdSelectsStrategy(t *testing.T) {
	alg := hermitianAB(t)
	// Optional below and above the threshold yields the same matrix.
	low, _, err := build(t, alg, engine.MomentIndex(2), parallel.PolicyOptional, engine.WithThreshold(1), engine.WithWorkers(3))
	require.NoError(t, err)
	high, _, err := build(t, alg, engine.MomentIndex(2), parallel.PolicyOptional, engine.WithThreshold(1<<20))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(high.Monomials(), low.Monomials()))
}

func TestBuildMatrix_Localizing(t *testing.T) {
	xy := newAlgebra(t, []operator.Operator{{Name: "x"}, {Name: "y", Hermitian: true}})
	y, _ := xy.Word("y")
	x, _ := xy.Word("x")

	m, _, err := build(t, xy, engine.LocalizingIndex(1, y), parallel.PolicyNever)
	require.NoError(t, err)
	assert.True(t, m.IsHermitian())
	corner, err := m.OperatorMatrix().At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "y", xy.Format(corner))

	m, _, err = build(t, xy, engine.LocalizingIndex(1, x), parallel.PolicyNever)
	require.NoError(t, err)
	assert.False(t, m.IsHermitian())

	assert.False(t, engine.LocalizingIndex(1, x).ExpectHermitian(xy))
	assert.True(t, engine.LocalizingIndex(1, y).ExpectHermitian(xy))
	assert.Equal(t, "-0.5·localizing[1; x]", engine.LocalizingIndex(1, x).WithScale(-0.5).Format(xy))
}

// TestBuildMatrix_HermiticityFailure promises a Hermitian moment matrix on
// a context whose alias rule breaks it.
func TestBuildMatrix_HermiticityFailure(t *testing.T) {
	ctx := sortingAlias{hermitianAB(t)}
	for _, policy := range []parallel.Policy{parallel.PolicyNever, parallel.PolicyAlways} {
		t.Run(policy.String(), func(t *testing.T) {
			m, _, err := build(t, ctx, engine.MomentIndex(1), policy, engine.WithWorkers(3))
			require.ErrorIs(t, err, matrix.ErrNotHermitian)
			assert.Nil(t, m)
			var herr *matrix.HermiticityError
			require.True(t, errors.As(err, &herr))
			assert.Equal(t, 1, herr.Row)
			assert.Equal(t, 2, herr.Col)
			assert.True(t, herr.Aliased)
		})
	}
}

func TestBuildMatrix_WorkerPanic(t *testing.T) {
	ctx := panicAbove{Algebra: hermitianAB(t), limit: 2}
	_, _, err := build(t, ctx, engine.MomentIndex(1), parallel.PolicyAlways, engine.WithWorkers(3))
	require.ErrorIs(t, err, parallel.ErrWorkerPanic)
	var werr *parallel.WorkerError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "generate", werr.Phase)
	assert.Equal(t, 1, werr.Worker)
}

// TestBuildMatrix_IdentifyFailureOnPartner fails worker 1 inside the merge
// phase: worker 0 must stop waiting for it and the build must report
// worker 1's panic, not the propagated partner failure.
func TestBuildMatrix_IdentifyFailureOnPartner(t *testing.T) {
	alg := hermitianAB(t)
	aa, err := alg.Word("a", "a")
	require.NoError(t, err)
	// Moment level 1 over [1, a, b]: "a a" is only at (1,1), column 1.
	ctx := poisonedAlias{Algebra: alg, target: aa}

	done := make(chan error, 1)
	go func() {
		_, _, err := build(t, ctx, engine.MomentIndex(1), parallel.PolicyAlways, engine.WithWorkers(2))
		done <- err
	}()

	select {
	case err = <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("build did not return after a worker failed during identification")
	}
	require.ErrorIs(t, err, parallel.ErrWorkerPanic)
	assert.NotErrorIs(t, err, parallel.ErrPartnerFailed)
	var werr *parallel.WorkerError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "identify", werr.Phase)
	assert.Equal(t, 1, werr.Worker)
}

func TestBuildMatrix_InvalidInput(t *testing.T) {
	alg := hermitianAB(t)
	other := hermitianAB(t)
	table := symbol.NewTable(alg)
	dict := dictionary.New(alg)

	tests := []struct {
		name string
		err  error
		run  func() error
	}{
		{"nil context", engine.ErrNilContext, func() error {
			_, err := engine.BuildMatrix(nil, table, dict, engine.MomentIndex(1), parallel.PolicyNever)
			return err
		}},
		{"nil table", engine.ErrNilTable, func() error {
			_, err := engine.BuildMatrix(alg, nil, dict, engine.MomentIndex(1), parallel.PolicyNever)
			return err
		}},
		{"nil dictionary", engine.ErrNilDictionary, func() error {
			_, err := engine.BuildMatrix(alg, table, nil, engine.MomentIndex(1), parallel.PolicyNever)
			return err
		}},
		{"foreign table", engine.ErrContextMismatch, func() error {
			_, err := engine.BuildMatrix(alg, symbol.NewTable(other), dict, engine.MomentIndex(1), parallel.PolicyNever)
			return err
		}},
		{"negative level", engine.ErrInvalidIndex, func() error {
			_, err := engine.BuildMatrix(alg, table, dict, engine.MomentIndex(-1), parallel.PolicyNever)
			return err
		}},
		{"unknown kind", engine.ErrInvalidIndex, func() error {
			_, err := engine.BuildMatrix(alg, table, dict, engine.Index{Level: 1}, parallel.PolicyNever)
			return err
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), tc.err)
		})
	}
	assert.Equal(t, 2, table.Len(), "failed builds must not register symbols")
}

func TestOptions_PanicOnNegative(t *testing.T) {
	assert.Panics(t, func() { engine.WithThreshold(-1) })
	assert.Panics(t, func() { engine.WithMaxWorkers(-1) })
	assert.Panics(t, func() { engine.WithWorkers(-1) })
}

func TestBuildMatrix_Prefactor(t *testing.T) {
	alg := hermitianAB(t)
	m, _, err := build(t, alg, engine.MomentIndex(1).WithScale(2), parallel.PolicyNever)
	require.NoError(t, err)
	assert.Equal(t, complex(2, 0), m.Prefactor())
	for i, e := range m.Monomials() {
		assert.Equal(t, complex(2, 0), e.Factor, fmt.Sprintf("cell %d", i))
	}
}
