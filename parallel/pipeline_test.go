package parallel_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/katalvlaran/lvlmoment/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewPipeline_NoWorkers(t *testing.T) {
	_, err := parallel.NewPipeline(0, nil)
	assert.ErrorIs(t, err, parallel.ErrNoWorkers)
}

// TestPipeline_PhasesAreBarriered checks that phase k+1 never starts before
// every worker finished phase k and After(k) ran.
func TestPipeline_PhasesAreBarriered(t *testing.T) {
	const workers = 4
	var (
		mu    sync.Mutex
		trace []string
		done  [2]atomic.Int32
	)
	record := func(s string) {
		mu.Lock()
		trace = append(trace, s)
		mu.Unlock()
	}
	observed := map[string]bool{}
	p, err := parallel.NewPipeline(workers, []parallel.Phase{
		{
			Name:  "first",
			Run:   func(int) error { done[0].Add(1); return nil },
			After: func() error { record("after first"); return nil },
		},
		{
			Name: "second",
			Run: func(int) error {
				if done[0].Load() != workers {
					return errors.New("second started early")
				}
				done[1].Add(1)
				return nil
			},
			After: func() error { record("after second"); return nil },
		},
	}, parallel.WithPipelineLogger(zaptest.NewLogger(t)),
		parallel.WithPhaseObserver(func(phase string, _ time.Duration) { observed[phase] = true }))
	require.NoError(t, err)
	require.NoError(t, p.Run())
	assert.Equal(t, int32(workers), done[1].Load())
	assert.Equal(t, []string{"after first", "after second"}, trace)
	assert.Equal(t, map[string]bool{"first": true, "second": true}, observed)
}

func TestPipeline_FailureStopsLaterPhases(t *testing.T) {
	boom := errors.New("boom")
	var later atomic.Int32
	var afterRan atomic.Bool
	p, err := parallel.NewPipeline(3, []parallel.Phase{
		{
			Name: "work",
			Run: func(w int) error {
				if w == 2 {
					return boom
				}
				return nil
			},
			After: func() error { afterRan.Store(true); return nil },
		},
		{Name: "never", Run: func(int) error { later.Add(1); return nil }},
	})
	require.NoError(t, err)
	err = p.Run()
	require.ErrorIs(t, err, boom)

	var werr *parallel.WorkerError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, 2, werr.Worker)
	assert.Equal(t, "work", werr.Phase)
	assert.False(t, afterRan.Load())
	assert.Zero(t, later.Load())
}

func TestPipeline_AfterError(t *testing.T) {
	boom := errors.New("after failed")
	p, err := parallel.NewPipeline(2, []parallel.Phase{
		{Name: "a", Run: func(int) error { return nil }, After: func() error { return boom }},
		{Name: "b", Run: func(int) error { return nil }},
	})
	require.NoError(t, err)
	assert.Equal(t, boom, p.Run())
}

func TestPipeline_PanicRecovered(t *testing.T) {
	p, err := parallel.NewPipeline(2, []parallel.Phase{
		{Name: "explode", Run: func(w int) error {
			if w == 1 {
				panic("kaboom")
			}
			return nil
		}},
	})
	require.NoError(t, err)
	err = p.Run()
	require.ErrorIs(t, err, parallel.ErrWorkerPanic)
	assert.Contains(t, err.Error(), "kaboom")
}

// TestPipeline_MergeFailureRootCause fails worker 3 during a merge-tree
// phase and expects its own error, not the propagated partner aborts.
func TestPipeline_MergeFailureRootCause(t *testing.T) {
	const workers = 5
	tree := parallel.NewMergeTree(workers)
	boom := errors.New("discovery failed")
	p, err := parallel.NewPipeline(workers, []parallel.Phase{{
		Name: "merge",
		Run: func(w int) error {
			if w == 3 {
				panic(boom)
			}
			tree.Ready(w)
			return tree.Reduce(w, func(int) error { return nil })
		},
		OnError: func(w int, _ error) { tree.Fail(w) },
	}})
	require.NoError(t, err)
	err = p.Run()
	var werr *parallel.WorkerError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, 3, werr.Worker)
	assert.ErrorIs(t, err, parallel.ErrWorkerPanic)
	assert.NotErrorIs(t, err, parallel.ErrPartnerFailed)
}
