// SPDX-License-Identifier: MIT

// Package parallel - Pipeline.
//
// Purpose:
//   - Run W worker goroutines through a fixed list of barriered phases.
//
// Protocol per phase k:
//  1. The orchestrator opens gate k.
//  2. Every worker runs Phase.Run(worker) and resolves its signal for k.
//     A failing worker also attaches its error to worker 0's signal and
//     stops; Phase.OnError lets the phase release partners that may wait on it.
//  3. The orchestrator waits on every signal of k, picks the root cause if
//     any, otherwise runs Phase.After on its own goroutine.
//  4. On failure the remaining gates are aborted, so idle workers exit.
//
// Goroutines are joined with errgroup before Run returns.

package parallel

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Phase is one barriered step of a Pipeline.
type Phase struct {
	// Name labels logs, metrics and WorkerErrors.
	Name string
	// Run performs the worker's share of the phase. Required.
	Run func(worker int) error
	// After runs once on the orchestrator goroutine after every worker
	// succeeded. Optional.
	After func() error
	// OnError is called on the failing worker's goroutine before its
	// signal resolves. Optional.
	OnError func(worker int, err error)
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the logger for phase transitions. Default: zap.NewNop().
func WithPipelineLogger(log *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithPhaseObserver registers fn to receive the wall time of every
// completed phase, After hook included.
func WithPhaseObserver(fn func(phase string, d time.Duration)) PipelineOption {
	return func(p *Pipeline) { p.observe = fn }
}

// Pipeline runs workers through phases. A Pipeline is single-use.
type Pipeline struct {
	workers int
	phases  []Phase
	log     *zap.Logger
	observe func(phase string, d time.Duration)

	gates   []*Gate
	signals [][]*Signal // [phase][worker]
}

// NewPipeline prepares a pipeline of workers ≥ 1 goroutines.
// Errors: ErrNoWorkers.
func NewPipeline(workers int, phases []Phase, opts ...PipelineOption) (*Pipeline, error) {
	if workers < 1 {
		return nil, fmt.Errorf("NewPipeline(%d): %w", workers, ErrNoWorkers)
	}
	p := &Pipeline{
		workers: workers,
		phases:  phases,
		log:     zap.NewNop(),
		gates:   make([]*Gate, len(phases)),
		signals: make([][]*Signal, len(phases)),
	}
	for _, opt := range opts {
		opt(p)
	}
	for k := range phases {
		p.gates[k] = NewGate()
		p.signals[k] = make([]*Signal, workers)
		for w := range workers {
			p.signals[k][w] = NewSignal()
		}
	}
	return p, nil
}

// Workers returns W.
func (p *Pipeline) Workers() int { return p.workers }

// Run executes every phase and returns the first root-cause failure.
func (p *Pipeline) Run() error {
	var g errgroup.Group
	for w := range p.workers {
		g.Go(func() error { return p.work(w) })
	}

	for k, ph := range p.phases {
		start := time.Now()
		p.gates[k].Open()
		err := p.await(k)
		if err == nil && ph.After != nil {
			err = ph.After()
		}
		if err != nil {
			p.log.Debug("phase failed", zap.String("phase", ph.Name), zap.Error(err))
			for _, gate := range p.gates[k+1:] {
				gate.Abort()
			}
			_ = g.Wait()
			return err
		}
		d := time.Since(start)
		p.log.Debug("phase done", zap.String("phase", ph.Name), zap.Duration("elapsed", d))
		if p.observe != nil {
			p.observe(ph.Name, d)
		}
	}
	return g.Wait()
}

// await blocks on every signal of phase k and selects the root cause:
// the first own failure in worker order that is not a propagated partner
// failure, then the error attached to worker 0, then any failure.
func (p *Pipeline) await(k int) error {
	var fallback error
	var cause error
	for _, s := range p.signals[k] {
		err := s.Wait()
		switch {
		case err == nil:
		case errors.Is(err, ErrPartnerFailed):
			if fallback == nil {
				fallback = err
			}
		case cause == nil:
			cause = err
		}
	}
	if cause != nil {
		return cause
	}
	if err := p.signals[k][0].Attached(); err != nil {
		return err
	}
	return fallback
}

// work is the body of one worker goroutine.
func (p *Pipeline) work(w int) error {
	for k, ph := range p.phases {
		if err := p.gates[k].Wait(); err != nil {
			return nil
		}
		if err := runRecovered(ph.Run, w); err != nil {
			werr := &WorkerError{Worker: w, Phase: ph.Name, Err: err}
			if ph.OnError != nil {
				ph.OnError(w, werr)
			}
			if w != 0 {
				p.signals[k][0].Attach(werr)
			}
			p.signals[k][w].Resolve(werr)
			return werr
		}
		p.signals[k][w].Resolve(nil)
	}
	return nil
}

// runRecovered calls fn, turning a panic into an ErrWorkerPanic error.
func runRecovered(fn func(int) error, w int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
	}()
	return fn(w)
}
