// SPDX-License-Identifier: MIT

// Package engine - BuildMatrix.
//
// Purpose:
//   - Build the symbolic matrix of one Index, registering every new symbol
//     it contains in the shared table exactly once.
//
// Contract:
//   - The caller must not run two builds over the same table concurrently;
//     Engine enforces this.
//   - On failure nothing partial is returned. Symbols registered before an
//     emission failure stay registered (ids are never reused).
//
// Complexity:
//   - O(N²) combine calls and hash lookups; the merge adds O(S log W) for
//     S discovered symbols and W workers.

package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvlmoment/dictionary"
	"github.com/katalvlaran/lvlmoment/matrix"
	"github.com/katalvlaran/lvlmoment/operator"
	"github.com/katalvlaran/lvlmoment/parallel"
	"github.com/katalvlaran/lvlmoment/symbol"
	"go.uber.org/zap"
)

const (
	modeSingle   = "single"
	modeParallel = "parallel"
)

// BuildMatrix builds the matrix of index over ctx, registering new symbols
// in symbols and taking rows and columns from dict.
// Implementation:
//   - Stage 1: validate inputs, fetch the dictionary level.
//   - Stage 2: pick the strategy with parallel.ShouldMultithread(policy, N², threshold).
//   - Stage 3: run the four build steps single-threaded or as a pipeline.
//
// Errors: ErrNilContext, ErrNilTable, ErrNilDictionary, ErrContextMismatch,
// ErrInvalidIndex, *matrix.HermiticityError, *matrix.LookupError,
// *parallel.WorkerError.
func BuildMatrix(ctx operator.Context, symbols *symbol.Table, dict *dictionary.Dictionary, index Index, policy parallel.Policy, opts ...Option) (*matrix.MonomialMatrix, error) {
	o := newOptions(opts)
	switch {
	case ctx == nil:
		return nil, ErrNilContext
	case symbols == nil:
		return nil, ErrNilTable
	case dict == nil:
		return nil, ErrNilDictionary
	case symbols.Context() != ctx || dict.Context() != ctx:
		return nil, ErrContextMismatch
	}
	if err := index.Validate(); err != nil {
		return nil, err
	}

	pair, err := dict.Level(index.Level)
	if err != nil {
		return nil, fmt.Errorf("BuildMatrix(%s): %w", index.Format(ctx), err)
	}
	b, err := matrix.NewOperatorMatrixBuilder(ctx, pair, index.Combine(ctx), index.ExpectHermitian(ctx))
	if err != nil {
		return nil, fmt.Errorf("BuildMatrix(%s): %w", index.Format(ctx), err)
	}

	n := b.Dimension()
	mode := modeSingle
	if parallel.ShouldMultithread(policy, n*n, o.threshold) {
		mode = modeParallel
	}
	log := o.log.With(
		zap.String("build", uuid.NewString()),
		zap.String("index", index.Format(ctx)),
		zap.Int("dimension", n),
		zap.String("mode", mode),
	)
	log.Debug("matrix build started", zap.Bool("aliasing", b.Aliasing()), zap.Bool("hermitian_shortcut", b.HermitianShortcut()))

	start := time.Now()
	var (
		m     *matrix.MonomialMatrix
		added []int
	)
	if mode == modeParallel {
		m, added, err = buildParallel(ctx, symbols, b, index.Prefactor(), o, log)
	} else {
		m, added, err = buildSingle(symbols, b, index.Prefactor())
	}
	elapsed := time.Since(start)
	o.metrics.ObserveBuild(index.Kind.String(), mode, elapsed, err)
	o.metrics.AddSymbols(len(added))
	if err != nil {
		log.Debug("matrix build failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, fmt.Errorf("BuildMatrix(%s): %w", index.Format(ctx), err)
	}
	log.Debug("matrix build done",
		zap.Int("new_symbols", len(added)),
		zap.Bool("hermitian", m.IsHermitian()),
		zap.Duration("elapsed", elapsed))
	return m, nil
}

// buildSingle runs every step on the calling goroutine.
func buildSingle(symbols *symbol.Table, b *matrix.OperatorMatrixBuilder, prefactor complex128) (*matrix.MonomialMatrix, []int, error) {
	raw, aliased, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	src := raw
	if aliased != nil {
		src = aliased
	}
	added := symbols.Merge(matrix.Identify(src, symbols))
	m, err := matrix.NewMonomialEmitter(raw, aliased, symbols, prefactor).Emit()
	return m, added, err
}

// parallelBuild holds the shared state of a multithreaded build. Slices
// indexed by worker have exactly one writer per phase; everything else is
// written by After hooks on the orchestrator goroutine.
type parallelBuild struct {
	ctx       operator.Context
	symbols   *symbol.Table
	b         *matrix.OperatorMatrixBuilder
	prefactor complex128
	workers   int
	tree      *parallel.MergeTree

	rawViolations     []*matrix.Coordinate
	aliasedViolations []*matrix.Coordinate
	sets              []*symbol.Set

	raw     *matrix.OperatorMatrix
	aliased *matrix.OperatorMatrix
	added   []int
	emitter *matrix.MonomialEmitter
}

// buildParallel runs the four steps as barriered pipeline phases.
func buildParallel(ctx operator.Context, symbols *symbol.Table, b *matrix.OperatorMatrixBuilder, prefactor complex128, o options, log *zap.Logger) (*matrix.MonomialMatrix, []int, error) {
	w := o.workerCount(b.Dimension())
	pb := &parallelBuild{
		ctx:               ctx,
		symbols:           symbols,
		b:                 b,
		prefactor:         prefactor,
		workers:           w,
		tree:              parallel.NewMergeTree(w),
		rawViolations:     make([]*matrix.Coordinate, w),
		aliasedViolations: make([]*matrix.Coordinate, w),
		sets:              make([]*symbol.Set, w),
	}
	o.metrics.ObserveWorkers(w)
	log.Debug("pipeline starting", zap.Int("workers", w))

	p, err := parallel.NewPipeline(w, pb.phases(),
		parallel.WithPipelineLogger(log),
		parallel.WithPhaseObserver(o.metrics.ObservePhase))
	if err != nil {
		return nil, nil, err
	}
	if err := p.Run(); err != nil {
		return nil, pb.added, err
	}
	return pb.emitter.Matrix(), pb.added, nil
}

func (pb *parallelBuild) phases() []parallel.Phase {
	return []parallel.Phase{
		{Name: "generate", Run: pb.generate},
		{Name: "alias", Run: pb.alias, After: pb.freezeRaw},
		{Name: "identify", Run: pb.identify, After: pb.register, OnError: pb.failMerge},
		{Name: "emit", Run: pb.emit},
	}
}

func (pb *parallelBuild) generate(w int) error {
	pb.b.GenerateStripe(w, pb.workers)
	return nil
}

// alias checks raw Hermiticity on the stripe and writes its aliased cells.
func (pb *parallelBuild) alias(w int) error {
	if !pb.b.HermitianShortcut() {
		pb.rawViolations[w] = pb.b.CheckStripe(w, pb.workers)
	}
	pb.b.AliasStripe(w, pb.workers)
	return nil
}

func (pb *parallelBuild) freezeRaw() error {
	raw, err := pb.b.RawMatrix(matrix.EarliestViolation(pb.rawViolations...))
	if err != nil {
		return err
	}
	pb.raw = raw
	return nil
}

// identify collects the stripe's new symbols and runs the merge schedule,
// leaving the union of every stripe in sets[0].
func (pb *parallelBuild) identify(w int) error {
	pb.aliasedViolations[w] = pb.b.CheckAliasedStripe(w, pb.workers)

	c := symbol.NewCollector(pb.ctx, pb.symbols.Contains)
	pb.b.IdentifyStripe(c, w, pb.workers)
	pb.sets[w] = c.Set()
	pb.tree.Ready(w)

	return pb.tree.Reduce(w, func(partner int) error {
		pb.sets[w].Absorb(pb.sets[partner])
		return nil
	})
}

// failMerge releases anyone waiting on w's merge level.
func (pb *parallelBuild) failMerge(w int, _ error) { pb.tree.Fail(w) }

// register freezes the aliased matrix and merges the discovered symbols
// into the table. It is the only write to the table in the build.
func (pb *parallelBuild) register() error {
	aliased, err := pb.b.AliasedMatrix(matrix.EarliestViolation(pb.aliasedViolations...))
	if err != nil {
		return err
	}
	pb.aliased = aliased
	pb.added = pb.symbols.Merge(pb.sets[0])
	pb.emitter = matrix.NewMonomialEmitter(pb.raw, pb.aliased, pb.symbols, pb.prefactor)
	return nil
}

func (pb *parallelBuild) emit(w int) error {
	return pb.emitter.EmitStripe(w, pb.workers)
}
