// SPDX-License-Identifier: MIT

package engine

import (
	"sync"

	"github.com/katalvlaran/lvlmoment/dictionary"
	"github.com/katalvlaran/lvlmoment/matrix"
	"github.com/katalvlaran/lvlmoment/operator"
	"github.com/katalvlaran/lvlmoment/parallel"
	"github.com/katalvlaran/lvlmoment/symbol"
)

// Engine owns a dictionary, a symbol table and a cache of built matrices
// over one operator context. Safe for concurrent use; builds are serialized.
type Engine struct {
	ctx   operator.Context
	dict  *dictionary.Dictionary
	table *symbol.Table
	opts  []Option
	o     options

	mu    sync.Mutex // serializes builds, guards cache
	cache map[indexKey]*matrix.MonomialMatrix
}

// New returns an Engine over ctx. The dictionary inherits the logger and
// the metrics collector.
func New(ctx operator.Context, opts ...Option) (*Engine, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	o := newOptions(opts)
	return &Engine{
		ctx: ctx,
		dict: dictionary.New(ctx,
			dictionary.WithLogger(o.log),
			dictionary.WithObserver(o.metrics.DictionaryObserver())),
		table: symbol.NewTable(ctx),
		opts:  opts,
		o:     o,
		cache: make(map[indexKey]*matrix.MonomialMatrix),
	}, nil
}

// Context returns the operator context.
func (e *Engine) Context() operator.Context { return e.ctx }

// Dictionary returns the word dictionary.
func (e *Engine) Dictionary() *dictionary.Dictionary { return e.dict }

// Symbols returns the symbol table. It only grows.
func (e *Engine) Symbols() *symbol.Table { return e.table }

// Policy returns the threading policy used for builds.
func (e *Engine) Policy() parallel.Policy { return e.o.policy }

// Matrix returns the matrix of index, building it on first request.
// A failed build is not cached.
func (e *Engine) Matrix(index Index) (*matrix.MonomialMatrix, error) {
	if err := index.Validate(); err != nil {
		return nil, err
	}
	key := index.key()

	e.mu.Lock()
	defer e.mu.Unlock()
	if m, ok := e.cache[key]; ok {
		return m, nil
	}
	m, err := BuildMatrix(e.ctx, e.table, e.dict, index, e.o.policy, e.opts...)
	if err != nil {
		return nil, err
	}
	e.cache[key] = m
	return m, nil
}

// MomentMatrix is Matrix(MomentIndex(level)).
func (e *Engine) MomentMatrix(level int) (*matrix.MonomialMatrix, error) {
	return e.Matrix(MomentIndex(level))
}

// LocalizingMatrix is Matrix(LocalizingIndex(level, word)).
func (e *Engine) LocalizingMatrix(level int, word operator.Sequence) (*matrix.MonomialMatrix, error) {
	return e.Matrix(LocalizingIndex(level, word))
}

// Cached reports whether the matrix of index was already built.
func (e *Engine) Cached(index Index) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.cache[index.key()]
	return ok
}

// Levels returns the cached dictionary depths, ascending.
func (e *Engine) Levels() []int { return e.dict.Levels() }
