// SPDX-License-Identifier: MIT

package dictionary

import (
	"fmt"
	"slices"
	"sync"

	"github.com/katalvlaran/lvlmoment/operator"
	"go.uber.org/zap"
)

// Pair is an immutable (forward, conjugate) generator pair for one depth.
// When the Context cannot produce non-Hermitian words the conjugate
// generator is the forward generator itself.
type Pair struct {
	forward   *operator.Generator
	conjugate *operator.Generator
}

// Forward returns the generator of canonical words.
func (p *Pair) Forward() *operator.Generator { return p.forward }

// Conjugate returns the generator of conjugated words (row-oriented).
func (p *Pair) Conjugate() *operator.Generator { return p.conjugate }

// SelfAdjoint reports whether Conjugate is the forward generator itself.
func (p *Pair) SelfAdjoint() bool { return p.forward == p.conjugate }

// Len returns the number of words in the pair.
func (p *Pair) Len() int { return p.forward.Len() }

// Observer receives cache events. Any field may be nil.
type Observer struct {
	// Built is called after a candidate Pair was generated.
	Built func(level int)
	// Discarded is called when a candidate lost the race to another builder.
	Discarded func(level int)
}

// Option configures a Dictionary.
type Option func(d *Dictionary)

// WithLogger sets the logger used for debug events. Default: zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(d *Dictionary) {
		if log != nil {
			d.log = log
		}
	}
}

// WithObserver installs cache event callbacks (used for metrics).
func WithObserver(obs Observer) Option {
	return func(d *Dictionary) { d.obs = obs }
}

// Dictionary maps hierarchy depth → Pair. Safe for concurrent use.
type Dictionary struct {
	ctx operator.Context

	mu     sync.RWMutex  // guards levels
	levels map[int]*Pair // published pairs, never replaced or removed

	log *zap.Logger
	obs Observer
}

// New returns an empty Dictionary over ctx.
func New(ctx operator.Context, opts ...Option) *Dictionary {
	d := &Dictionary{
		ctx:    ctx,
		levels: make(map[int]*Pair),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Context returns the algebra the dictionary was built over.
func (d *Dictionary) Context() operator.Context { return d.ctx }

// Level returns the Pair for words of length ≤ maxWordLength.
// Implementation:
//   - Stage 1: shared-lock lookup; return on hit.
//   - Stage 2: build the candidate with no lock held.
//   - Stage 3: exclusive lock; if another goroutine published first, drop
//     the candidate and return the winner, otherwise publish.
//
// Errors: ErrNegativeLevel.
// Complexity: O(1) on hit; generation cost on miss.
func (d *Dictionary) Level(maxWordLength int) (*Pair, error) {
	if maxWordLength < 0 {
		return nil, fmt.Errorf("Level(%d): %w", maxWordLength, ErrNegativeLevel)
	}

	d.mu.RLock()
	p, ok := d.levels[maxWordLength]
	d.mu.RUnlock()
	if ok {
		return p, nil
	}

	candidate := d.build(maxWordLength)

	d.mu.Lock()
	if winner, raced := d.levels[maxWordLength]; raced {
		d.mu.Unlock()
		d.log.Debug("dictionary level discarded", zap.Int("level", maxWordLength))
		if d.obs.Discarded != nil {
			d.obs.Discarded(maxWordLength)
		}
		return winner, nil
	}
	d.levels[maxWordLength] = candidate
	d.mu.Unlock()

	d.log.Debug("dictionary level built",
		zap.Int("level", maxWordLength),
		zap.Int("words", candidate.Len()),
		zap.Bool("self_adjoint", candidate.SelfAdjoint()))
	return candidate, nil
}

// build generates a Pair without touching shared state.
func (d *Dictionary) build(maxWordLength int) *Pair {
	fwd := operator.NewGenerator(d.ctx, maxWordLength)
	p := &Pair{forward: fwd, conjugate: fwd}
	if d.ctx.CanBeNonHermitian() {
		p.conjugate = fwd.Conjugate(d.ctx)
	}
	if d.obs.Built != nil {
		d.obs.Built(maxWordLength)
	}
	return p
}

// Levels returns the cached depths in ascending order.
func (d *Dictionary) Levels() []int {
	d.mu.RLock()
	out := make([]int, 0, len(d.levels))
	for k := range d.levels {
		out = append(out, k)
	}
	d.mu.RUnlock()
	slices.Sort(out)
	return out
}
