// SPDX-License-Identifier: MIT

package parallel

import (
	"sync"
	"sync/atomic"
)

// Gate is a one-shot broadcast: every Wait returns once Open or Abort is
// called. Only the first of Open/Abort takes effect.
type Gate struct {
	once    sync.Once
	done    chan struct{}
	aborted atomic.Bool
}

// NewGate returns a closed gate.
func NewGate() *Gate { return &Gate{done: make(chan struct{})} }

// Open releases every waiter.
func (g *Gate) Open() { g.once.Do(func() { close(g.done) }) }

// Abort releases every waiter with ErrGateAborted.
func (g *Gate) Abort() {
	g.once.Do(func() {
		g.aborted.Store(true)
		close(g.done)
	})
}

// Wait blocks until the gate is opened or aborted.
func (g *Gate) Wait() error {
	<-g.done
	if g.aborted.Load() {
		return ErrGateAborted
	}
	return nil
}

// Signal is a once-resolved completion result. A second error may be
// attached by another worker so the leader's signal carries it.
type Signal struct {
	once     sync.Once
	done     chan struct{}
	err      error
	attached atomic.Pointer[error]
}

// NewSignal returns an unresolved signal.
func NewSignal() *Signal { return &Signal{done: make(chan struct{})} }

// Resolve records err (nil for success). Later calls are ignored.
func (s *Signal) Resolve(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}

// Attach records a propagated failure; the first one wins. It must happen
// before the attaching worker resolves its own signal.
func (s *Signal) Attach(err error) {
	if err != nil {
		s.attached.CompareAndSwap(nil, &err)
	}
}

// Done is closed once the signal is resolved.
func (s *Signal) Done() <-chan struct{} { return s.done }

// Wait blocks until resolved and returns the recorded error.
func (s *Signal) Wait() error {
	<-s.done
	return s.err
}

// Attached returns the propagated failure, if any.
func (s *Signal) Attached() error {
	if p := s.attached.Load(); p != nil {
		return *p
	}
	return nil
}
