// SPDX-License-Identifier: MIT

package parallel

import "sync/atomic"

// LevelCounter is an atomic level with wait-for-change semantics.
//
// Waiters load the current notify channel, then re-check the level, then
// block on the channel. Every change swaps in a fresh channel and closes the
// old one, so a waiter that loaded the old channel is always woken.
type LevelCounter struct {
	level  atomic.Int32
	failed atomic.Bool
	notify atomic.Pointer[chan struct{}]
}

// NewLevelCounter returns a counter at level.
func NewLevelCounter(level int) *LevelCounter {
	c := &LevelCounter{}
	c.Reset(level)
	return c
}

// Reset sets the level and clears the failure mark. Not safe while waiters exist.
func (c *LevelCounter) Reset(level int) {
	ch := make(chan struct{})
	c.notify.Store(&ch)
	c.level.Store(int32(level))
	c.failed.Store(false)
}

// Level returns the current level.
func (c *LevelCounter) Level() int { return int(c.level.Load()) }

// Failed reports whether Fail was called.
func (c *LevelCounter) Failed() bool { return c.failed.Load() }

// Decrement lowers the level by one and wakes waiters.
func (c *LevelCounter) Decrement() int {
	v := c.level.Add(-1)
	c.broadcast()
	return int(v)
}

// Fail marks the counter failed and wakes waiters.
func (c *LevelCounter) Fail() {
	c.failed.Store(true)
	c.broadcast()
}

// WaitAtMost blocks until Level() ≤ level. It returns ErrPartnerFailed if the
// counter is marked failed first.
func (c *LevelCounter) WaitAtMost(level int) error {
	for {
		ch := *c.notify.Load()
		if int(c.level.Load()) <= level {
			return nil
		}
		if c.failed.Load() {
			return ErrPartnerFailed
		}
		<-ch
	}
}

func (c *LevelCounter) broadcast() {
	next := make(chan struct{})
	prev := c.notify.Swap(&next)
	close(*prev)
}
