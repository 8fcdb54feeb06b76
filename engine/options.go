// SPDX-License-Identifier: MIT

package engine

import (
	"github.com/katalvlaran/lvlmoment/metrics"
	"github.com/katalvlaran/lvlmoment/parallel"
	"go.uber.org/zap"
)

// Option configures BuildMatrix and Engine.
type Option func(*options)

type options struct {
	policy     parallel.Policy
	threshold  int
	maxWorkers int
	workers    int
	log        *zap.Logger
	metrics    *metrics.Collector
}

func newOptions(opts []Option) options {
	o := options{
		policy:    parallel.PolicyOptional,
		threshold: parallel.DefaultThreshold,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPolicy sets the threading policy of an Engine. BuildMatrix takes the
// policy as an argument and ignores this option.
func WithPolicy(p parallel.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithThreshold sets the element count (N²) at which PolicyOptional goes
// parallel. Default: parallel.DefaultThreshold. Negative values panic.
func WithThreshold(n int) Option {
	if n < 0 {
		panic("engine: WithThreshold(n<0)")
	}
	return func(o *options) { o.threshold = n }
}

// WithMaxWorkers caps the worker count; 0 means runtime.NumCPU().
// Negative values panic.
func WithMaxWorkers(n int) Option {
	if n < 0 {
		panic("engine: WithMaxWorkers(n<0)")
	}
	return func(o *options) { o.maxWorkers = n }
}

// WithWorkers fixes the worker count of multithreaded builds regardless of
// the CPU count (still capped by the matrix dimension). 0 restores the
// default. Negative values panic.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("engine: WithWorkers(n<0)")
	}
	return func(o *options) { o.workers = n }
}

// WithLogger sets the build logger. Default: zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMetrics records builds into c. Default: none.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

// workerCount resolves the worker count for a matrix of dimension dim.
func (o options) workerCount(dim int) int {
	if o.workers > 0 {
		return max(1, min(o.workers, dim))
	}
	return parallel.WorkerCount(o.maxWorkers, dim)
}
