// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for matrix builds, symbol
// registration and the dictionary cache.
//
// Every method is safe on a nil *Collector, so instrumented code never has
// to check whether metrics are enabled.
package metrics

import (
	"strconv"
	"time"

	"github.com/katalvlaran/lvlmoment/dictionary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "lvlmoment"

// Collector groups the metrics of one engine.
type Collector struct {
	builds          *prometheus.CounterVec
	buildDuration   *prometheus.HistogramVec
	phaseDuration   *prometheus.HistogramVec
	symbols         prometheus.Counter
	workers         prometheus.Histogram
	dictionaryBuilt *prometheus.CounterVec
	dictionaryLost  *prometheus.CounterVec
}

// New registers the collectors on reg under namespace (DefaultNamespace if empty).
// Registering twice on the same registry panics, as with promauto.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	f := promauto.With(reg)
	return &Collector{
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matrix_builds_total",
			Help:      "Matrix builds by index kind, strategy and result",
		}, []string{"kind", "mode", "result"}),
		buildDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "matrix_build_duration_seconds",
			Help:      "Matrix build duration",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"kind", "mode"}),
		phaseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_phase_duration_seconds",
			Help:      "Multithreaded build phase duration",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"phase"}),
		symbols: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "symbols_registered_total",
			Help:      "Symbols added to symbol tables",
		}),
		workers: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_workers",
			Help:      "Worker count per multithreaded build",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		dictionaryBuilt: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictionary_levels_built_total",
			Help:      "Candidate dictionary levels generated",
		}, []string{"level"}),
		dictionaryLost: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictionary_levels_discarded_total",
			Help:      "Candidate dictionary levels discarded after losing a race",
		}, []string{"level"}),
	}
}

// ObserveBuild records one finished build.
func (c *Collector) ObserveBuild(kind, mode string, d time.Duration, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.builds.WithLabelValues(kind, mode, result).Inc()
	c.buildDuration.WithLabelValues(kind, mode).Observe(d.Seconds())
}

// ObservePhase records the duration of one pipeline phase.
func (c *Collector) ObservePhase(phase string, d time.Duration) {
	if c == nil {
		return
	}
	c.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// ObserveWorkers records the worker count of a multithreaded build.
func (c *Collector) ObserveWorkers(n int) {
	if c == nil {
		return
	}
	c.workers.Observe(float64(n))
}

// AddSymbols counts newly registered symbols.
func (c *Collector) AddSymbols(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.symbols.Add(float64(n))
}

// DictionaryObserver returns cache callbacks feeding the dictionary counters.
// A nil Collector yields an empty Observer.
func (c *Collector) DictionaryObserver() dictionary.Observer {
	if c == nil {
		return dictionary.Observer{}
	}
	return dictionary.Observer{
		Built:     func(level int) { c.dictionaryBuilt.WithLabelValues(levelLabel(level)).Inc() },
		Discarded: func(level int) { c.dictionaryLost.WithLabelValues(levelLabel(level)).Inc() },
	}
}

func levelLabel(level int) string {
	return strconv.Itoa(level)
}
