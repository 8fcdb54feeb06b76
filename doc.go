// Package lvlmoment builds large symbolic matrices for polynomial
// optimization relaxations: moment matrices and localizing matrices over
// an algebra of abstract operators.
//
// 🚀 What is lvlmoment?
//
//	An in-process engine that turns operator words into numbered symbols:
//		• Words: canonical operator sequences with sign, hash and conjugate
//		• Dictionaries: cached, monotonic word lists per hierarchy depth
//		• Symbols: one id per word / conjugate pair, registered exactly once
//		• Matrices: operator, monomial, polynomial and value matrices
//		• Parallel builds: barriered phases and a coordinator-free merge tree
//
// ✨ Guarantees
//
//   - Deterministic: the same matrix and symbol ids for any worker count
//   - Hermiticity checked (or exploited) and reported with the first bad cell
//   - Symbol ids are stable and never reused
//
// Packages:
//
//	operator/       Sequence, Sign, the Context contract and the reference Algebra
//	dictionary/     depth → (forward, conjugate) generator cache
//	symbol/         Symbol, Table, Collector, ordered Set and linear merge
//	matrix/         builders, emitter, Monomial / Polynomial / Value matrices
//	parallel/       policy, gates, signals, level counters, MergeTree, Pipeline
//	engine/         BuildMatrix and the caching Engine
//	config/         YAML configuration and zap logger construction
//	metrics/        Prometheus collectors
//	cmd/momentgen/  command-line front end
//
// Quick example (depth 1, Hermitian a and b):
//
//	    1    a    b              #1  #2  #3
//	    a   aa   ab      →       #2  #4  #5
//	    b   ba   bb              #3  #5* #6
//
//	go get github.com/katalvlaran/lvlmoment
package lvlmoment
