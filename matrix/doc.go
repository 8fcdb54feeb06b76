// Package matrix builds operator-word matrices and their symbolic forms.
//
// The matrix package provides:
//
//   - OperatorMatrix and OperatorMatrixBuilder: the N×N grid of word
//     products M[r,c] = combine(row[r], col[c]), with Hermiticity detection
//     and optional alias re-simplification.
//   - IdentifyStripe: feeds a matrix into a symbol.Collector.
//   - MonomialMatrix and MonomialEmitter: the compact (id, factor,
//     conjugated) form resolved through a symbol.Table.
//   - PolynomialMatrix and ValueMatrix, and SymbolicMatrix: a closed union
//     over the three kinds with exhaustive dispatch.
//
// Every builder and emitter exposes per-stripe methods. A stripe is the
// column set {w, w+W, w+2W, ...} of worker w out of W; a single-threaded
// build is stripe 0 of 1. Each output cell, Hermitian mirror cells
// included, is written by exactly one stripe, so stripes can run in
// parallel without synchronization.
package matrix
