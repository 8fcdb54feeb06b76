// SPDX-License-Identifier: MIT

// Package engine orchestrates symbolic matrix builds.
//
// BuildMatrix turns an Index (moment or localizing matrix at a hierarchy
// depth) into a *matrix.MonomialMatrix:
//
//  1. Operator generation: M[r,c] = combine(row[r], col[c]).
//  2. Alias generation and the raw Hermiticity check.
//  3. Symbol identification, bit-indexed merge and the aliased check;
//     the merged set is registered in the symbol table on the calling
//     goroutine.
//  4. Symbolic emission.
//
// Small matrices run the four steps on the calling goroutine. Large ones
// (see parallel.ShouldMultithread) run them as barriered phases of a
// parallel.Pipeline over column stripes. Both paths produce identical
// matrices and identical symbol table state.
//
// Engine adds a per-index cache on top and serializes its builds, so one
// symbol table is only ever written by one build at a time.
package engine
