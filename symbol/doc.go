// Package symbol assigns stable integer ids to equivalence classes of
// operator words.
//
// A Symbol is one self-adjoint word, or one pair of mutually conjugate
// words. The pair is always keyed by the numerically smaller of the two
// hashes, so the key does not depend on which member was seen first.
//
// The package provides:
//
//   - Table: the shared registry (hash → id, conjugated). Ids are assigned
//     only by Merge, sequentially in key order, and are never reused.
//   - Collector: private per-worker discovery with deduplication.
//   - Set: a key-sorted, duplicate-free symbol list with a linear-time merge.
package symbol
