// SPDX-License-Identifier: MIT

// Package operator - Sequence: the canonical operator word.
//
// Purpose:
//   - Carry an ordered list of operator ids together with a unit Sign and a
//     zero flag, exactly as produced by a Context.
//   - Expose a structural hash that ignores the sign but depends on operator
//     content and order, so that ±X and ±iX share one hash.
//
// Notes:
//   - Sequences are values; the ops slice is never mutated after construction.
//   - Only a Context should build non-trivial sequences (NewSequence), since
//     the hash must agree with Context.Hash.

package operator

import (
	"slices"
	"strconv"
	"strings"
)

// ID identifies one operator inside a Context.
type ID uint16

// Reserved structural hashes.
const (
	// ZeroHash is the hash of the zero word.
	ZeroHash uint64 = 0
	// IdentityHash is the hash of the empty word.
	IdentityHash uint64 = 1
)

// Sequence is a canonical operator word: ops, sign, zero flag and hash.
type Sequence struct {
	ops  []ID   // canonical operator ids, never mutated
	hash uint64 // structural hash (sign-free)
	sign Sign   // unit scalar prefactor
	zero bool   // true iff the word vanishes
}

// NewSequence wraps already-canonical ops with their hash and sign.
// The ops slice is copied. Intended for Context implementations.
func NewSequence(ops []ID, hash uint64, sign Sign) Sequence {
	return Sequence{ops: slices.Clone(ops), hash: hash, sign: sign % 4}
}

// Zero returns the zero word.
func Zero() Sequence { return Sequence{hash: ZeroHash, zero: true} }

// Identity returns the empty word with a positive sign.
func Identity() Sequence { return Sequence{hash: IdentityHash} }

// Hash returns the structural hash.
func (s Sequence) Hash() uint64 { return s.hash }

// Sign returns the scalar prefactor.
func (s Sequence) Sign() Sign { return s.sign }

// IsZero reports whether the word vanishes.
func (s Sequence) IsZero() bool { return s.zero }

// IsIdentity reports whether the word is ±1, ±i times the empty word.
func (s Sequence) IsIdentity() bool { return !s.zero && len(s.ops) == 0 }

// Len returns the number of operators in the word.
func (s Sequence) Len() int { return len(s.ops) }

// Op returns the i-th operator id. Panics when i is out of range.
func (s Sequence) Op(i int) ID { return s.ops[i] }

// Ops returns a copy of the operator ids.
func (s Sequence) Ops() []ID { return slices.Clone(s.ops) }

// WithSign returns the same word carrying sign instead of its own.
func (s Sequence) WithSign(sign Sign) Sequence {
	if s.zero {
		return s
	}
	s.sign = sign % 4
	return s
}

// Unsigned returns the same word with a positive sign.
func (s Sequence) Unsigned() Sequence { return s.WithSign(Positive) }

// Equal reports structural and scalar equality. All zero words are equal.
func (s Sequence) Equal(o Sequence) bool {
	if s.zero || o.zero {
		return s.zero == o.zero
	}
	return s.hash == o.hash && s.sign == o.sign && slices.Equal(s.ops, o.ops)
}

// String renders the word with numeric operator ids, e.g. "-#0#2".
// Use Context.Format for named output.
func (s Sequence) String() string {
	if s.zero {
		return "0"
	}
	if len(s.ops) == 0 {
		return s.sign.String() + "1"
	}
	var sb strings.Builder
	sb.WriteString(s.sign.String())
	for _, op := range s.ops {
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(int(op)))
	}
	return sb.String()
}
