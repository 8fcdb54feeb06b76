// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"

	"github.com/katalvlaran/lvlmoment/matrix"
	"github.com/katalvlaran/lvlmoment/operator"
)

// Kind selects the combination rule of an Index.
type Kind uint8

const (
	// KindMoment combines row · col.
	KindMoment Kind = iota + 1
	// KindLocalizing combines row · word · col.
	KindLocalizing
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMoment:
		return "moment"
	case KindLocalizing:
		return "localizing"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Index identifies one matrix: its kind, the dictionary depth of its rows
// and columns, the localizing word and a real prefactor.
type Index struct {
	Kind  Kind
	Level int
	Word  operator.Sequence // localizing word; ignored for moment matrices
	Scale float64           // global prefactor; 0 means 1
}

// MomentIndex returns the index of the moment matrix at level.
func MomentIndex(level int) Index {
	return Index{Kind: KindMoment, Level: level}
}

// LocalizingIndex returns the index of the localizing matrix of word at level.
func LocalizingIndex(level int, word operator.Sequence) Index {
	return Index{Kind: KindLocalizing, Level: level, Word: word}
}

// WithScale returns a copy of i with the given prefactor.
func (i Index) WithScale(scale float64) Index {
	i.Scale = scale
	return i
}

// Prefactor returns the complex prefactor applied to every entry.
func (i Index) Prefactor() complex128 {
	if i.Scale == 0 {
		return 1
	}
	return complex(i.Scale, 0)
}

// Validate checks the kind and level.
func (i Index) Validate() error {
	switch {
	case i.Kind != KindMoment && i.Kind != KindLocalizing:
		return fmt.Errorf("Index %s: %w", i.Kind, ErrInvalidIndex)
	case i.Level < 0:
		return fmt.Errorf("Index level %d: %w", i.Level, ErrInvalidIndex)
	}
	return nil
}

// Combine returns the combination rule of i over ctx.
func (i Index) Combine(ctx operator.Context) matrix.Combine {
	if i.Kind == KindLocalizing {
		word := i.Word
		return func(row, col operator.Sequence) operator.Sequence {
			return ctx.Multiply(ctx.Multiply(row, word), col)
		}
	}
	return func(row, col operator.Sequence) operator.Sequence {
		return ctx.Multiply(row, col)
	}
}

// ExpectHermitian reports whether the matrix of i must be Hermitian:
// always for moment matrices, and for localizing matrices exactly when the
// word equals its own conjugate (sign included).
func (i Index) ExpectHermitian(ctx operator.Context) bool {
	if i.Kind == KindLocalizing {
		return ctx.Conjugate(i.Word).Equal(i.Word)
	}
	return true
}

// Format renders i using ctx for the localizing word.
func (i Index) Format(ctx operator.Context) string {
	s := fmt.Sprintf("%s[%d]", i.Kind, i.Level)
	if i.Kind == KindLocalizing {
		s = fmt.Sprintf("%s[%d; %s]", i.Kind, i.Level, ctx.Format(i.Word))
	}
	if i.Scale != 0 && i.Scale != 1 {
		s = fmt.Sprintf("%g·%s", i.Scale, s)
	}
	return s
}

// indexKey is the comparable cache key of an Index.
type indexKey struct {
	kind  Kind
	level int
	word  uint64
	sign  operator.Sign
	zero  bool
	scale float64
}

func (i Index) key() indexKey {
	k := indexKey{kind: i.Kind, level: i.Level, scale: 1}
	if i.Scale != 0 {
		k.scale = i.Scale
	}
	if i.Kind == KindLocalizing {
		k.word, k.sign, k.zero = i.Word.Hash(), i.Word.Sign(), i.Word.IsZero()
	}
	return k
}
