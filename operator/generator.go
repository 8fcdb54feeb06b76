// SPDX-License-Identifier: MIT

package operator

import "slices"

// Generator is an ordered, immutable list of canonical words of length up
// to MaxLength. A conjugate Generator holds the conjugates of another
// generator's words at the same positions.
type Generator struct {
	maxLength  int
	words      []Sequence
	conjugated bool
}

// NewGenerator asks ctx for every canonical word of length ≤ maxLength.
// Complexity: whatever ctx.Generate costs; O(|words|) memory.
func NewGenerator(ctx Context, maxLength int) *Generator {
	return &Generator{maxLength: maxLength, words: ctx.Generate(maxLength)}
}

// Conjugate returns a generator whose i-th word is ctx.Conjugate(g.At(i)).
func (g *Generator) Conjugate(ctx Context) *Generator {
	words := make([]Sequence, len(g.words))
	for i, w := range g.words {
		words[i] = ctx.Conjugate(w)
	}
	return &Generator{maxLength: g.maxLength, words: words, conjugated: !g.conjugated}
}

// MaxLength returns the word-length bound the generator was built for.
func (g *Generator) MaxLength() int { return g.maxLength }

// Len returns the number of words.
func (g *Generator) Len() int { return len(g.words) }

// At returns the i-th word. Panics when i is out of range.
func (g *Generator) At(i int) Sequence { return g.words[i] }

// Words returns a copy of the word list.
func (g *Generator) Words() []Sequence { return slices.Clone(g.words) }

// IsConjugate reports whether the words are conjugates of a forward generator.
func (g *Generator) IsConjugate() bool { return g.conjugated }
