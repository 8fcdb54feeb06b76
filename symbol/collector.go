// SPDX-License-Identifier: MIT

package symbol

import "github.com/katalvlaran/lvlmoment/operator"

// KnownFunc reports whether a hash is already registered elsewhere.
type KnownFunc func(hash uint64) bool

// Collector discovers new symbols from a stream of words.
// Zero and Identity are always part of the result. A Collector is owned by
// one goroutine; the KnownFunc must be safe for concurrent reads.
type Collector struct {
	ctx     operator.Context
	known   KnownFunc
	seen    map[uint64]struct{}
	pending []Symbol
}

// NewCollector returns a Collector seeded with Zero and Identity.
// known may be nil.
func NewCollector(ctx operator.Context, known KnownFunc) *Collector {
	return &Collector{
		ctx:     ctx,
		known:   known,
		seen:    map[uint64]struct{}{operator.ZeroHash: {}, operator.IdentityHash: {}},
		pending: []Symbol{zeroSymbol(), identitySymbol()},
	}
}

// Add classifies seq and records its symbol unless already seen.
// Implementation:
//   - Stage 1: skip zero words and hashes seen before.
//   - Stage 2: classify; skip if the partner hash was seen or is known.
//     A self-adjoint word is its own partner.
//   - Stage 3: store once, under the smaller hash.
func (c *Collector) Add(seq operator.Sequence) {
	if seq.IsZero() {
		return
	}
	h := seq.Hash()
	if _, ok := c.seen[h]; ok {
		return
	}
	sym := Classify(c.ctx, seq)
	partner := sym.ConjugateHash()
	if partner == h {
		partner = sym.ForwardHash()
	}
	c.seen[h] = struct{}{}
	if partner != h {
		if _, ok := c.seen[partner]; ok {
			return
		}
		c.seen[partner] = struct{}{}
	}
	if c.known != nil && (c.known(h) || c.known(partner)) {
		return
	}
	c.pending = append(c.pending, sym)
}

// Len returns the number of symbols collected so far, seeds included.
func (c *Collector) Len() int { return len(c.pending) }

// Set returns the collected symbols as an ordered Set.
func (c *Collector) Set() *Set { return NewSet(c.pending...) }
