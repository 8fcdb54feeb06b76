// SPDX-License-Identifier: MIT

// Package operator - Algebra: reference Context over named operators.
//
// Purpose:
//   - Give the engine a concrete, deterministic Context for tests, examples
//     and the CLI: free words over named generators plus a handful of
//     rewriting rules (commutation, projectors, orthogonality).
//   - Provide an alias rule (operator relabeling symmetry) that commutes with
//     conjugation, so symmetrized matrices keep their Hermiticity.
//
// Canonical form:
//   - commuting algebras sort ids ascending;
//   - runs of one projector collapse to a single occurrence;
//   - an orthogonal pair (adjacent, or anywhere when commuting) yields Zero.
//
// Complexity quicksheet:
//   - Simplify: O(L log L) commuting, O(L) otherwise; Hash: O(L);
//     Generate(k): O(size · words(k) · k).

package operator

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Algebra is an immutable Context built by NewAlgebra. Safe for concurrent use.
type Algebra struct {
	names     []string      // id → display name
	byName    map[string]ID // name → id
	adjoint   []ID          // id → id of its adjoint (itself when Hermitian)
	projector []bool        // id → idempotent
	ortho     [][]bool      // ortho[x][y] → x·y = 0
	commuting bool

	symmetries [][]ID // alias group, element 0 is the identity permutation

	radix      uint64 // size+1, base of the shortlex hash
	maxHashLen int    // longest word whose hash fits in uint64
}

var _ Context = (*Algebra)(nil)

// NewAlgebra builds an Algebra from declared operators and rules.
// Implementation:
//   - Stage 1: assign ids in declaration order; a non-Hermitian operator is
//     immediately followed by its adjoint "name*".
//   - Stage 2: resolve projector / orthogonality / symmetry names.
//   - Stage 3: close the symmetry set under composition.
//
// Errors: ErrEmptyAlgebra, ErrEmptyOperatorName, ErrDuplicateOperator,
// ErrTooManyOperators, ErrUnknownOperator, ErrProjectorNotHermitian,
// ErrInvalidSymmetry, ErrSymmetryNeedsCommuting.
func NewAlgebra(ops []Operator, opts ...AlgebraOption) (*Algebra, error) {
	if len(ops) == 0 {
		return nil, ErrEmptyAlgebra
	}
	var cfg algebraConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Algebra{byName: make(map[string]ID, 2*len(ops)), commuting: cfg.commuting}
	add := func(name string) error {
		if name == "" {
			return ErrEmptyOperatorName
		}
		if _, dup := a.byName[name]; dup {
			return fmt.Errorf("NewAlgebra(%q): %w", name, ErrDuplicateOperator)
		}
		if len(a.names) >= math.MaxUint16 {
			return ErrTooManyOperators
		}
		a.byName[name] = ID(len(a.names))
		a.names = append(a.names, name)
		return nil
	}
	for _, op := range ops {
		if err := add(op.Name); err != nil {
			return nil, err
		}
		self := ID(len(a.names) - 1)
		if op.Hermitian {
			a.adjoint = append(a.adjoint, self)
			continue
		}
		if err := add(op.Name + AdjointSuffix); err != nil {
			return nil, err
		}
		a.adjoint = append(a.adjoint, self+1, self)
	}

	n := len(a.names)
	a.projector = make([]bool, n)
	for _, name := range cfg.projectors {
		id, err := a.resolve(name)
		if err != nil {
			return nil, err
		}
		if a.adjoint[id] != id {
			return nil, fmt.Errorf("NewAlgebra(%q): %w", name, ErrProjectorNotHermitian)
		}
		a.projector[id] = true
	}

	a.ortho = make([][]bool, n)
	for i := range a.ortho {
		a.ortho[i] = make([]bool, n)
	}
	for _, pair := range cfg.orthogonal {
		x, err := a.resolve(pair[0])
		if err != nil {
			return nil, err
		}
		y, err := a.resolve(pair[1])
		if err != nil {
			return nil, err
		}
		// (xy)* = y*x*, so orthogonality propagates to adjoints.
		a.ortho[x][y], a.ortho[y][x] = true, true
		a.ortho[a.adjoint[x]][a.adjoint[y]], a.ortho[a.adjoint[y]][a.adjoint[x]] = true, true
	}

	if err := a.buildSymmetries(cfg.symmetries); err != nil {
		return nil, err
	}

	a.radix = uint64(n) + 1
	p := uint64(1)
	for p <= math.MaxUint64/a.radix/2 {
		p *= a.radix
		a.maxHashLen++
	}

	return a, nil
}

// resolve maps a declared name to its id.
func (a *Algebra) resolve(name string) (ID, error) {
	id, ok := a.byName[name]
	if !ok {
		return 0, fmt.Errorf("resolve(%q): %w", name, ErrUnknownOperator)
	}
	return id, nil
}

// buildSymmetries validates the given relabelings and closes them under composition.
func (a *Algebra) buildSymmetries(perms []map[string]string) error {
	n := len(a.names)
	identity := make([]ID, n)
	for i := range identity {
		identity[i] = ID(i)
	}
	a.symmetries = [][]ID{identity}
	if len(perms) == 0 {
		return nil
	}
	if !a.commuting || a.CanBeNonHermitian() {
		return ErrSymmetryNeedsCommuting
	}

	generators := make([][]ID, 0, len(perms))
	for _, m := range perms {
		perm := slices.Clone(identity)
		for from, to := range m {
			f, err := a.resolve(from)
			if err != nil {
				return err
			}
			t, err := a.resolve(to)
			if err != nil {
				return err
			}
			perm[f] = t
		}
		seen := make([]bool, n)
		for _, t := range perm {
			if seen[t] {
				return fmt.Errorf("buildSymmetries: not a bijection: %w", ErrInvalidSymmetry)
			}
			seen[t] = true
		}
		for x := range perm {
			if a.projector[x] != a.projector[perm[x]] {
				return fmt.Errorf("buildSymmetries: projector mismatch: %w", ErrInvalidSymmetry)
			}
			for y := range perm {
				if a.ortho[x][y] != a.ortho[perm[x]][perm[y]] {
					return fmt.Errorf("buildSymmetries: orthogonality mismatch: %w", ErrInvalidSymmetry)
				}
			}
		}
		generators = append(generators, perm)
	}

	// Breadth-first closure; groups over a handful of operators stay small.
	for i := 0; i < len(a.symmetries); i++ {
		for _, g := range generators {
			next := make([]ID, n)
			for x := range next {
				next[x] = g[a.symmetries[i][x]]
			}
			if !slices.ContainsFunc(a.symmetries, func(h []ID) bool { return slices.Equal(h, next) }) {
				a.symmetries = append(a.symmetries, next)
			}
		}
	}
	return nil
}

// Size returns the number of operators, adjoints included.
func (a *Algebra) Size() int { return len(a.names) }

// Name returns the display name of id.
func (a *Algebra) Name(id ID) string { return a.names[id] }

// Lookup returns the id of a declared operator name.
func (a *Algebra) Lookup(name string) (ID, bool) {
	id, ok := a.byName[name]
	return id, ok
}

// Adjoint returns the id of the adjoint of id.
func (a *Algebra) Adjoint(id ID) ID { return a.adjoint[id] }

// Word parses operator names into a canonical sequence.
// An empty list yields Identity.
func (a *Algebra) Word(names ...string) (Sequence, error) {
	raw := make([]ID, 0, len(names))
	for _, name := range names {
		id, err := a.resolve(name)
		if err != nil {
			return Sequence{}, err
		}
		raw = append(raw, id)
	}
	return a.Simplify(raw, Positive), nil
}

// Hash returns the shortlex hash 1·radix^L + Σ (op+1)·radix^(L-1-i).
// Panics if the word is too long for a 64-bit hash (programmer error).
func (a *Algebra) Hash(ops []ID) uint64 {
	if len(ops) > a.maxHashLen {
		panic(fmt.Sprintf("operator: word of length %d exceeds hashable length %d", len(ops), a.maxHashLen))
	}
	h := IdentityHash
	for _, op := range ops {
		h = h*a.radix + uint64(op) + 1
	}
	return h
}

// Simplify canonicalizes raw with the given sign.
// Implementation:
//   - Stage 1: validate ids; sort when commuting.
//   - Stage 2: collapse runs of a projector.
//   - Stage 3: detect orthogonal pairs → Zero.
func (a *Algebra) Simplify(raw []ID, sign Sign) Sequence {
	ops := make([]ID, 0, len(raw))
	for _, op := range raw {
		if int(op) >= len(a.names) {
			panic(fmt.Sprintf("operator: id %d out of range for algebra of size %d", op, len(a.names)))
		}
		ops = append(ops, op)
	}
	if a.commuting {
		slices.Sort(ops)
	}

	out := ops[:0]
	for i, op := range ops {
		if i > 0 && a.projector[op] && ops[i-1] == op {
			continue
		}
		out = append(out, op)
	}

	if a.commuting {
		for i := range out {
			for j := i + 1; j < len(out); j++ {
				if a.ortho[out[i]][out[j]] {
					return Zero()
				}
			}
		}
	} else {
		for i := 1; i < len(out); i++ {
			if a.ortho[out[i-1]][out[i]] {
				return Zero()
			}
		}
	}

	return Sequence{ops: out, hash: a.Hash(out), sign: sign % 4}
}

// Conjugate reverses the word, replaces each operator by its adjoint and
// conjugates the sign.
func (a *Algebra) Conjugate(seq Sequence) Sequence {
	if seq.zero {
		return seq
	}
	raw := make([]ID, len(seq.ops))
	for i, op := range seq.ops {
		raw[len(raw)-1-i] = a.adjoint[op]
	}
	return a.Simplify(raw, seq.sign.Conj())
}

// Multiply concatenates lhs and rhs and canonicalizes the product.
func (a *Algebra) Multiply(lhs, rhs Sequence) Sequence {
	if lhs.zero || rhs.zero {
		return Zero()
	}
	raw := make([]ID, 0, len(lhs.ops)+len(rhs.ops))
	raw = append(raw, lhs.ops...)
	raw = append(raw, rhs.ops...)
	return a.Simplify(raw, lhs.sign.Mul(rhs.sign))
}

// Generate enumerates canonical words by length; words of length L are
// obtained by extending the words first found at length L-1.
// Complexity: O(size · |result| · maxLength).
func (a *Algebra) Generate(maxLength int) []Sequence {
	if maxLength < 0 {
		maxLength = 0
	}
	all := []Sequence{Identity()}
	seen := map[uint64]struct{}{IdentityHash: {}}
	frontier := all
	for length := 1; length <= maxLength && len(frontier) > 0; length++ {
		var next []Sequence
		for _, w := range frontier {
			for op := range len(a.names) {
				raw := append(slices.Clone(w.ops), ID(op))
				s := a.Simplify(raw, Positive)
				if s.zero {
					continue
				}
				if _, dup := seen[s.hash]; dup {
					continue
				}
				seen[s.hash] = struct{}{}
				next = append(next, s)
			}
		}
		all = append(all, next...)
		frontier = next
	}
	slices.SortFunc(all, func(x, y Sequence) int {
		switch {
		case x.hash < y.hash:
			return -1
		case x.hash > y.hash:
			return 1
		}
		return 0
	})
	return all
}

// SimplifyAlias returns the smallest-hash image of seq under the symmetry group.
func (a *Algebra) SimplifyAlias(seq Sequence) Sequence {
	if seq.zero || len(a.symmetries) < 2 {
		return seq
	}
	best := seq
	raw := make([]ID, len(seq.ops))
	for _, g := range a.symmetries[1:] {
		for i, op := range seq.ops {
			raw[i] = g[op]
		}
		cand := a.Simplify(raw, seq.sign)
		if !cand.zero && cand.hash < best.hash {
			best = cand
		}
	}
	return best
}

// CanHaveAliases reports whether a non-trivial symmetry group was configured.
func (a *Algebra) CanHaveAliases() bool { return len(a.symmetries) > 1 }

// CanBeNonHermitian is false only for commuting algebras of Hermitian operators.
func (a *Algebra) CanBeNonHermitian() bool {
	if !a.commuting {
		return true
	}
	for id, adj := range a.adjoint {
		if ID(id) != adj {
			return true
		}
	}
	return false
}

// Format renders seq with operator names separated by spaces, e.g. "-a b*".
func (a *Algebra) Format(seq Sequence) string {
	if seq.zero {
		return "0"
	}
	if len(seq.ops) == 0 {
		return seq.sign.String() + "1"
	}
	parts := make([]string, len(seq.ops))
	for i, op := range seq.ops {
		parts[i] = a.names[op]
	}
	return seq.sign.String() + strings.Join(parts, " ")
}
