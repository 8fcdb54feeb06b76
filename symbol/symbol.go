// SPDX-License-Identifier: MIT

package symbol

import (
	"fmt"

	"github.com/katalvlaran/lvlmoment/operator"
)

// Reserved symbol ids, seeded into every Table.
const (
	ZeroID     = 0
	IdentityID = 1
)

// Unassigned marks a Symbol that has not been registered yet.
const Unassigned = -1

// Symbol is a registered (or pending) equivalence class of words.
// Sequences are stored with a positive sign. For a Hermitian symbol
// Conjugate equals Forward.
type Symbol struct {
	ID        int
	Forward   operator.Sequence
	Conjugate operator.Sequence
	Hermitian bool
}

// Classify builds the unregistered Symbol containing seq.
// The member with the smaller hash becomes Forward.
func Classify(ctx operator.Context, seq operator.Sequence) Symbol {
	if seq.IsZero() {
		return Symbol{ID: Unassigned, Forward: seq, Conjugate: seq, Hermitian: true}
	}
	return classify(seq.Unsigned(), ctx.Conjugate(seq).Unsigned())
}

// classify orders an unsigned word and its unsigned conjugate.
func classify(seq, conj operator.Sequence) Symbol {
	switch {
	case seq.Hash() == conj.Hash():
		return Symbol{ID: Unassigned, Forward: seq, Conjugate: seq, Hermitian: true}
	case seq.Hash() < conj.Hash():
		return Symbol{ID: Unassigned, Forward: seq, Conjugate: conj}
	default:
		return Symbol{ID: Unassigned, Forward: conj, Conjugate: seq}
	}
}

// ForwardHash returns the hash of the forward word.
func (s Symbol) ForwardHash() uint64 { return s.Forward.Hash() }

// ConjugateHash returns the hash of the conjugate word.
func (s Symbol) ConjugateHash() uint64 { return s.Conjugate.Hash() }

// Key is the canonical map key: the smaller of the two hashes.
func (s Symbol) Key() uint64 { return min(s.Forward.Hash(), s.Conjugate.Hash()) }

// String renders "#id: fwd" or "#id: fwd / conj".
func (s Symbol) String() string {
	if s.Hermitian {
		return fmt.Sprintf("#%d: %s", s.ID, s.Forward)
	}
	return fmt.Sprintf("#%d: %s / %s", s.ID, s.Forward, s.Conjugate)
}

// zeroSymbol and identitySymbol are seeded into every Table and Collector.
func zeroSymbol() Symbol {
	z := operator.Zero()
	return Symbol{ID: ZeroID, Forward: z, Conjugate: z, Hermitian: true}
}

func identitySymbol() Symbol {
	e := operator.Identity()
	return Symbol{ID: IdentityID, Forward: e, Conjugate: e, Hermitian: true}
}
