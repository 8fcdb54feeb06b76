// SPDX-License-Identifier: MIT

package operator

// Sign is a unit scalar from {+1, +i, -1, -i}, stored as a power of i.
type Sign uint8

const (
	// Positive is +1.
	Positive Sign = iota
	// Imaginary is +i.
	Imaginary
	// Negative is -1.
	Negative
	// NegativeImaginary is -i.
	NegativeImaginary
)

// Mul returns s·o. Powers of i add modulo 4.
func (s Sign) Mul(o Sign) Sign { return (s + o) % 4 }

// Conj returns the complex conjugate of s.
func (s Sign) Conj() Sign { return (4 - s%4) % 4 }

// Complex returns s as a complex128.
func (s Sign) Complex() complex128 {
	switch s % 4 {
	case Imaginary:
		return complex(0, 1)
	case Negative:
		return complex(-1, 0)
	case NegativeImaginary:
		return complex(0, -1)
	default:
		return complex(1, 0)
	}
}

// String renders the sign as a prefix: "", "i", "-", "-i".
func (s Sign) String() string {
	switch s % 4 {
	case Imaginary:
		return "i"
	case Negative:
		return "-"
	case NegativeImaginary:
		return "-i"
	default:
		return ""
	}
}
