// Package semiring: the boolean semiring.

package semiring

import (
	"fmt"
	"io"
)

// Bool is the boolean semiring: ⊕ = ∨, ⊗ = ∧, Zero = false, One = true.
// Useful for plain acceptance tests where path weights do not matter.
type Bool bool

// BoolZero and BoolOne are the semiring identities.
const (
	BoolZero = Bool(false)
	BoolOne  = Bool(true)
)

// Plus returns t ∨ other.
func (t Bool) Plus(other Bool) Bool { return t || other }

// Times returns t ∧ other.
func (t Bool) Times(other Bool) Bool { return t && other }

// Zero returns the ⊕-identity (false).
func (Bool) Zero() Bool { return BoolZero }

// One returns the ⊗-identity (true).
func (Bool) One() Bool { return BoolOne }

// Member always reports true: every bit pattern is a valid element.
func (Bool) Member() bool { return true }

// Quantize is the identity; Bool has no tolerance notion.
func (t Bool) Quantize(float64) Bool { return t }

// ApproxEqual is exact equality; delta is ignored.
func (t Bool) ApproxEqual(other Bool, _ float64) bool { return t == other }

// Type names the weight type for registries and file headers.
func (Bool) Type() string { return "bool" }

// String renders "0" or "1".
func (t Bool) String() string {
	if t {
		return "1"
	}

	return "0"
}

// WriteText emits the scalar token.
func (t Bool) WriteText(tw *TextWriter) { tw.WriteElement(t.String()) }

// ReadText parses "0" or "1".
func (Bool) ReadText(tr *TextReader) (Bool, error) {
	tok, err := tr.ReadElement()
	if err != nil {
		return BoolZero, err
	}
	switch tok {
	case "0":
		return BoolZero, nil
	case "1":
		return BoolOne, nil
	default:
		return BoolZero, fmt.Errorf("%w: %q", ErrBadWeightText, tok)
	}
}

// Encode writes one byte.
func (t Bool) Encode(w io.Writer) error {
	b := byte(0)
	if t {
		b = 1
	}
	_, err := w.Write([]byte{b})

	return err
}

// Decode reads one byte.
func (Bool) Decode(r io.Reader) (Bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return BoolZero, err
	}

	return buf[0] != 0, nil
}
