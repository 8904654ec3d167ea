// Package semiring: the product (pair) semiring.

package semiring

import (
	"io"
	"strings"
)

// Pair is the product of two semirings with componentwise operations:
// Zero = (ZeroA, ZeroB), One = (OneA, OneB). It is the building block
// for lexicographic and expectation-style composite weights, and the
// type that exercises the composite text framing (separator and
// parentheses) end to end.
type Pair[A Weight[A], B Weight[B]] struct {
	First  A
	Second B
}

// NewPair builds a pair weight from its components.
func NewPair[A Weight[A], B Weight[B]](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// Plus applies ⊕ componentwise.
func (p Pair[A, B]) Plus(other Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{First: p.First.Plus(other.First), Second: p.Second.Plus(other.Second)}
}

// Times applies ⊗ componentwise.
func (p Pair[A, B]) Times(other Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{First: p.First.Times(other.First), Second: p.Second.Times(other.Second)}
}

// Zero returns (ZeroA, ZeroB).
func (p Pair[A, B]) Zero() Pair[A, B] {
	return Pair[A, B]{First: p.First.Zero(), Second: p.Second.Zero()}
}

// One returns (OneA, OneB).
func (p Pair[A, B]) One() Pair[A, B] {
	return Pair[A, B]{First: p.First.One(), Second: p.Second.One()}
}

// Member reports whether both components are valid.
func (p Pair[A, B]) Member() bool { return p.First.Member() && p.Second.Member() }

// Quantize quantizes both components.
func (p Pair[A, B]) Quantize(delta float64) Pair[A, B] {
	return Pair[A, B]{First: p.First.Quantize(delta), Second: p.Second.Quantize(delta)}
}

// ApproxEqual compares both components within delta.
func (p Pair[A, B]) ApproxEqual(other Pair[A, B], delta float64) bool {
	return p.First.ApproxEqual(other.First, delta) && p.Second.ApproxEqual(other.Second, delta)
}

// Type names the weight type as "<first>_<second>_pair".
func (p Pair[A, B]) Type() string {
	return p.First.Type() + "_" + p.Second.Type() + "_pair"
}

// String renders the pair with the default text options (',' separator,
// no parentheses).
func (p Pair[A, B]) String() string {
	var sb strings.Builder
	tw, _ := NewTextWriter(&sb) // defaults always validate
	p.WriteText(tw)

	return sb.String()
}

// WriteText emits the composite frame around both components.
func (p Pair[A, B]) WriteText(tw *TextWriter) {
	tw.WriteBegin()
	p.First.WriteText(tw)
	tw.WriteSeparator()
	p.Second.WriteText(tw)
	tw.WriteEnd()
}

// ReadText mirrors WriteText: frame, first component, separator, second
// component, frame close. Framing errors surface as the reader's
// sentinel errors.
func (p Pair[A, B]) ReadText(tr *TextReader) (Pair[A, B], error) {
	var zero Pair[A, B]
	if err := tr.ReadBegin(); err != nil {
		return zero, err
	}
	first, err := p.First.ReadText(tr)
	if err != nil {
		return zero, err
	}
	if err = tr.ReadSeparator(); err != nil {
		return zero, err
	}
	second, err := p.Second.ReadText(tr)
	if err != nil {
		return zero, err
	}
	if err = tr.ReadEnd(); err != nil {
		return zero, err
	}

	return Pair[A, B]{First: first, Second: second}, nil
}

// Encode writes both components in order.
func (p Pair[A, B]) Encode(w io.Writer) error {
	if err := p.First.Encode(w); err != nil {
		return err
	}

	return p.Second.Encode(w)
}

// Decode reads both components in order.
func (p Pair[A, B]) Decode(r io.Reader) (Pair[A, B], error) {
	var zero Pair[A, B]
	first, err := p.First.Decode(r)
	if err != nil {
		return zero, err
	}
	second, err := p.Second.Decode(r)
	if err != nil {
		return zero, err
	}

	return Pair[A, B]{First: first, Second: second}, nil
}
