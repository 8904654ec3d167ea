// Package semiring: the Weight constraint and generic parse/format helpers.
//
// Weight[W] is expressed as a self-referential generic constraint so that
// algorithms stay fully typed: Plus and Times return W, not an interface,
// and arcs carry weights by value with no boxing.

package semiring

import (
	"fmt"
	"io"
	"strings"
)

// Weight is the contract every semiring element type must satisfy.
//
// Zero and One are the identities of Plus and Times respectively; both
// are pure and total. Member reports whether the receiver is a valid
// element of the semiring — some encodings reserve bit patterns (NaN for
// the float semirings) to signal errors, and those must not be treated
// as values.
//
// Quantize rounds the weight to the nearest multiple of delta so that
// approximate algorithms can canonicalize before hashing; ApproxEqual is
// the matching tolerance predicate.
//
// WriteText/ReadText implement the composite-weight text convention (see
// TextWriter/TextReader); Encode/Decode are the binary forms used by the
// transducer serialization layer. ReadText and Decode are invoked on the
// zero value of W and return the parsed element, keeping W a plain value
// type.
type Weight[W any] interface {
	fmt.Stringer

	// Plus is the semiring ⊕ (e.g. min for Tropical).
	Plus(W) W
	// Times is the semiring ⊗ (e.g. + for Tropical).
	Times(W) W
	// Zero returns the ⊕-identity.
	Zero() W
	// One returns the ⊗-identity.
	One() W
	// Member reports whether the receiver is a valid semiring element.
	Member() bool
	// Quantize rounds to the nearest multiple of delta (no-op where
	// meaningless, e.g. Bool).
	Quantize(delta float64) W
	// ApproxEqual reports equality within delta.
	ApproxEqual(other W, delta float64) bool
	// Type names the weight type for registries and file headers
	// (e.g. "tropical").
	Type() string

	// WriteText emits the weight through a composite text writer.
	WriteText(tw *TextWriter)
	// ReadText parses a weight from a composite text reader.
	ReadText(tr *TextReader) (W, error)
	// Encode writes the binary form.
	Encode(w io.Writer) error
	// Decode reads the binary form.
	Decode(r io.Reader) (W, error)
}

// DefaultDelta is the quantization tolerance used when callers do not
// supply one; it matches the granularity of single-precision costs.
const DefaultDelta = 1.0 / 1024.0

// FormatWeight renders w using the composite text convention with the
// given I/O options. Complexity: O(len(output)).
func FormatWeight[W Weight[W]](w W, opts ...TextOption) (string, error) {
	var sb strings.Builder
	tw, err := NewTextWriter(&sb, opts...)
	if err != nil {
		return "", err
	}
	w.WriteText(tw)
	if err = tw.Err(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// ParseWeight parses a weight of type W from s using the composite text
// convention. Trailing non-whitespace after the parsed weight is an
// error (ErrTrailingGarbage), as is a missing closing parenthesis when
// parentheses are configured.
func ParseWeight[W Weight[W]](s string, opts ...TextOption) (W, error) {
	var zero W
	tr, err := NewTextReader(strings.NewReader(s), opts...)
	if err != nil {
		return zero, err
	}
	w, err := zero.ReadText(tr)
	if err != nil {
		return zero, err
	}
	if err = tr.Finish(); err != nil {
		return zero, err
	}

	return w, nil
}
