// Package semiring: the tropical semiring over float64.

package semiring

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Tropical is the tropical semiring: ⊕ = min, ⊗ = +, Zero = +Inf,
// One = 0. It is the usual domain for Viterbi-style shortest-distance
// computations where weights are negative log probabilities.
type Tropical float64

// TropicalZero and TropicalOne are the semiring identities.
var (
	TropicalZero = Tropical(math.Inf(1))
	TropicalOne  = Tropical(0)
)

// Plus returns min(t, other); Zero propagates as the identity.
func (t Tropical) Plus(other Tropical) Tropical {
	if !t.Member() || !other.Member() {
		return Tropical(math.NaN())
	}
	if t < other {
		return t
	}

	return other
}

// Times returns t + other; Zero annihilates.
func (t Tropical) Times(other Tropical) Tropical {
	if !t.Member() || !other.Member() {
		return Tropical(math.NaN())
	}
	if t == TropicalZero || other == TropicalZero {
		return TropicalZero
	}

	return t + other
}

// Zero returns the ⊕-identity (+Inf).
func (Tropical) Zero() Tropical { return TropicalZero }

// One returns the ⊗-identity (0).
func (Tropical) One() Tropical { return TropicalOne }

// Member reports validity: NaN is the reserved error pattern, -Inf is
// not an element of the tropical semiring.
func (t Tropical) Member() bool {
	f := float64(t)

	return !math.IsNaN(f) && !math.IsInf(f, -1)
}

// Quantize rounds to the nearest multiple of delta; infinities and
// non-members pass through unchanged.
func (t Tropical) Quantize(delta float64) Tropical {
	f := float64(t)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return t
	}

	return Tropical(math.Floor(f/delta+0.5) * delta)
}

// ApproxEqual reports |t-other| < delta, with exact matching for
// infinities.
func (t Tropical) ApproxEqual(other Tropical, delta float64) bool {
	a, b := float64(t), float64(other)
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}

	return math.Abs(a-b) < delta
}

// Type names the weight type for registries and file headers.
func (Tropical) Type() string { return "tropical" }

// String renders the weight; infinities use the spelled-out forms so
// that text round-trips are unambiguous.
func (t Tropical) String() string { return formatFloat(float64(t)) }

// WriteText emits the scalar token.
func (t Tropical) WriteText(tw *TextWriter) { tw.WriteElement(t.String()) }

// ReadText parses one scalar token.
func (Tropical) ReadText(tr *TextReader) (Tropical, error) {
	tok, err := tr.ReadElement()
	if err != nil {
		return TropicalZero, err
	}
	f, err := parseFloat(tok)
	if err != nil {
		return TropicalZero, err
	}

	return Tropical(f), nil
}

// Encode writes the binary form (little-endian float64).
func (t Tropical) Encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, float64(t))
}

// Decode reads the binary form.
func (Tropical) Decode(r io.Reader) (Tropical, error) {
	var f float64
	if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
		return TropicalZero, err
	}

	return Tropical(f), nil
}

// formatFloat and parseFloat implement the shared float text convention
// for the float-valued semirings.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "BadNumber"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func parseFloat(tok string) (float64, error) {
	switch tok {
	case "BadNumber":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadWeightText, tok)
	}

	return f, nil
}
