// Package semiring: the log semiring over float64.

package semiring

import (
	"encoding/binary"
	"io"
	"math"
)

// Log is the log semiring: ⊕ = -log(e⁻ᵃ + e⁻ᵇ), ⊗ = +, Zero = +Inf,
// One = 0. Unlike Tropical it sums probability mass instead of taking
// the best path, which is what forward-backward style computations need.
type Log float64

// LogZero and LogOne are the semiring identities.
var (
	LogZero = Log(math.Inf(1))
	LogOne  = Log(0)
)

// logExp computes log(1 + e⁻ˣ) for x ≥ 0 in a numerically stable way.
func logExp(x float64) float64 { return math.Log1p(math.Exp(-x)) }

// Plus returns -log(e⁻ᵗ + e⁻ᵒ); identities short-circuit so Zero never
// enters the transcendental path.
func (t Log) Plus(other Log) Log {
	if !t.Member() || !other.Member() {
		return Log(math.NaN())
	}
	a, b := float64(t), float64(other)
	switch {
	case math.IsInf(a, 1):
		return other
	case math.IsInf(b, 1):
		return t
	case a <= b:
		return Log(a - logExp(b-a))
	default:
		return Log(b - logExp(a-b))
	}
}

// Times returns t + other; Zero annihilates.
func (t Log) Times(other Log) Log {
	if !t.Member() || !other.Member() {
		return Log(math.NaN())
	}
	if t == LogZero || other == LogZero {
		return LogZero
	}

	return t + other
}

// Zero returns the ⊕-identity (+Inf).
func (Log) Zero() Log { return LogZero }

// One returns the ⊗-identity (0).
func (Log) One() Log { return LogOne }

// Member reports validity: NaN is the reserved error pattern, -Inf is
// excluded.
func (t Log) Member() bool {
	f := float64(t)

	return !math.IsNaN(f) && !math.IsInf(f, -1)
}

// Quantize rounds to the nearest multiple of delta.
func (t Log) Quantize(delta float64) Log {
	f := float64(t)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return t
	}

	return Log(math.Floor(f/delta+0.5) * delta)
}

// ApproxEqual reports |t-other| < delta, with exact matching for
// infinities.
func (t Log) ApproxEqual(other Log, delta float64) bool {
	a, b := float64(t), float64(other)
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}

	return math.Abs(a-b) < delta
}

// Type names the weight type for registries and file headers.
func (Log) Type() string { return "log" }

// String renders the weight using the shared float convention.
func (t Log) String() string { return formatFloat(float64(t)) }

// WriteText emits the scalar token.
func (t Log) WriteText(tw *TextWriter) { tw.WriteElement(t.String()) }

// ReadText parses one scalar token.
func (Log) ReadText(tr *TextReader) (Log, error) {
	tok, err := tr.ReadElement()
	if err != nil {
		return LogZero, err
	}
	f, err := parseFloat(tok)
	if err != nil {
		return LogZero, err
	}

	return Log(f), nil
}

// Encode writes the binary form (little-endian float64).
func (t Log) Encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, float64(t))
}

// Decode reads the binary form.
func (Log) Decode(r io.Reader) (Log, error) {
	var f float64
	if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
		return LogZero, err
	}

	return Log(f), nil
}
