package semiring_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlfst/semiring"
)

const tightDelta = 1e-9

func TestTropicalSemiringLaws(t *testing.T) {
	require := require.New(t)
	a, b, c := semiring.Tropical(1.5), semiring.Tropical(3), semiring.Tropical(0.25)

	// Associativity of both operations.
	require.True(a.Plus(b.Plus(c)).ApproxEqual(a.Plus(b).Plus(c), tightDelta), "Plus must be associative")
	require.True(a.Times(b.Times(c)).ApproxEqual(a.Times(b).Times(c), tightDelta), "Times must be associative")

	// Identities.
	require.True(a.Plus(a.Zero()).ApproxEqual(a, tightDelta), "Zero must be the Plus identity")
	require.True(a.Times(a.One()).ApproxEqual(a, tightDelta), "One must be the right Times identity")
	require.True(a.One().Times(a).ApproxEqual(a, tightDelta), "One must be the left Times identity")

	// Zero annihilates Times.
	require.True(a.Times(a.Zero()).ApproxEqual(a.Zero(), tightDelta), "Zero must annihilate Times")

	// Concrete semantics: min and +.
	require.Equal(semiring.Tropical(1.5), a.Plus(b), "tropical Plus is min")
	require.Equal(semiring.Tropical(4.5), a.Times(b), "tropical Times is +")
}

func TestTropicalMember(t *testing.T) {
	require := require.New(t)
	require.True(semiring.Tropical(3).Member())
	require.True(semiring.TropicalZero.Member(), "+Inf is the Zero element, a member")
	require.False(semiring.Tropical(math.NaN()).Member(), "NaN is the reserved error pattern")
	require.False(semiring.Tropical(math.Inf(-1)).Member(), "-Inf is outside the tropical domain")

	// Operations on non-members stay non-members.
	bad := semiring.Tropical(math.NaN())
	require.False(bad.Plus(semiring.Tropical(1)).Member())
	require.False(semiring.Tropical(1).Times(bad).Member())
}

func TestLogSemiring(t *testing.T) {
	require := require.New(t)
	a, b := semiring.Log(0), semiring.Log(0)

	// -log(e^0 + e^0) = -ln 2.
	require.True(a.Plus(b).ApproxEqual(semiring.Log(-math.Ln2), 1e-12), "log Plus must be -log(e^-x + e^-y)")
	// Zero is the Plus identity even though it is +Inf.
	require.True(a.Plus(a.Zero()).ApproxEqual(a, tightDelta))
	// Times is still +.
	require.Equal(semiring.Log(5), semiring.Log(2).Times(semiring.Log(3)))

	// Plus never loses precision catastrophically for distant operands.
	far := semiring.Log(1000).Plus(semiring.Log(0))
	require.True(far.ApproxEqual(semiring.Log(0), 1e-9), "a much heavier operand must not perturb the lighter one")
}

func TestBoolSemiring(t *testing.T) {
	require := require.New(t)
	tr, fa := semiring.Bool(true), semiring.Bool(false)

	require.Equal(tr, tr.Plus(fa), "Bool Plus is or")
	require.Equal(fa, tr.Times(fa), "Bool Times is and")
	require.Equal(fa, fa.Zero())
	require.Equal(tr, fa.One())
	require.True(tr.Member())
	require.Equal("1", tr.String())
	require.Equal("0", fa.String())
}

func TestQuantize(t *testing.T) {
	require := require.New(t)
	require.Equal(semiring.Tropical(1.0), semiring.Tropical(1.2).Quantize(0.5))
	require.Equal(semiring.Tropical(1.5), semiring.Tropical(1.3).Quantize(0.5))
	require.Equal(semiring.TropicalZero, semiring.TropicalZero.Quantize(0.5), "infinities pass through Quantize")

	p := semiring.NewPair(semiring.Tropical(1.2), semiring.Log(2.8))
	q := p.Quantize(0.5)
	require.Equal(semiring.Tropical(1.0), q.First)
	require.Equal(semiring.Log(3.0), q.Second)
}

func TestApproxEqualInfinities(t *testing.T) {
	require := require.New(t)
	require.True(semiring.TropicalZero.ApproxEqual(semiring.TropicalZero, semiring.DefaultDelta))
	require.False(semiring.TropicalZero.ApproxEqual(semiring.Tropical(1e18), semiring.DefaultDelta), "an infinity only matches an infinity")
}

func TestPairSemiringLaws(t *testing.T) {
	require := require.New(t)
	a := semiring.NewPair(semiring.Tropical(1), semiring.Bool(true))
	b := semiring.NewPair(semiring.Tropical(2), semiring.Bool(false))

	sum := a.Plus(b)
	require.Equal(semiring.Tropical(1), sum.First, "pair Plus is componentwise")
	require.Equal(semiring.Bool(true), sum.Second)

	prod := a.Times(b)
	require.Equal(semiring.Tropical(3), prod.First, "pair Times is componentwise")
	require.Equal(semiring.Bool(false), prod.Second)

	require.True(a.Times(a.One()).ApproxEqual(a, tightDelta))
	require.True(a.Plus(a.Zero()).ApproxEqual(a, tightDelta))
	require.Equal("tropical_bool_pair", a.Type())
}
