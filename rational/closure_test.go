package rational_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlfst/fst"
	"github.com/katalvlaran/lvlfst/rational"
	"github.com/katalvlaran/lvlfst/semiring"
)

// oneWordTransducer accepts 2:5 with weight 2*3: start 0, arc
// 0 -(2:5/2)-> 1, state 1 final with 3.
func oneWordTransducer() *fst.VectorFst[semiring.Tropical] {
	f := fst.NewVectorFst[semiring.Tropical]()
	f.AddStates(2)
	f.SetStart(0)
	f.AddArc(0, fst.NewArc(2, 5, semiring.Tropical(2), 1))
	f.SetFinal(1, semiring.Tropical(3))

	return f
}

func collectArcs(f fst.Fst[semiring.Tropical], s fst.StateID) []fst.Arc[semiring.Tropical] {
	var arcs []fst.Arc[semiring.Tropical]
	for it := f.Arcs(s); !it.Done(); it.Next() {
		arcs = append(arcs, it.Value())
	}

	return arcs
}

func TestClosurePlusDestructive(t *testing.T) {
	require := require.New(t)
	f := oneWordTransducer()
	require.NoError(rational.Closure(f, rational.ClosurePlus))

	require.Equal(2, f.NumStates(), "plus closure adds no state")
	require.Equal(fst.StateID(0), f.Start())
	require.Equal(semiring.TropicalZero, f.Final(0), "plus closure must not accept the empty string")

	// The final state loops back to the start, carrying its final weight.
	arcs := collectArcs(f, 1)
	require.Len(arcs, 1)
	require.Equal(fst.NewArc(fst.Epsilon, fst.Epsilon, semiring.Tropical(3), fst.StateID(0)), arcs[0])
}

func TestClosureStarDestructive(t *testing.T) {
	require := require.New(t)
	f := oneWordTransducer()
	require.NoError(rational.Closure(f, rational.ClosureStar))

	require.Equal(3, f.NumStates(), "star closure adds one super-state")
	super := fst.StateID(2)
	require.Equal(super, f.Start())
	require.Equal(semiring.TropicalOne, f.Final(super), "the empty string is accepted with One")

	arcs := collectArcs(f, super)
	require.Len(arcs, 1)
	require.Equal(fst.NewArc(fst.Epsilon, fst.Epsilon, semiring.TropicalOne, fst.StateID(0)), arcs[0])

	// Repetition still loops through the old start.
	arcs = collectArcs(f, 1)
	require.Len(arcs, 1)
	require.Equal(fst.StateID(0), arcs[0].NextState)
	require.Equal(semiring.Tropical(3), arcs[0].Weight)
}

func TestClosureArgumentErrors(t *testing.T) {
	require := require.New(t)
	require.ErrorIs(rational.Closure[semiring.Tropical](nil, rational.ClosureStar), fst.ErrNilFst)
	require.ErrorIs(rational.Closure(oneWordTransducer(), rational.ClosureType(9)), rational.ErrBadClosureType)

	_, err := rational.NewClosureFst[semiring.Tropical](nil, rational.ClosurePlus)
	require.ErrorIs(err, fst.ErrNilFst)
	_, err = rational.NewClosureFst[semiring.Tropical](oneWordTransducer(), rational.ClosureType(9))
	require.ErrorIs(err, rational.ErrBadClosureType)
}

func TestClosureDelayedMatchesDestructive(t *testing.T) {
	for _, tc := range []struct {
		name  string
		ctype rational.ClosureType
	}{
		{name: "star", ctype: rational.ClosureStar},
		{name: "plus", ctype: rational.ClosurePlus},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)
			src := oneWordTransducer()

			eager, ok := src.Copy(true).(*fst.VectorFst[semiring.Tropical])
			require.True(ok)
			require.NoError(rational.Closure(eager, tc.ctype))

			delayed, err := rational.NewClosureFst[semiring.Tropical](src, tc.ctype)
			require.NoError(err)

			require.Equal(eager.NumStates(), delayed.NumStates())
			require.Equal(eager.Start(), delayed.Start())
			for s := fst.StateID(0); s < fst.StateID(eager.NumStates()); s++ {
				require.True(eager.Final(s).ApproxEqual(delayed.Final(s), 1e-12), "final of state %d", s)
				require.Equal(collectArcs(eager, s), collectArcs(delayed, s), "arcs of state %d", s)
				require.Equal(eager.NumArcs(s), delayed.NumArcs(s))
			}

			// The source was never touched.
			require.Equal(2, src.NumStates())
			require.Len(collectArcs(src, 1), 0)
		})
	}
}

func TestClosureFstCachesVisitedStates(t *testing.T) {
	require := require.New(t)
	src := oneWordTransducer()
	delayed, err := rational.NewClosureFst[semiring.Tropical](src, rational.ClosurePlus)
	require.NoError(err)

	first := collectArcs(delayed, 1)
	second := collectArcs(delayed, 1)
	require.Equal(first, second, "a cached state must replay identically")
	require.Equal(1, delayed.NumInputEpsilons(1))
	require.Equal(1, delayed.NumOutputEpsilons(1))
}

func TestClosureFstSafeCopy(t *testing.T) {
	require := require.New(t)
	src := oneWordTransducer()
	delayed, err := rational.NewClosureFst[semiring.Tropical](src, rational.ClosureStar)
	require.NoError(err)
	_ = collectArcs(delayed, 0) // warm the cache before forking

	indep, ok := delayed.Copy(true).(fst.Expanded[semiring.Tropical])
	require.True(ok)

	// Growing the original source is invisible to the safe copy.
	src.AddState()
	require.Equal(4, delayed.NumStates())
	require.Equal(3, indep.NumStates())

	shared, ok := delayed.Copy(false).(fst.Expanded[semiring.Tropical])
	require.True(ok)
	require.Equal(delayed.NumStates(), shared.NumStates())
}

func TestClosureProperties(t *testing.T) {
	require := require.New(t)
	in := fst.PropAcceptor | fst.PropNoEpsilons | fst.PropAcyclic | fst.PropAccessible

	out := rational.ClosureProperties(in, false)
	require.NotZero(out&fst.PropAcceptor, "epsilon loop arcs keep the acceptor fact")
	require.Zero(out&fst.PropNoEpsilons, "epsilon-freedom does not survive closure")
	require.Zero(out&fst.PropAcyclic, "the loop-back arcs may close cycles")
	require.NotZero(out & fst.PropAccessible)

	star := rational.ClosureProperties(fst.PropInitialCyclic, true)
	require.NotZero(star&fst.PropInitialAcyclic, "the star super-state has no incoming arc")
	require.Zero(star & fst.PropInitialCyclic)
}
