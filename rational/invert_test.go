package rational_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlfst/fst"
	"github.com/katalvlaran/lvlfst/rational"
	"github.com/katalvlaran/lvlfst/semiring"
	"github.com/katalvlaran/lvlfst/symtab"
)

func TestInvertSwapsLabels(t *testing.T) {
	require := require.New(t)
	f := oneWordTransducer()
	require.NoError(rational.Invert(f))

	arcs := collectArcs(f, 0)
	require.Len(arcs, 1)
	require.Equal(fst.NewArc(5, 2, semiring.Tropical(2), fst.StateID(1)), arcs[0],
		"an asymmetric arc 2:5 must come back as 5:2 with the weight intact")
	require.Equal(semiring.Tropical(3), f.Final(1), "inversion never touches finals")
	require.Equal(fst.StateID(0), f.Start())
}

func TestInvertSwapsSymbolTables(t *testing.T) {
	require := require.New(t)
	f := oneWordTransducer()
	isyms, osyms := symtab.New("in"), symtab.New("out")
	f.SetInputSymbols(isyms)
	f.SetOutputSymbols(osyms)

	require.NoError(rational.Invert(f))
	require.Equal("out", f.InputSymbols().Name(), "tables trade places wholesale")
	require.Equal("in", f.OutputSymbols().Name())
}

func TestInvertInvolution(t *testing.T) {
	require := require.New(t)
	f := oneWordTransducer()
	f.SetInputSymbols(symtab.New("in"))
	f.SetOutputSymbols(symtab.New("out"))
	want, ok := f.Copy(true).(*fst.VectorFst[semiring.Tropical])
	require.True(ok)

	require.NoError(rational.Invert(f))
	require.NoError(rational.Invert(f))

	require.Equal(want.Start(), f.Start())
	require.Equal(want.NumStates(), f.NumStates())
	for s := fst.StateID(0); s < fst.StateID(f.NumStates()); s++ {
		require.Equal(collectArcs(want, s), collectArcs(f, s))
		require.True(want.Final(s).ApproxEqual(f.Final(s), 1e-12))
	}
	require.True(want.InputSymbols().Equal(f.InputSymbols()))
	require.True(want.OutputSymbols().Equal(f.OutputSymbols()))
}

func TestInvertNil(t *testing.T) {
	require.ErrorIs(t, rational.Invert[semiring.Tropical](nil), fst.ErrNilFst)

	_, err := rational.NewInvertFst[semiring.Tropical](nil)
	require.ErrorIs(t, err, fst.ErrNilFst)
}

func TestInvertFstDelayedMatchesDestructive(t *testing.T) {
	require := require.New(t)
	src := oneWordTransducer()
	src.AddArc(0, fst.NewArc(fst.Epsilon, 7, semiring.TropicalOne, 1))
	src.SetInputSymbols(symtab.New("in"))
	src.SetOutputSymbols(symtab.New("out"))

	eager, ok := src.Copy(true).(*fst.VectorFst[semiring.Tropical])
	require.True(ok)
	require.NoError(rational.Invert(eager))

	delayed, err := rational.NewInvertFst[semiring.Tropical](src)
	require.NoError(err)

	require.Equal(eager.NumStates(), delayed.NumStates())
	require.Equal(eager.Start(), delayed.Start())
	for s := fst.StateID(0); s < fst.StateID(eager.NumStates()); s++ {
		require.Equal(collectArcs(eager, s), collectArcs(delayed, s), "arcs of state %d", s)
		require.Equal(eager.NumArcs(s), delayed.NumArcs(s))
	}

	// Epsilon accounting swaps sides without forcing expansion.
	require.Equal(src.NumOutputEpsilons(0), delayed.NumInputEpsilons(0))
	require.Equal(src.NumInputEpsilons(0), delayed.NumOutputEpsilons(0))
	require.Equal(1, delayed.NumOutputEpsilons(0))

	// Tables are served crosswise from the source.
	require.Equal("out", delayed.InputSymbols().Name())
	require.Equal("in", delayed.OutputSymbols().Name())

	// The source still carries its original labels.
	require.Equal(fst.Label(2), collectArcs(src, 0)[0].ILabel)
}

func TestInvertFstSafeCopy(t *testing.T) {
	require := require.New(t)
	src := oneWordTransducer()
	delayed, err := rational.NewInvertFst[semiring.Tropical](src)
	require.NoError(err)
	_ = collectArcs(delayed, 0)

	indep, ok := delayed.Copy(true).(fst.Expanded[semiring.Tropical])
	require.True(ok)
	src.AddState()
	require.Equal(3, delayed.NumStates())
	require.Equal(2, indep.NumStates())
	require.Equal(fst.Label(5), collectArcs(indep, 0)[0].ILabel)
}

func TestInvertProperties(t *testing.T) {
	require := require.New(t)
	in := fst.PropIEpsilons | fst.PropNoOEpsilons | fst.PropIDeterministic | fst.PropAcceptor | fst.PropAcyclic

	out := rational.InvertProperties(in)
	require.NotZero(out&fst.PropOEpsilons, "input epsilons become output epsilons")
	require.NotZero(out&fst.PropNoIEpsilons, "output epsilon freedom becomes input epsilon freedom")
	require.Zero(out&fst.PropIEpsilons)
	require.Zero(out&fst.PropIDeterministic, "input determinism is not a fact about the inverted input side")
	require.NotZero(out&fst.PropAcceptor, "label-symmetric facts survive")
	require.NotZero(out & fst.PropAcyclic)
}
