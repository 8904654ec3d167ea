package fst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlfst/fst"
	"github.com/katalvlaran/lvlfst/semiring"
)

func TestComputePropertiesChain(t *testing.T) {
	require := require.New(t)
	f := fst.NewVectorFst[semiring.Tropical]()
	f.AddStates(3)
	f.SetStart(0)
	f.AddArc(0, fst.NewArc(1, 1, semiring.TropicalOne, 1))
	f.AddArc(1, fst.NewArc(2, 2, semiring.TropicalOne, 2))
	f.SetFinal(2, semiring.TropicalOne)

	got := f.Properties(fst.PropAll, true)
	for _, want := range []uint64{
		fst.PropAcceptor,
		fst.PropIDeterministic,
		fst.PropNoEpsilons,
		fst.PropUnweighted,
		fst.PropAcyclic,
		fst.PropInitialAcyclic,
		fst.PropTopSorted,
		fst.PropAccessible,
		fst.PropCoAccessible,
	} {
		require.NotZero(got&want, "chain must compute bit %#x positive", want)
	}
	require.Zero(got&fst.PropCyclic)
	require.Zero(got&fst.PropNotAcceptor)
}

func TestComputePropertiesCycleAndTransducer(t *testing.T) {
	require := require.New(t)
	f := fst.NewVectorFst[semiring.Tropical]()
	f.AddStates(2)
	f.SetStart(0)
	f.AddArc(0, fst.NewArc(1, 2, semiring.Tropical(0.5), 1))
	f.AddArc(1, fst.NewArc(fst.Epsilon, fst.Epsilon, semiring.TropicalOne, 0))
	f.SetFinal(1, semiring.TropicalOne)

	got := f.Properties(fst.PropAll, true)
	require.NotZero(got & fst.PropNotAcceptor)
	require.NotZero(got & fst.PropEpsilons)
	require.NotZero(got & fst.PropIEpsilons)
	require.NotZero(got & fst.PropOEpsilons)
	require.NotZero(got & fst.PropWeighted)
	require.NotZero(got & fst.PropCyclic)
	require.NotZero(got&fst.PropInitialCyclic, "the cycle runs through the start state")
	require.NotZero(got & fst.PropNotTopSorted)
}

func TestComputePropertiesInitialCycleLateStart(t *testing.T) {
	require := require.New(t)
	f := fst.NewVectorFst[semiring.Tropical]()
	f.AddStates(2)
	f.SetStart(1)
	f.AddArc(0, fst.NewArc(1, 1, semiring.TropicalOne, 1))
	f.AddArc(1, fst.NewArc(2, 2, semiring.TropicalOne, 0))
	f.SetFinal(0, semiring.TropicalOne)

	got := f.Properties(fst.PropInitialAcyclic|fst.PropInitialCyclic, true)
	require.NotZero(got&fst.PropInitialCyclic, "the cycle 1->0->1 passes through the start state")
	require.Zero(got&fst.PropInitialAcyclic, "a start state on a cycle cannot also be initial-acyclic")
}

func TestPropertiesNullTransducer(t *testing.T) {
	require := require.New(t)
	f := fst.NewVectorFst[semiring.Tropical]()
	got := f.Properties(fst.PropAll, true)
	require.Equal(fst.PropNull, got&fst.PropTrinary, "the empty transducer holds every vacuous fact")
	require.NotZero(got & fst.PropExpanded)
	require.NotZero(got & fst.PropMutable)
}

func TestKnownProperties(t *testing.T) {
	require := require.New(t)
	known := fst.KnownProperties(fst.PropAcceptor | fst.PropCyclic)
	require.NotZero(known&fst.PropNotAcceptor, "one recorded bit makes the whole pair known")
	require.NotZero(known & fst.PropAcyclic)
	require.Zero(known&fst.PropWeighted, "an unset pair stays unknown")
	require.NotZero(known&fst.PropMutable, "binary bits are always known")
}

func TestMutationInvalidatesStaleFacts(t *testing.T) {
	require := require.New(t)
	f := fst.NewVectorFst[semiring.Tropical]()
	f.AddStates(2)
	f.SetStart(0)
	f.AddArc(0, fst.NewArc(1, 1, semiring.TropicalOne, 1))
	f.SetFinal(1, semiring.TropicalOne)
	require.NotZero(f.Properties(fst.PropAcyclic, true))

	// Closing a cycle must not leave the acyclicity fact behind.
	f.AddArc(1, fst.NewArc(2, 2, semiring.TropicalOne, 0))
	require.Zero(f.Properties(fst.PropAcyclic, false), "the stale positive bit must be dropped by the transfer function")
	require.NotZero(f.Properties(fst.PropCyclic, true), "a recompute settles the pair")
}
