package fst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlfst/fst"
	"github.com/katalvlaran/lvlfst/semiring"
	"github.com/katalvlaran/lvlfst/symtab"
)

func TestConvertRebuilds(t *testing.T) {
	require := require.New(t)
	src := twoStateAcceptor()
	src.SetInputSymbols(symtab.New("in"))

	got, err := fst.Convert[semiring.Tropical](src)
	require.NoError(err)
	requireSameFst(t, src, got)

	// The rebuild owns its storage: mutating it leaves the source alone.
	got.AddState()
	require.Equal(2, src.NumStates())
	require.NotSame(src.InputSymbols(), got.InputSymbols())
}

func TestConvertNil(t *testing.T) {
	_, err := fst.Convert[semiring.Tropical](nil)
	require.ErrorIs(t, err, fst.ErrNilFst)
}
