package fst_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlfst/fst"
	"github.com/katalvlaran/lvlfst/semiring"
	"github.com/katalvlaran/lvlfst/symtab"
)

// requireSameFst compares two expanded transducers structurally: start,
// state count, per-state finals and arc sequences, both symbol tables.
func requireSameFst(t *testing.T, want, got fst.Expanded[semiring.Tropical]) {
	t.Helper()
	require := require.New(t)
	require.Equal(want.Start(), got.Start())
	require.Equal(want.NumStates(), got.NumStates())
	for s := fst.StateID(0); s < fst.StateID(want.NumStates()); s++ {
		require.True(want.Final(s).ApproxEqual(got.Final(s), 1e-12), "final weight of state %d", s)
		require.Equal(collectArcs(want, s), collectArcs(got, s), "arcs of state %d", s)
	}
	require.True(want.InputSymbols().Equal(got.InputSymbols()))
	require.True(want.OutputSymbols().Equal(got.OutputSymbols()))
}

func TestWriteReadRoundTrip(t *testing.T) {
	require := require.New(t)
	f := twoStateAcceptor()
	isyms, osyms := symtab.New("in"), symtab.New("out")
	_, err := isyms.AddSymbol("a")
	require.NoError(err)
	_, err = osyms.AddSymbol("b")
	require.NoError(err)
	f.SetInputSymbols(isyms)
	f.SetOutputSymbols(osyms)

	var buf bytes.Buffer
	require.NoError(fst.Write[semiring.Tropical](&buf, f))

	got, err := fst.Read(bytes.NewReader(buf.Bytes()), fst.StandardRegistry[semiring.Tropical](), fst.WithSource("roundtrip"))
	require.NoError(err)
	vec, ok := got.(*fst.VectorFst[semiring.Tropical])
	require.True(ok, "the vector tag must resolve to a VectorFst")
	requireSameFst(t, f, vec)
}

func TestWriteReadWithoutTables(t *testing.T) {
	require := require.New(t)
	f := twoStateAcceptor()

	var buf bytes.Buffer
	require.NoError(fst.Write[semiring.Tropical](&buf, f))

	got, err := fst.ReadMutable(bytes.NewReader(buf.Bytes()), fst.StandardRegistry[semiring.Tropical]())
	require.NoError(err)
	require.Nil(got.InputSymbols())
	require.Nil(got.OutputSymbols())
	require.Equal(2, got.NumStates())

	// The result of the mutable entry point really mutates.
	got.AddState()
	require.Equal(3, got.NumStates())
}

func TestReadUnknownType(t *testing.T) {
	require := require.New(t)
	var buf bytes.Buffer
	require.NoError(fst.Write[semiring.Tropical](&buf, twoStateAcceptor()))

	_, err := fst.Read(bytes.NewReader(buf.Bytes()), fst.NewRegistry[semiring.Tropical]())
	require.ErrorIs(err, fst.ErrUnknownFstType, "an unregistered tag must fail the read, not fall back")
}

func TestReadArcTypeMismatch(t *testing.T) {
	require := require.New(t)
	var buf bytes.Buffer
	require.NoError(fst.Write[semiring.Tropical](&buf, twoStateAcceptor()))

	_, err := fst.Read(bytes.NewReader(buf.Bytes()), fst.StandardRegistry[semiring.Log]())
	require.ErrorIs(err, fst.ErrArcTypeMismatch)
}

func TestReadBadMagic(t *testing.T) {
	require := require.New(t)
	_, err := fst.Read(bytes.NewReader([]byte("not a transducer")), fst.StandardRegistry[semiring.Tropical]())
	require.ErrorIs(err, fst.ErrBadMagic)
}

func TestReadTruncated(t *testing.T) {
	require := require.New(t)
	var buf bytes.Buffer
	require.NoError(fst.Write[semiring.Tropical](&buf, twoStateAcceptor()))

	_, err := fst.Read(bytes.NewReader(buf.Bytes()[:buf.Len()-4]), fst.StandardRegistry[semiring.Tropical]())
	require.Error(err, "a truncated body must fail the read")
}

// frozenFst masks the mutability capability of an otherwise ordinary
// vector transducer, standing in for a non-mutable representation.
type frozenFst struct {
	*fst.VectorFst[semiring.Tropical]
}

func (f frozenFst) Properties(mask uint64, compute bool) uint64 {
	return f.VectorFst.Properties(mask, compute) &^ fst.PropMutable
}

func TestReadMutableRejectsNonMutable(t *testing.T) {
	require := require.New(t)
	var buf bytes.Buffer
	require.NoError(fst.Write[semiring.Tropical](&buf, frozenFst{twoStateAcceptor()}))

	_, err := fst.ReadMutable(bytes.NewReader(buf.Bytes()), fst.StandardRegistry[semiring.Tropical]())
	require.ErrorIs(err, fst.ErrNotMutable, "a non-mutable header must fail the mutable entry point")

	// The plain entry point still accepts it; mutability is then an
	// explicit Convert away.
	got, err := fst.Read(bytes.NewReader(buf.Bytes()), fst.StandardRegistry[semiring.Tropical]())
	require.NoError(err)
	require.Equal(2, got.(fst.Expanded[semiring.Tropical]).NumStates())
}

func TestRegistryDuplicate(t *testing.T) {
	require := require.New(t)
	reg := fst.StandardRegistry[semiring.Tropical]()
	err := reg.Register(fst.VectorFstType, nil)
	require.ErrorIs(err, fst.ErrDuplicateFstType, "silent replacement would make reads registration-order dependent")
	require.Equal([]string{fst.VectorFstType}, reg.Types())

	_, ok := reg.Reader(fst.VectorFstType)
	require.True(ok)
	_, ok = reg.Reader("const")
	require.False(ok)
}
