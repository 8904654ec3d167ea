// Package fst: the read-only → expanded → mutable interface hierarchy
// and the iterator protocols.

package fst

import (
	"github.com/katalvlaran/lvlfst/semiring"
	"github.com/katalvlaran/lvlfst/symtab"
)

// Fst is the read-only transducer contract. Querying Final or arcs on a
// StateID outside the live set is undefined unless the representation
// documents bounds checking (VectorFst panics, matching slice indexing).
type Fst[W semiring.Weight[W]] interface {
	// Start returns the initial state, or NoStateID when unset.
	Start() StateID

	// Final returns the state's final weight; Zero means non-final.
	Final(s StateID) W

	// NumArcs returns the number of arcs leaving s.
	NumArcs(s StateID) int

	// NumInputEpsilons returns the number of arcs leaving s whose input
	// label is Epsilon.
	NumInputEpsilons(s StateID) int

	// NumOutputEpsilons returns the number of arcs leaving s whose output
	// label is Epsilon.
	NumOutputEpsilons(s StateID) int

	// Properties returns the property bits requested by mask. Bits are
	// only trustworthy when known; with compute set, unknown requested
	// facts are computed (and cached) first.
	Properties(mask uint64, compute bool) uint64

	// Type returns the representation type tag used by the registry
	// (e.g. "vector").
	Type() string

	// InputSymbols returns the input symbol table, or nil.
	InputSymbols() *symtab.Table

	// OutputSymbols returns the output symbol table, or nil.
	OutputSymbols() *symtab.Table

	// Copy returns a new handle. With safe=false the implementation may
	// be shared copy-on-write; with safe=true the copy is independent
	// immediately and may be used from another goroutine.
	Copy(safe bool) Fst[W]

	// States iterates every live StateID exactly once, ascending.
	States() StateIterator

	// Arcs iterates the arcs leaving s in insertion order.
	Arcs(s StateID) ArcIterator[W]
}

// Expanded is an Fst whose states are fully instantiated: NumStates is
// known and every StateID in [0, NumStates()) may be queried.
type Expanded[W semiring.Weight[W]] interface {
	Fst[W]

	// NumStates returns the number of live states.
	NumStates() int
}

// Mutable is an Expanded transducer supporting construction and
// in-place mutation. All mutators participate in the copy-on-write
// discipline: on a shared implementation the first mutation forks a
// private copy.
type Mutable[W semiring.Weight[W]] interface {
	Expanded[W]

	// SetStart sets the initial state.
	SetStart(s StateID)

	// SetFinal sets s's final weight; pass Zero to make s non-final.
	SetFinal(s StateID, weight W)

	// SetProperties overwrites the property bits selected by mask.
	SetProperties(props, mask uint64)

	// AddState appends a fresh state and returns its ID.
	AddState() StateID

	// AddStates appends n fresh states.
	AddStates(n int)

	// AddArc appends an arc to s's arc list.
	AddArc(s StateID, arc Arc[W])

	// DeleteStates removes the listed states, renumbering survivors while
	// preserving their relative order. Arcs into deleted states are the
	// caller's responsibility (see Verify).
	DeleteStates(states []StateID)

	// DeleteAllStates wipes every state and arc, keeping symbol tables.
	DeleteAllStates()

	// DeleteArcs removes the last n arcs at s.
	DeleteArcs(s StateID, n int)

	// DeleteAllArcs removes every arc at s.
	DeleteAllArcs(s StateID)

	// ReserveStates pre-allocates capacity; best effort.
	ReserveStates(n int)

	// ReserveArcs pre-allocates arc capacity at s; best effort.
	ReserveArcs(s StateID, n int)

	// SetInputSymbols replaces the input table wholesale; nil clears it.
	SetInputSymbols(t *symtab.Table)

	// SetOutputSymbols replaces the output table wholesale; nil clears it.
	SetOutputSymbols(t *symtab.Table)

	// MutableArcs iterates s's arcs with in-place overwrite support.
	MutableArcs(s StateID) MutableArcIterator[W]
}

// StateIterator visits every live StateID exactly once in ascending
// order. It is restartable via Reset, not resumable mid-stream.
type StateIterator interface {
	Done() bool
	Value() StateID
	Next()
	Reset()
}

// Arc iterator flag bits. A consumer clears a value bit to promise it
// will not read that field, letting decoding representations skip work;
// ArcNoCache asks a delayed representation not to retain this state's
// arcs. VectorFst stores arcs verbatim and only records the flags.
const (
	ArcILabelValue uint8 = 1 << iota
	ArcOLabelValue
	ArcWeightValue
	ArcNextStateValue
	ArcNoCache

	// ArcValueFlags requests every arc field.
	ArcValueFlags = ArcILabelValue | ArcOLabelValue | ArcWeightValue | ArcNextStateValue
)

// ArcIterator visits one state's arcs in order, with random access.
type ArcIterator[W semiring.Weight[W]] interface {
	Done() bool
	Value() Arc[W]
	Next()
	Reset()

	// Position returns the current zero-based arc index.
	Position() int

	// Seek repositions to the given arc index.
	Seek(pos int)

	// Flags returns the current value/cache flag bits.
	Flags() uint8

	// SetFlags overwrites the flag bits selected by mask.
	SetFlags(flags, mask uint8)
}

// MutableArcIterator additionally overwrites the currently visited arc
// without changing iteration order or invalidating positions. On a
// shared implementation, constructing one forks the cell exactly like
// any other mutation.
type MutableArcIterator[W semiring.Weight[W]] interface {
	ArcIterator[W]

	// SetValue replaces the arc at the current position.
	SetValue(arc Arc[W])
}
