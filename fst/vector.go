// Package fst: VectorFst, the dense mutable representation, and its
// copy-on-write implementation cell.
//
// A VectorFst value is a handle onto a shared cell holding the actual
// state storage. Copy(false) hands out another handle onto the same
// cell; the first mutation through any handle whose cell is shared forks
// a private deep copy first (the mutate-check), so no handle ever
// observes another's mutation. Copy(true) forks eagerly, which is the
// form required before handing a value to another goroutine — the fork
// itself is not atomic across threads.

package fst

import (
	"sync/atomic"

	"github.com/katalvlaran/lvlfst/semiring"
	"github.com/katalvlaran/lvlfst/symtab"
)

// VectorFstType is the registry type tag of VectorFst.
const VectorFstType = "vector"

// vectorState holds one state: final weight, ordered outgoing arcs, and
// cached epsilon counts.
type vectorState[W semiring.Weight[W]] struct {
	final W
	arcs  []Arc[W]
	// Cached counts of arcs with epsilon input / output labels.
	niEps int
	noEps int
}

// vectorData is the concrete representation held by a cell.
type vectorData[W semiring.Weight[W]] struct {
	states []*vectorState[W]
	start  StateID
	props  uint64
	isyms  *symtab.Table
	osyms  *symtab.Table
}

// newVectorData returns an empty representation with the vacuous
// properties of the null transducer.
func newVectorData[W semiring.Weight[W]]() *vectorData[W] {
	return &vectorData[W]{start: NoStateID, props: PropExpanded | PropMutable | PropNull}
}

// clone deep-copies states and arcs. Symbol tables are shared on a
// copy-on-write fork (they are only ever replaced wholesale, never
// edited in place) and deep-copied for a safe copy.
func (d *vectorData[W]) clone(copyTables bool) *vectorData[W] {
	nd := &vectorData[W]{
		states: make([]*vectorState[W], len(d.states)),
		start:  d.start,
		props:  d.props,
		isyms:  d.isyms,
		osyms:  d.osyms,
	}
	for i, st := range d.states {
		ns := &vectorState[W]{final: st.final, niEps: st.niEps, noEps: st.noEps}
		ns.arcs = append([]Arc[W](nil), st.arcs...)
		nd.states[i] = ns
	}
	if copyTables {
		nd.isyms = d.isyms.Copy()
		nd.osyms = d.osyms.Copy()
	}

	return nd
}

// cell is the reference-counted holder of one representation instance.
// refs counts the live handles created through Copy(false); a cell with
// refs == 1 is uniquely referenced and may be mutated in place.
type cell[W semiring.Weight[W]] struct {
	data *vectorData[W]
	refs atomic.Int32
}

func newCell[W semiring.Weight[W]](d *vectorData[W]) *cell[W] {
	c := &cell[W]{data: d}
	c.refs.Store(1)

	return c
}

// VectorFst stores states densely by StateID with per-state arc slices.
// The zero value is not usable; construct with NewVectorFst.
//
// Concurrency contract: a uniquely referenced VectorFst may be mutated
// from one goroutine with no synchronization; handles sharing a cell
// must not be mutated concurrently; a safe copy is independent and may
// cross goroutines freely.
type VectorFst[W semiring.Weight[W]] struct {
	cell *cell[W]
}

// NewVectorFst creates an empty transducer: no states, no start state.
func NewVectorFst[W semiring.Weight[W]]() *VectorFst[W] {
	return &VectorFst[W]{cell: newCell(newVectorData[W]())}
}

// mutateCheck forks a private copy of the representation when the cell
// is shared. Every mutator calls it first.
func (f *VectorFst[W]) mutateCheck() {
	if f.cell.refs.Load() > 1 {
		fresh := newCell(f.cell.data.clone(false))
		f.cell.refs.Add(-1)
		f.cell = fresh
	}
}

// shared reports whether the implementation cell has other live handles.
// Exposed to tests through export_test.go.
func (f *VectorFst[W]) shared() bool { return f.cell.refs.Load() > 1 }

// Start returns the initial state, or NoStateID when unset.
func (f *VectorFst[W]) Start() StateID { return f.cell.data.start }

// Final returns s's final weight (Zero means non-final). Panics when s
// is outside the live state set, matching slice indexing.
func (f *VectorFst[W]) Final(s StateID) W { return f.cell.data.states[s].final }

// NumStates returns the number of live states.
func (f *VectorFst[W]) NumStates() int { return len(f.cell.data.states) }

// NumArcs returns the number of arcs leaving s.
func (f *VectorFst[W]) NumArcs(s StateID) int { return len(f.cell.data.states[s].arcs) }

// NumInputEpsilons returns the count of arcs at s with epsilon input.
func (f *VectorFst[W]) NumInputEpsilons(s StateID) int { return f.cell.data.states[s].niEps }

// NumOutputEpsilons returns the count of arcs at s with epsilon output.
func (f *VectorFst[W]) NumOutputEpsilons(s StateID) int { return f.cell.data.states[s].noEps }

// Type returns the registry type tag ("vector").
func (f *VectorFst[W]) Type() string { return VectorFstType }

// InputSymbols returns the input symbol table, or nil. Treat the table
// as read-only; replace it via SetInputSymbols.
func (f *VectorFst[W]) InputSymbols() *symtab.Table { return f.cell.data.isyms }

// OutputSymbols returns the output symbol table, or nil.
func (f *VectorFst[W]) OutputSymbols() *symtab.Table { return f.cell.data.osyms }

// Properties returns the bits selected by mask. With compute set, any
// requested structural fact still unknown is computed by one O(V+E)
// scan and cached; caching a freshly computed, structurally true fact
// is safe to apply to every handle sharing the cell.
func (f *VectorFst[W]) Properties(mask uint64, compute bool) uint64 {
	d := f.cell.data
	if compute && mask&PropTrinary&^KnownProperties(d.props) != 0 {
		d.props = d.props&PropBinary | ComputeProperties[W](f)
	}

	return d.props & mask
}

// Copy returns a new handle. safe=false shares the cell copy-on-write;
// safe=true forks now (including symbol tables) so the result is
// independent immediately.
func (f *VectorFst[W]) Copy(safe bool) Fst[W] {
	if safe {
		return &VectorFst[W]{cell: newCell(f.cell.data.clone(true))}
	}
	f.cell.refs.Add(1)

	return &VectorFst[W]{cell: f.cell}
}

// SetStart sets the initial state.
func (f *VectorFst[W]) SetStart(s StateID) {
	f.mutateCheck()
	d := f.cell.data
	d.start = s
	d.props = setStartProperties(d.props)
}

// SetFinal sets s's final weight; pass Zero to make s non-final.
func (f *VectorFst[W]) SetFinal(s StateID, weight W) {
	f.mutateCheck()
	d := f.cell.data
	d.states[s].final = weight
	d.props = setFinalProperties(d.props)
}

// SetProperties overwrites the bits selected by mask. The mutate-check
// is skipped when the extrinsic bits under the mask do not change:
// updating intrinsic metadata that is already structurally true is safe
// to apply to every aliasing handle, while an extrinsic change forks
// like any other mutation. The capability bits are not settable.
func (f *VectorFst[W]) SetProperties(props, mask uint64) {
	mask &^= PropExpanded | PropMutable
	exprops := PropExtrinsic & mask
	if f.cell.data.props&exprops != props&exprops {
		f.mutateCheck()
	}
	d := f.cell.data
	d.props = d.props&^mask | props&mask
}

// AddState appends a fresh, non-final, arcless state and returns its ID.
func (f *VectorFst[W]) AddState() StateID {
	f.mutateCheck()
	d := f.cell.data
	var zero W
	d.states = append(d.states, &vectorState[W]{final: zero.Zero()})
	d.props = addStateProperties(d.props)

	return StateID(len(d.states) - 1)
}

// AddStates appends n fresh states.
func (f *VectorFst[W]) AddStates(n int) {
	f.mutateCheck()
	d := f.cell.data
	var zero W
	for i := 0; i < n; i++ {
		d.states = append(d.states, &vectorState[W]{final: zero.Zero()})
	}
	if n > 0 {
		d.props = addStateProperties(d.props)
	}
}

// AddArc appends arc to s's arc list, preserving insertion order.
func (f *VectorFst[W]) AddArc(s StateID, arc Arc[W]) {
	f.mutateCheck()
	d := f.cell.data
	st := d.states[s]
	st.arcs = append(st.arcs, arc)
	if arc.ILabel == Epsilon {
		st.niEps++
	}
	if arc.OLabel == Epsilon {
		st.noEps++
	}
	d.props = addArcProperties(d.props, s, arc)
}

// DeleteStates removes the listed states. Survivors keep their relative
// order and are renumbered densely; arcs into deleted states are
// dropped; a deleted start state becomes NoStateID.
// Complexity: O(V + E).
func (f *VectorFst[W]) DeleteStates(states []StateID) {
	if len(states) == 0 {
		return
	}
	f.mutateCheck()
	d := f.cell.data
	n := len(d.states)
	newID := make([]StateID, n)
	for _, s := range states {
		newID[s] = NoStateID
	}
	kept := d.states[:0]
	next := StateID(0)
	for i, st := range d.states {
		if newID[i] == NoStateID {
			continue
		}
		newID[i] = next
		next++
		kept = append(kept, st)
	}
	d.states = kept
	for _, st := range d.states {
		arcs := st.arcs[:0]
		st.niEps, st.noEps = 0, 0
		for _, a := range st.arcs {
			if a.NextState < 0 || a.NextState >= StateID(n) || newID[a.NextState] == NoStateID {
				continue
			}
			a.NextState = newID[a.NextState]
			arcs = append(arcs, a)
			if a.ILabel == Epsilon {
				st.niEps++
			}
			if a.OLabel == Epsilon {
				st.noEps++
			}
		}
		st.arcs = arcs
	}
	if d.start != NoStateID {
		if newID[d.start] == NoStateID {
			d.start = NoStateID
		} else {
			d.start = newID[d.start]
		}
	}
	d.props = deleteStatesProperties(d.props)
}

// DeleteAllStates wipes every state and arc. On a shared cell it swaps
// in a fresh empty representation still carrying the previous symbol
// tables, avoiding the full clone the mutate-check would perform.
func (f *VectorFst[W]) DeleteAllStates() {
	if f.cell.refs.Load() > 1 {
		d := newVectorData[W]()
		d.isyms = f.cell.data.isyms
		d.osyms = f.cell.data.osyms
		f.cell.refs.Add(-1)
		f.cell = newCell(d)
		return
	}
	d := f.cell.data
	d.states = nil
	d.start = NoStateID
	d.props = PropExpanded | PropMutable | PropNull
}

// DeleteArcs removes the last n arcs at s.
func (f *VectorFst[W]) DeleteArcs(s StateID, n int) {
	f.mutateCheck()
	d := f.cell.data
	st := d.states[s]
	if n > len(st.arcs) {
		n = len(st.arcs)
	}
	for _, a := range st.arcs[len(st.arcs)-n:] {
		if a.ILabel == Epsilon {
			st.niEps--
		}
		if a.OLabel == Epsilon {
			st.noEps--
		}
	}
	st.arcs = st.arcs[:len(st.arcs)-n]
	d.props = deleteArcsProperties(d.props)
}

// DeleteAllArcs removes every arc at s.
func (f *VectorFst[W]) DeleteAllArcs(s StateID) {
	f.mutateCheck()
	d := f.cell.data
	st := d.states[s]
	st.arcs = nil
	st.niEps, st.noEps = 0, 0
	d.props = deleteArcsProperties(d.props)
}

// ReserveStates pre-allocates state capacity; best effort.
func (f *VectorFst[W]) ReserveStates(n int) {
	f.mutateCheck()
	d := f.cell.data
	if cap(d.states) < len(d.states)+n {
		grown := make([]*vectorState[W], len(d.states), len(d.states)+n)
		copy(grown, d.states)
		d.states = grown
	}
}

// ReserveArcs pre-allocates arc capacity at s; best effort.
func (f *VectorFst[W]) ReserveArcs(s StateID, n int) {
	f.mutateCheck()
	st := f.cell.data.states[s]
	if cap(st.arcs) < len(st.arcs)+n {
		grown := make([]Arc[W], len(st.arcs), len(st.arcs)+n)
		copy(grown, st.arcs)
		st.arcs = grown
	}
}

// SetInputSymbols replaces the input table wholesale; nil clears it.
func (f *VectorFst[W]) SetInputSymbols(t *symtab.Table) {
	f.mutateCheck()
	f.cell.data.isyms = t
}

// SetOutputSymbols replaces the output table wholesale; nil clears it.
func (f *VectorFst[W]) SetOutputSymbols(t *symtab.Table) {
	f.mutateCheck()
	f.cell.data.osyms = t
}

// States returns an ascending iterator over [0, NumStates()).
func (f *VectorFst[W]) States() StateIterator {
	return DenseStateIterator(len(f.cell.data.states))
}

// Arcs returns a read iterator over s's arcs.
func (f *VectorFst[W]) Arcs(s StateID) ArcIterator[W] {
	return SliceArcIterator(f.cell.data.states[s].arcs)
}

// MutableArcs returns an iterator that can overwrite s's arcs in place.
// Construction runs the mutate-check once, so a shared cell forks here
// rather than on every SetValue.
func (f *VectorFst[W]) MutableArcs(s StateID) MutableArcIterator[W] {
	f.mutateCheck()
	return &vectorMutableArcIterator[W]{d: f.cell.data, s: s, flags: ArcValueFlags}
}

// vectorMutableArcIterator overwrites arcs in place. It addresses the
// state through the (already forked) representation so SetValue updates
// cached epsilon counts and the property mask alongside the arc.
type vectorMutableArcIterator[W semiring.Weight[W]] struct {
	d     *vectorData[W]
	s     StateID
	pos   int
	flags uint8
}

func (it *vectorMutableArcIterator[W]) state() *vectorState[W] { return it.d.states[it.s] }

func (it *vectorMutableArcIterator[W]) Done() bool    { return it.pos >= len(it.state().arcs) }
func (it *vectorMutableArcIterator[W]) Value() Arc[W] { return it.state().arcs[it.pos] }
func (it *vectorMutableArcIterator[W]) Next()         { it.pos++ }
func (it *vectorMutableArcIterator[W]) Reset()        { it.pos = 0 }
func (it *vectorMutableArcIterator[W]) Position() int { return it.pos }
func (it *vectorMutableArcIterator[W]) Seek(pos int)  { it.pos = pos }
func (it *vectorMutableArcIterator[W]) Flags() uint8  { return it.flags }
func (it *vectorMutableArcIterator[W]) SetFlags(flags, mask uint8) {
	it.flags = it.flags&^mask | flags&mask
}

// SetValue replaces the arc at the current position without changing
// iteration order or other positions.
func (it *vectorMutableArcIterator[W]) SetValue(arc Arc[W]) {
	st := it.state()
	old := st.arcs[it.pos]
	if old.ILabel == Epsilon {
		st.niEps--
	}
	if old.OLabel == Epsilon {
		st.noEps--
	}
	st.arcs[it.pos] = arc
	if arc.ILabel == Epsilon {
		st.niEps++
	}
	if arc.OLabel == Epsilon {
		st.noEps++
	}
	it.d.props = addArcProperties(deleteArcsProperties(it.d.props), it.s, arc)
}
