// Package fst: reusable iterator implementations.

package fst

import "github.com/katalvlaran/lvlfst/semiring"

// rangeStateIterator walks dense StateIDs 0..n-1.
type rangeStateIterator struct {
	n int
	s StateID
}

// DenseStateIterator returns a StateIterator over the dense range
// [0, n). Every representation in this library numbers its states
// densely, so this is the state iterator they all share.
func DenseStateIterator(n int) StateIterator {
	return &rangeStateIterator{n: n}
}

func (it *rangeStateIterator) Done() bool     { return it.s >= StateID(it.n) }
func (it *rangeStateIterator) Value() StateID { return it.s }
func (it *rangeStateIterator) Next()          { it.s++ }
func (it *rangeStateIterator) Reset()         { it.s = 0 }

// sliceArcIterator walks an arc slice snapshot.
type sliceArcIterator[W semiring.Weight[W]] struct {
	arcs  []Arc[W]
	pos   int
	flags uint8
}

// SliceArcIterator returns a read iterator over arcs. The slice is not
// copied; callers hand in either an immutable snapshot or a cache line
// they own.
func SliceArcIterator[W semiring.Weight[W]](arcs []Arc[W]) ArcIterator[W] {
	return &sliceArcIterator[W]{arcs: arcs, flags: ArcValueFlags}
}

func (it *sliceArcIterator[W]) Done() bool    { return it.pos >= len(it.arcs) }
func (it *sliceArcIterator[W]) Value() Arc[W] { return it.arcs[it.pos] }
func (it *sliceArcIterator[W]) Next()         { it.pos++ }
func (it *sliceArcIterator[W]) Reset()        { it.pos = 0 }
func (it *sliceArcIterator[W]) Position() int { return it.pos }
func (it *sliceArcIterator[W]) Seek(pos int)  { it.pos = pos }
func (it *sliceArcIterator[W]) Flags() uint8  { return it.flags }
func (it *sliceArcIterator[W]) SetFlags(flags, mask uint8) {
	it.flags = it.flags&^mask | flags&mask
}
