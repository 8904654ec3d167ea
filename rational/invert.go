// Package rational: inversion, destructive and delayed.

package rational

import (
	"github.com/katalvlaran/lvlfst/fst"
	"github.com/katalvlaran/lvlfst/semiring"
	"github.com/katalvlaran/lvlfst/symtab"
)

// Invert destructively swaps every arc's input and output labels and
// swaps the two symbol tables, leaving weights and topology untouched.
// Invert is an involution: applying it twice restores f exactly.
// Complexity: O(V + E) time, O(1) extra space.
func Invert[W semiring.Weight[W]](f fst.Mutable[W]) error {
	if f == nil {
		return fst.ErrNilFst
	}
	props := f.Properties(fst.PropAll, false)
	for sit := f.States(); !sit.Done(); sit.Next() {
		for ait := f.MutableArcs(sit.Value()); !ait.Done(); ait.Next() {
			arc := ait.Value()
			arc.ILabel, arc.OLabel = arc.OLabel, arc.ILabel
			ait.SetValue(arc)
		}
	}
	isyms, osyms := f.InputSymbols(), f.OutputSymbols()
	f.SetInputSymbols(osyms)
	f.SetOutputSymbols(isyms)
	f.SetProperties(InvertProperties(props), fst.PropAll)

	return nil
}

// InvertProperties is the property transfer function for Invert: the
// input- and output-epsilon pairs trade places, input determinism stops
// being tracked (it becomes a fact about output labels), and every
// label-symmetric fact survives.
func InvertProperties(props uint64) uint64 {
	out := props &^ (fst.PropIEpsilons | fst.PropNoIEpsilons |
		fst.PropOEpsilons | fst.PropNoOEpsilons |
		fst.PropIDeterministic | fst.PropNonIDeterministic)
	if props&fst.PropIEpsilons != 0 {
		out |= fst.PropOEpsilons
	}
	if props&fst.PropNoIEpsilons != 0 {
		out |= fst.PropNoOEpsilons
	}
	if props&fst.PropOEpsilons != 0 {
		out |= fst.PropIEpsilons
	}
	if props&fst.PropNoOEpsilons != 0 {
		out |= fst.PropNoIEpsilons
	}

	return out
}

// InvertFst is the delayed form of Invert: every visited arc is served
// with its labels swapped and the symbol tables trade places; the
// source is never touched. Arc lines are cached per state on first
// visit.
//
// One InvertFst must not be visited from multiple goroutines; hand each
// goroutine a Copy(true).
type InvertFst[W semiring.Weight[W]] struct {
	src   fst.Expanded[W]
	cache map[fst.StateID][]fst.Arc[W]
	props uint64
}

// NewInvertFst wraps src in its delayed inversion.
func NewInvertFst[W semiring.Weight[W]](src fst.Expanded[W]) (*InvertFst[W], error) {
	if src == nil {
		return nil, fst.ErrNilFst
	}
	props := InvertProperties(src.Properties(fst.PropCopy, false))

	return &InvertFst[W]{
		src:   src,
		cache: make(map[fst.StateID][]fst.Arc[W]),
		props: props&^fst.PropMutable | fst.PropExpanded,
	}, nil
}

// Start delegates to the source.
func (f *InvertFst[W]) Start() fst.StateID { return f.src.Start() }

// Final delegates to the source; inversion never changes weights.
func (f *InvertFst[W]) Final(s fst.StateID) W { return f.src.Final(s) }

// NumStates delegates to the source.
func (f *InvertFst[W]) NumStates() int { return f.src.NumStates() }

// NumArcs delegates to the source; the count is label-independent.
func (f *InvertFst[W]) NumArcs(s fst.StateID) int { return f.src.NumArcs(s) }

// NumInputEpsilons reports the source's output-epsilon count.
func (f *InvertFst[W]) NumInputEpsilons(s fst.StateID) int { return f.src.NumOutputEpsilons(s) }

// NumOutputEpsilons reports the source's input-epsilon count.
func (f *InvertFst[W]) NumOutputEpsilons(s fst.StateID) int { return f.src.NumInputEpsilons(s) }

// Properties returns the bits known via the transfer function; compute
// scans the whole (fully expanded) inversion.
func (f *InvertFst[W]) Properties(mask uint64, compute bool) uint64 {
	if compute && fst.KnownProperties(f.props)&mask != mask {
		f.props = f.props&fst.PropBinary | fst.ComputeProperties[W](f)
	}

	return f.props & mask
}

// Type tags the representation.
func (f *InvertFst[W]) Type() string { return "invert" }

// InputSymbols returns the source's output table: after inversion the
// input side reads in the source's output alphabet.
func (f *InvertFst[W]) InputSymbols() *symtab.Table { return f.src.OutputSymbols() }

// OutputSymbols returns the source's input table.
func (f *InvertFst[W]) OutputSymbols() *symtab.Table { return f.src.InputSymbols() }

// Copy returns a view of the same inversion. A safe copy takes a safe
// copy of the source and its own cache; an unsafe copy shares this
// instance.
func (f *InvertFst[W]) Copy(safe bool) fst.Fst[W] {
	if !safe {
		return f
	}
	src, ok := f.src.Copy(true).(fst.Expanded[W])
	if !ok {
		return f
	}
	cache := make(map[fst.StateID][]fst.Arc[W], len(f.cache))
	for s, arcs := range f.cache {
		line := make([]fst.Arc[W], len(arcs))
		copy(line, arcs)
		cache[s] = line
	}

	return &InvertFst[W]{src: src, cache: cache, props: f.props}
}

// States delegates to the source's dense numbering.
func (f *InvertFst[W]) States() fst.StateIterator {
	return fst.DenseStateIterator(f.src.NumStates())
}

// Arcs expands s on first visit and serves the cached line.
func (f *InvertFst[W]) Arcs(s fst.StateID) fst.ArcIterator[W] {
	return fst.SliceArcIterator(f.expand(s))
}

// expand computes s's swapped arc line once.
func (f *InvertFst[W]) expand(s fst.StateID) []fst.Arc[W] {
	if arcs, ok := f.cache[s]; ok {
		return arcs
	}
	arcs := make([]fst.Arc[W], 0, f.src.NumArcs(s))
	for it := f.src.Arcs(s); !it.Done(); it.Next() {
		arc := it.Value()
		arc.ILabel, arc.OLabel = arc.OLabel, arc.ILabel
		arcs = append(arcs, arc)
	}
	f.cache[s] = arcs

	return arcs
}
