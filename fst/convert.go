// Package fst: rebuilding an arbitrary transducer into a VectorFst.

package fst

import "github.com/katalvlaran/lvlfst/semiring"

// Convert rebuilds src into a fresh mutable VectorFst: same start
// state, per-state final weights and arcs (in iteration order), and
// copies of both symbol tables. This is the explicit escape hatch for
// callers that need mutability from a non-mutable or delayed source.
// Complexity: O(V + E).
func Convert[W semiring.Weight[W]](src Fst[W]) (*VectorFst[W], error) {
	if src == nil {
		return nil, ErrNilFst
	}
	out := NewVectorFst[W]()
	// First pass: materialize every state so arc destinations resolve
	// regardless of visit order.
	maxState := NoStateID
	for it := src.States(); !it.Done(); it.Next() {
		if it.Value() > maxState {
			maxState = it.Value()
		}
	}
	out.AddStates(int(maxState) + 1)
	for it := src.States(); !it.Done(); it.Next() {
		s := it.Value()
		out.SetFinal(s, src.Final(s))
		out.ReserveArcs(s, src.NumArcs(s))
		for ait := src.Arcs(s); !ait.Done(); ait.Next() {
			out.AddArc(s, ait.Value())
		}
	}
	out.SetStart(src.Start())
	out.SetInputSymbols(src.InputSymbols().Copy())
	out.SetOutputSymbols(src.OutputSymbols().Copy())
	out.SetProperties(src.Properties(PropAll, false)&PropCopy, PropAll)

	return out, nil
}
