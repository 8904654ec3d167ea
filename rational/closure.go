// Package rational: Kleene closure, destructive and delayed.

package rational

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlfst/fst"
	"github.com/katalvlaran/lvlfst/semiring"
	"github.com/katalvlaran/lvlfst/symtab"
)

// ClosureType selects which closure is built.
type ClosureType int

const (
	// ClosureStar accepts zero or more repetitions: the empty string is
	// accepted with weight One.
	ClosureStar ClosureType = iota
	// ClosurePlus accepts one or more repetitions: the empty string is
	// accepted only if the source already accepted it.
	ClosurePlus
)

// ErrBadClosureType reports a ClosureType outside the defined set.
var ErrBadClosureType = errors.New("rational: bad closure type")

// Closure destructively closes f under repetition: every state with a
// non-Zero final weight gains an epsilon arc back to the start state
// carrying that final weight. ClosureStar additionally prepends a fresh
// start state, itself final with One, with an epsilon arc to the old
// start. The properties bitmask is updated through ClosureProperties,
// not by rescanning.
// Complexity: O(V) time; one extra state and arc under ClosureStar.
func Closure[W semiring.Weight[W]](f fst.Mutable[W], ct ClosureType) error {
	if f == nil {
		return fst.ErrNilFst
	}
	if ct != ClosureStar && ct != ClosurePlus {
		return fmt.Errorf("%w: %d", ErrBadClosureType, ct)
	}
	props := f.Properties(fst.PropAll, false)
	start := f.Start()
	var zero W
	zeroW, one := zero.Zero(), zero.One()
	n := f.NumStates()
	// Without a start state there is nothing to loop back to; the star
	// super-state is still added so the empty string is accepted.
	if start != fst.NoStateID {
		for s := fst.StateID(0); s < fst.StateID(n); s++ {
			if w := f.Final(s); !w.ApproxEqual(zeroW, semiring.DefaultDelta) {
				f.AddArc(s, fst.NewArc(fst.Epsilon, fst.Epsilon, w, start))
			}
		}
	}
	if ct == ClosureStar {
		f.ReserveStates(1)
		nstart := f.AddState()
		f.SetStart(nstart)
		f.SetFinal(nstart, one)
		if start != fst.NoStateID {
			f.AddArc(nstart, fst.NewArc(fst.Epsilon, fst.Epsilon, one, start))
		}
	}
	f.SetProperties(ClosureProperties(props, ct == ClosureStar), fst.PropAll)

	return nil
}

// ClosureProperties is the property transfer function for Closure:
// given the input's bitmask it returns the bits still known to hold
// afterwards. Facts the added epsilon arcs can break (epsilon-freedom,
// determinism, acyclicity) lose their positive half; facts arcs cannot
// repair keep their negative half.
func ClosureProperties(props uint64, star bool) uint64 {
	out := props & (fst.PropBinary |
		fst.PropAcceptor | fst.PropNotAcceptor |
		fst.PropNonIDeterministic |
		fst.PropEpsilons | fst.PropIEpsilons | fst.PropOEpsilons |
		fst.PropWeighted |
		fst.PropCyclic | fst.PropInitialCyclic | fst.PropNotTopSorted |
		fst.PropAccessible | fst.PropNotAccessible |
		fst.PropCoAccessible | fst.PropNotCoAccessible)
	if star {
		// The fresh start state has in-degree zero, so no cycle can pass
		// through it.
		out = out&^fst.PropInitialCyclic | fst.PropInitialAcyclic
	}

	return out
}

// ClosureFst is the delayed form of Closure: it presents the closure of
// a source transducer without mutating it, computing each state's arcs
// on first visit and caching the line. Under ClosureStar the fresh
// start state is the one StateID past the source's range.
//
// One ClosureFst must not be visited from multiple goroutines; hand
// each goroutine a Copy(true).
type ClosureFst[W semiring.Weight[W]] struct {
	src   fst.Expanded[W]
	ctype ClosureType
	super fst.StateID // star super-state, NoStateID under ClosurePlus
	cache map[fst.StateID][]fst.Arc[W]
	props uint64
}

// NewClosureFst wraps src in its delayed closure.
func NewClosureFst[W semiring.Weight[W]](src fst.Expanded[W], ct ClosureType) (*ClosureFst[W], error) {
	if src == nil {
		return nil, fst.ErrNilFst
	}
	if ct != ClosureStar && ct != ClosurePlus {
		return nil, fmt.Errorf("%w: %d", ErrBadClosureType, ct)
	}
	super := fst.NoStateID
	if ct == ClosureStar {
		super = fst.StateID(src.NumStates())
	}
	props := ClosureProperties(src.Properties(fst.PropCopy, false), ct == ClosureStar)

	return &ClosureFst[W]{
		src:   src,
		ctype: ct,
		super: super,
		cache: make(map[fst.StateID][]fst.Arc[W]),
		props: props&^fst.PropMutable | fst.PropExpanded,
	}, nil
}

// Start returns the star super-state, or the source start under
// ClosurePlus.
func (f *ClosureFst[W]) Start() fst.StateID {
	if f.ctype == ClosureStar {
		return f.super
	}

	return f.src.Start()
}

// Final returns One for the star super-state and delegates otherwise.
func (f *ClosureFst[W]) Final(s fst.StateID) W {
	var zero W
	if s == f.super && f.ctype == ClosureStar {
		return zero.One()
	}

	return f.src.Final(s)
}

// NumStates counts the source states plus the star super-state.
func (f *ClosureFst[W]) NumStates() int {
	n := f.src.NumStates()
	if f.ctype == ClosureStar {
		n++
	}

	return n
}

// NumArcs forces expansion of s and returns its arc count.
func (f *ClosureFst[W]) NumArcs(s fst.StateID) int { return len(f.expand(s)) }

// NumInputEpsilons forces expansion of s and counts Epsilon inputs.
func (f *ClosureFst[W]) NumInputEpsilons(s fst.StateID) int {
	n := 0
	for _, arc := range f.expand(s) {
		if arc.ILabel == fst.Epsilon {
			n++
		}
	}

	return n
}

// NumOutputEpsilons forces expansion of s and counts Epsilon outputs.
func (f *ClosureFst[W]) NumOutputEpsilons(s fst.StateID) int {
	n := 0
	for _, arc := range f.expand(s) {
		if arc.OLabel == fst.Epsilon {
			n++
		}
	}

	return n
}

// Properties returns the bits known via the transfer function; compute
// scans the whole (fully expanded) closure.
func (f *ClosureFst[W]) Properties(mask uint64, compute bool) uint64 {
	if compute && fst.KnownProperties(f.props)&mask != mask {
		f.props = f.props&fst.PropBinary | fst.ComputeProperties[W](f)
	}

	return f.props & mask
}

// Type tags the representation.
func (f *ClosureFst[W]) Type() string { return "closure" }

// InputSymbols delegates to the source.
func (f *ClosureFst[W]) InputSymbols() *symtab.Table { return f.src.InputSymbols() }

// OutputSymbols delegates to the source.
func (f *ClosureFst[W]) OutputSymbols() *symtab.Table { return f.src.OutputSymbols() }

// Copy returns a view of the same closure. A safe copy takes a safe
// copy of the source and its own cache, so it may be visited from
// another goroutine; an unsafe copy shares this instance.
func (f *ClosureFst[W]) Copy(safe bool) fst.Fst[W] {
	if !safe {
		return f
	}
	src, ok := f.src.Copy(true).(fst.Expanded[W])
	if !ok {
		// A source whose safe copy is not expanded cannot back an
		// independent view; fall back to sharing.
		return f
	}
	cache := make(map[fst.StateID][]fst.Arc[W], len(f.cache))
	for s, arcs := range f.cache {
		line := make([]fst.Arc[W], len(arcs))
		copy(line, arcs)
		cache[s] = line
	}

	return &ClosureFst[W]{src: src, ctype: f.ctype, super: f.super, cache: cache, props: f.props}
}

// States iterates the dense range including the star super-state.
func (f *ClosureFst[W]) States() fst.StateIterator {
	return fst.DenseStateIterator(f.NumStates())
}

// Arcs expands s on first visit and serves the cached line.
func (f *ClosureFst[W]) Arcs(s fst.StateID) fst.ArcIterator[W] {
	return fst.SliceArcIterator(f.expand(s))
}

// expand computes s's arc line once: the source arcs, then the epsilon
// loop-back if s is final; the star super-state carries a single
// epsilon arc to the old start.
func (f *ClosureFst[W]) expand(s fst.StateID) []fst.Arc[W] {
	if arcs, ok := f.cache[s]; ok {
		return arcs
	}
	var zero W
	var arcs []fst.Arc[W]
	start := f.src.Start()
	if s == f.super && f.ctype == ClosureStar {
		if start != fst.NoStateID {
			arcs = []fst.Arc[W]{fst.NewArc(fst.Epsilon, fst.Epsilon, zero.One(), start)}
		}
	} else {
		arcs = make([]fst.Arc[W], 0, f.src.NumArcs(s)+1)
		for it := f.src.Arcs(s); !it.Done(); it.Next() {
			arcs = append(arcs, it.Value())
		}
		if start != fst.NoStateID {
			if w := f.src.Final(s); !w.ApproxEqual(zero.Zero(), semiring.DefaultDelta) {
				arcs = append(arcs, fst.NewArc(fst.Epsilon, fst.Epsilon, w, start))
			}
		}
	}
	f.cache[s] = arcs

	return arcs
}
