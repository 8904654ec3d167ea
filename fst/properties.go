// Package fst: the cached property bitmask.
//
// Structural facts come in pairs (the fact and its negation); a pair
// with neither bit set is unknown. Binary bits (Expanded, Mutable,
// Error) are always known. Mutators run transfer functions that keep
// only the bits the mutation provably preserves — never a full rescan —
// and Properties(mask, true) recomputes unknown facts on demand.

package fst

import "github.com/katalvlaran/lvlfst/semiring"

// Binary property bits: capabilities of the representation itself.
const (
	// PropExpanded marks a fully instantiated representation.
	PropExpanded uint64 = 1 << iota
	// PropMutable marks a representation supporting mutation.
	PropMutable
	// PropError marks a representation in an error state.
	PropError

	// Trinary pairs: structural facts and their negations.

	// PropAcceptor: every arc has ILabel == OLabel.
	PropAcceptor
	// PropNotAcceptor: some arc has ILabel != OLabel.
	PropNotAcceptor
	// PropIDeterministic: no state has two arcs sharing an input label.
	PropIDeterministic
	// PropNonIDeterministic: some state has duplicate input labels.
	PropNonIDeterministic
	// PropEpsilons: some arc has both labels Epsilon.
	PropEpsilons
	// PropNoEpsilons: no arc has both labels Epsilon.
	PropNoEpsilons
	// PropIEpsilons: some arc has input label Epsilon.
	PropIEpsilons
	// PropNoIEpsilons: no arc has input label Epsilon.
	PropNoIEpsilons
	// PropOEpsilons: some arc has output label Epsilon.
	PropOEpsilons
	// PropNoOEpsilons: no arc has output label Epsilon.
	PropNoOEpsilons
	// PropWeighted: some arc or final weight is neither Zero nor One.
	PropWeighted
	// PropUnweighted: all arc and final weights are Zero or One.
	PropUnweighted
	// PropAcyclic: the transition graph has no cycle.
	PropAcyclic
	// PropCyclic: the transition graph has a cycle.
	PropCyclic
	// PropInitialAcyclic: no cycle through the start state.
	PropInitialAcyclic
	// PropInitialCyclic: some cycle passes through the start state.
	PropInitialCyclic
	// PropTopSorted: every arc satisfies NextState > source (by ID).
	PropTopSorted
	// PropNotTopSorted: some arc violates topological numbering.
	PropNotTopSorted
	// PropAccessible: every state is reachable from the start.
	PropAccessible
	// PropNotAccessible: some state is unreachable from the start.
	PropNotAccessible
	// PropCoAccessible: every state reaches a final state.
	PropCoAccessible
	// PropNotCoAccessible: some state reaches no final state.
	PropNotCoAccessible
)

// Aggregate masks.
const (
	// PropBinary selects the always-known capability bits.
	PropBinary = PropExpanded | PropMutable | PropError

	// propPositive selects the positive half of each trinary pair.
	propPositive = PropAcceptor | PropIDeterministic | PropEpsilons |
		PropIEpsilons | PropOEpsilons | PropWeighted | PropAcyclic |
		PropInitialAcyclic | PropTopSorted | PropAccessible | PropCoAccessible

	// propNegative selects the negative half of each trinary pair.
	propNegative = PropNotAcceptor | PropNonIDeterministic | PropNoEpsilons |
		PropNoIEpsilons | PropNoOEpsilons | PropUnweighted | PropCyclic |
		PropInitialCyclic | PropNotTopSorted | PropNotAccessible |
		PropNotCoAccessible

	// PropTrinary selects every structural pair.
	PropTrinary = propPositive | propNegative

	// PropAll selects every property bit.
	PropAll = PropBinary | PropTrinary

	// PropExtrinsic selects the facts that depend on the whole graph
	// rather than on structure local to a mutation (global reachability).
	// These are the bits whose unchanged-ness lets SetProperties skip the
	// copy-on-write fork (see Mutable.SetProperties on VectorFst).
	PropExtrinsic = PropAccessible | PropNotAccessible |
		PropCoAccessible | PropNotCoAccessible

	// PropIntrinsic selects the remaining structural facts.
	PropIntrinsic = PropTrinary &^ PropExtrinsic

	// PropNull describes the empty transducer: vacuously true facts.
	PropNull = PropAcceptor | PropIDeterministic | PropNoEpsilons |
		PropNoIEpsilons | PropNoOEpsilons | PropUnweighted | PropAcyclic |
		PropInitialAcyclic | PropTopSorted | PropAccessible | PropCoAccessible

	// PropCopy selects the bits preserved verbatim by copying and
	// serialization (everything but the capability bits).
	PropCopy = PropTrinary | PropError
)

// trinaryPairs lists (positive, negative) bit pairs for known-ness
// bookkeeping.
var trinaryPairs = [...][2]uint64{
	{PropAcceptor, PropNotAcceptor},
	{PropIDeterministic, PropNonIDeterministic},
	{PropEpsilons, PropNoEpsilons},
	{PropIEpsilons, PropNoIEpsilons},
	{PropOEpsilons, PropNoOEpsilons},
	{PropWeighted, PropUnweighted},
	{PropAcyclic, PropCyclic},
	{PropInitialAcyclic, PropInitialCyclic},
	{PropTopSorted, PropNotTopSorted},
	{PropAccessible, PropNotAccessible},
	{PropCoAccessible, PropNotCoAccessible},
}

// KnownProperties returns the mask of bits that props actually records:
// binary bits plus both halves of every pair with at least one bit set.
func KnownProperties(props uint64) uint64 {
	known := uint64(PropBinary)
	for _, p := range trinaryPairs {
		if props&(p[0]|p[1]) != 0 {
			known |= p[0] | p[1]
		}
	}

	return known
}

// Transfer functions: each returns the property bits that survive the
// named mutation. They are deliberately conservative — an unknown fact
// is always sound, a stale known fact never is.

// setStartProperties: changing the start state invalidates every fact
// tied to the start (initial cycles, reachability, topological order
// rooted at the start is unaffected, accessibility is).
func setStartProperties(props uint64) uint64 {
	return props &^ (PropInitialAcyclic | PropInitialCyclic |
		PropAccessible | PropNotAccessible |
		PropCoAccessible | PropNotCoAccessible)
}

// setFinalProperties: a final-weight change can alter coaccessibility
// and weighted-ness.
func setFinalProperties(props uint64) uint64 {
	return props &^ (PropCoAccessible | PropNotCoAccessible |
		PropWeighted | PropUnweighted)
}

// addStateProperties: a fresh state has no arcs, so local facts hold;
// it is unreachable and reaches nothing, so global reachability turns
// definitively negative once any state exists.
func addStateProperties(props uint64) uint64 {
	props &^= PropAccessible | PropCoAccessible

	return props | PropNotAccessible | PropNotCoAccessible
}

// addArcProperties: the new arc's shape settles some facts and unsettles
// others.
func addArcProperties[W semiring.Weight[W]](props uint64, s StateID, arc Arc[W]) uint64 {
	if arc.ILabel != arc.OLabel {
		props = props&^PropAcceptor | PropNotAcceptor
	}
	if arc.ILabel == Epsilon {
		props = props&^PropNoIEpsilons | PropIEpsilons
		if arc.OLabel == Epsilon {
			props = props&^PropNoEpsilons | PropEpsilons
		}
	}
	if arc.OLabel == Epsilon {
		props = props&^PropNoOEpsilons | PropOEpsilons
	}
	// Determinism needs the state's other arcs; give it up.
	props &^= PropIDeterministic | PropNonIDeterministic
	// Weight shape is not inspected here; give up the pair.
	props &^= PropWeighted | PropUnweighted
	// A backward or self arc may close a cycle and breaks numbering.
	if arc.NextState <= s {
		props &^= PropAcyclic | PropInitialAcyclic | PropTopSorted
		props |= PropNotTopSorted
		if arc.NextState == s {
			props = props&^PropInitialAcyclic | PropCyclic
		}
	}
	// New connectivity can only help reachability; negatives no longer
	// certain, positives need a rescan.
	props &^= PropAccessible | PropNotAccessible |
		PropCoAccessible | PropNotCoAccessible

	return props
}

// deleteStatesProperties: a subgraph inherits every "absence" fact but
// none of the "presence" facts, and reachability is unknown.
func deleteStatesProperties(props uint64) uint64 {
	keep := uint64(PropAcceptor | PropIDeterministic | PropNoEpsilons |
		PropNoIEpsilons | PropNoOEpsilons | PropUnweighted |
		PropAcyclic | PropInitialAcyclic | PropTopSorted)

	return props & (keep | PropBinary)
}

// deleteArcsProperties: same keep-set as state deletion.
func deleteArcsProperties(props uint64) uint64 {
	return deleteStatesProperties(props)
}

// ComputeProperties scans an expanded transducer and returns the full,
// known bitmask for every trinary pair. Delayed implementations call it
// from Properties(mask, true). O(V + E) time, O(V) space.
func ComputeProperties[W semiring.Weight[W]](f Expanded[W]) uint64 {
	n := f.NumStates()
	if n == 0 {
		return PropNull
	}
	// Start from the all-positive hypothesis; flip pairs as counterexamples
	// appear. Every pair ends up known.
	props := uint64(propPositive)

	var (
		zero    W
		one     = zero.One()
		zeroW   = zero.Zero()
		ilabels = make(map[Label]struct{})
	)

	flip := func(pos, neg uint64) {
		props = props&^pos | neg
	}

	for s := StateID(0); s < StateID(n); s++ {
		final := f.Final(s)
		if !final.ApproxEqual(zeroW, semiring.DefaultDelta) && !final.ApproxEqual(one, semiring.DefaultDelta) {
			flip(PropUnweighted, PropWeighted)
		}
		clear(ilabels)
		for it := f.Arcs(s); !it.Done(); it.Next() {
			arc := it.Value()
			if arc.ILabel != arc.OLabel {
				flip(PropAcceptor, PropNotAcceptor)
			}
			if arc.ILabel == Epsilon {
				flip(PropNoIEpsilons, PropIEpsilons)
				if arc.OLabel == Epsilon {
					flip(PropNoEpsilons, PropEpsilons)
				}
			}
			if arc.OLabel == Epsilon {
				flip(PropNoOEpsilons, PropOEpsilons)
			}
			if _, dup := ilabels[arc.ILabel]; dup {
				flip(PropIDeterministic, PropNonIDeterministic)
			}
			ilabels[arc.ILabel] = struct{}{}
			if !arc.Weight.ApproxEqual(zeroW, semiring.DefaultDelta) && !arc.Weight.ApproxEqual(one, semiring.DefaultDelta) {
				flip(PropUnweighted, PropWeighted)
			}
			if arc.NextState <= s {
				flip(PropTopSorted, PropNotTopSorted)
			}
		}
	}

	if hasCycle(f) {
		flip(PropAcyclic, PropCyclic)
	}
	if startOnCycle(f) {
		flip(PropInitialAcyclic, PropInitialCyclic)
	}
	if !allAccessible(f) {
		flip(PropAccessible, PropNotAccessible)
	}
	if !allCoAccessible(f) {
		flip(PropCoAccessible, PropNotCoAccessible)
	}

	return props
}

// hasCycle runs an iterative DFS over the transition graph and reports
// whether any cycle exists.
func hasCycle[W semiring.Weight[W]](f Expanded[W]) bool {
	n := f.NumStates()
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make([]byte, n)
	type frame struct {
		s   StateID
		arc int
	}
	for root := StateID(0); root < StateID(n); root++ {
		if color[root] != white {
			continue
		}
		stack := []frame{{s: root}}
		color[root] = grey
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.arc >= f.NumArcs(top.s) {
				color[top.s] = black
				stack = stack[:len(stack)-1]
				continue
			}
			it := f.Arcs(top.s)
			it.Seek(top.arc)
			next := it.Value().NextState
			top.arc++
			if next < 0 || next >= StateID(n) {
				continue // dangling arcs are Verify's concern
			}
			switch color[next] {
			case grey:
				return true
			case white:
				color[next] = grey
				stack = append(stack, frame{s: next})
			}
		}
	}

	return false
}

// startOnCycle reports whether some cycle passes through the start
// state: true exactly when start is reachable from the destination of
// one of its own arcs. A DFS rooted elsewhere can walk into such a
// cycle first and blacken it before start is visited, so the check is
// a separate forward reachability scan.
func startOnCycle[W semiring.Weight[W]](f Expanded[W]) bool {
	n := f.NumStates()
	start := f.Start()
	if start < 0 || start >= StateID(n) {
		return false
	}
	seen := make([]bool, n)
	var queue []StateID
	for it := f.Arcs(start); !it.Done(); it.Next() {
		next := it.Value().NextState
		if next == start {
			return true
		}
		if next >= 0 && next < StateID(n) && !seen[next] {
			seen[next] = true
			queue = append(queue, next)
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for it := f.Arcs(s); !it.Done(); it.Next() {
			next := it.Value().NextState
			if next == start {
				return true
			}
			if next >= 0 && next < StateID(n) && !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	return false
}

// allAccessible reports whether every state is reachable from start.
func allAccessible[W semiring.Weight[W]](f Expanded[W]) bool {
	n := f.NumStates()
	start := f.Start()
	if start == NoStateID {
		return n == 0
	}
	seen := make([]bool, n)
	queue := []StateID{start}
	seen[start] = true
	count := 1
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for it := f.Arcs(s); !it.Done(); it.Next() {
			next := it.Value().NextState
			if next >= 0 && next < StateID(n) && !seen[next] {
				seen[next] = true
				count++
				queue = append(queue, next)
			}
		}
	}

	return count == n
}

// allCoAccessible reports whether every state reaches a final state,
// via one reverse-adjacency BFS from the final set.
func allCoAccessible[W semiring.Weight[W]](f Expanded[W]) bool {
	n := f.NumStates()
	if n == 0 {
		return true
	}
	var zero W
	zeroW := zero.Zero()
	reverse := make([][]StateID, n)
	var queue []StateID
	seen := make([]bool, n)
	for s := StateID(0); s < StateID(n); s++ {
		for it := f.Arcs(s); !it.Done(); it.Next() {
			next := it.Value().NextState
			if next >= 0 && next < StateID(n) {
				reverse[next] = append(reverse[next], s)
			}
		}
		if !f.Final(s).ApproxEqual(zeroW, semiring.DefaultDelta) {
			seen[s] = true
			queue = append(queue, s)
		}
	}
	count := len(queue)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, p := range reverse[s] {
			if !seen[p] {
				seen[p] = true
				count++
				queue = append(queue, p)
			}
		}
	}

	return count == n
}
