// Package fst defines the weighted finite-state transducer data model
// and its interface hierarchy, together with one concrete representation
// (VectorFst) that stores states densely and shares its implementation
// between copies until a mutation forces a private fork.
//
// The hierarchy is three nested capability contracts:
//
//	Fst[W]      — read-only access: start state, final weights, arc and
//	              epsilon counts, cached properties, symbol tables,
//	              iteration, and Copy(safe).
//	Expanded[W] — adds NumStates(): the transducer is fully instantiated
//	              and every StateID in [0, NumStates()) may be queried.
//	Mutable[W]  — adds state/arc construction and deletion, start/final/
//	              property setters, symbol-table setters, and a mutable
//	              arc iterator that overwrites arcs in place.
//
// Algorithms are written against the minimal capability they need, so a
// delayed (lazily computed) transducer and an eager one are
// interchangeable wherever only Fst[W] is required.
//
// Sharing discipline: Copy(false) on a VectorFst shares the underlying
// implementation cell; the first mutation through either handle forks a
// private copy, so no logical owner ever observes another's mutation.
// Copy(true) forks eagerly and is the form to use before handing a
// value to another goroutine (see the concurrency notes on VectorFst).
//
// Properties are a cached bitmask of structural facts. A fact is
// trustworthy only when its pair of bits records it as known; mutators
// run the matching transfer function rather than rescanning, and
// Properties(mask, true) recomputes unknown facts on demand.
//
// Serialization is polymorphic through an explicit Registry: the binary
// header names the representation type and the arc (weight) type, and
// reading resolves the pair to a registered constructor. There is no
// process-global registry; callers build one and pass it to Read.
package fst
