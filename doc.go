// Package lvlfst is a library for building, transforming, and
// persisting weighted finite-state transducers (WFSTs): directed graphs
// whose states carry a final weight and whose arcs carry an input
// label, an output label, a weight, and a destination, with weights
// drawn from an abstract semiring.
//
// 🚀 What is lvlfst?
//
//	A generic, value-typed WFST toolkit that brings together:
//		• Semirings: Tropical (min,+), Log, Boolean, and product pairs,
//		  with composite text and binary weight I/O
//		• Symbol tables: label↔spelling maps with wire serialization
//		• Transducers: a read-only → expanded → mutable interface
//		  hierarchy over a dense copy-on-write VectorFst
//		• Iterators: restartable state cursors, random-access arc
//		  cursors, in-place mutable arc rewriting
//		• Polymorphic I/O: headers, an explicit type registry, and a
//		  SQLite-backed catalog for named transducers
//		• Rational operations: closure (star/plus) and inversion, each
//		  in destructive and delayed (lazily cached) form
//
// ✨ Why choose lvlfst?
//
//   - Fully typed – weights are value types behind a generic
//     constraint, no boxing on the arc hot path
//   - Cheap aliasing – Copy(false) shares the representation
//     copy-on-write; Copy(true) forks for cross-goroutine hand-off
//   - Honest failure – reads resolve through an explicit registry and
//     fail loudly on unknown tags or arc-type mismatches
//
// Under the hood, everything is organized under five subpackages:
//
//	semiring/ — the Weight constraint, concrete semirings, weight text & binary I/O
//	symtab/   — symbol tables and their serialization
//	fst/      — interfaces, VectorFst, properties, iterators, registry, file I/O
//	rational/ — closure and inversion, destructive and delayed
//	fststore/ — SQLite persistence for named transducers
//
// Quick example:
//
//	f := fst.NewVectorFst[semiring.Tropical]()
//	f.AddStates(2)
//	f.SetStart(0)
//	f.AddArc(0, fst.NewArc(1, 2, semiring.Tropical(0.5), 1))
//	f.SetFinal(1, semiring.TropicalOne)
//	err := rational.Closure(f, rational.ClosureStar)
//
// See each subpackage's doc.go for the full contract.
//
//	go get github.com/katalvlaran/lvlfst
package lvlfst
