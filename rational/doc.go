// Package rational implements transducer-algebra operations (closure,
// inversion) in the two equivalent forms every operation in this
// library follows:
//
//   - Destructive: mutates a fst.Mutable in place. Closure adds an
//     epsilon arc from every final state back to the start (star form
//     also prepends a fresh start state, final with One, so the empty
//     string is accepted); Invert swaps every arc's labels and the two
//     symbol tables. Properties are updated through the operation's
//     transfer function, never by rescanning the graph.
//
//   - Delayed: wraps a source transducer in a value computing each
//     state's arcs on first visit and serving the cached line ever
//     after. The source is never mutated and states never visited are
//     never expanded. For every visited state the delayed form is
//     observationally identical to applying the destructive form to a
//     copy of the source.
//
// A delayed transducer is not safe for uncoordinated concurrent use of
// one instance; concurrent readers each take a Copy(true).
//
// Complexity:
//   - Closure (destructive): O(V) time and extra space.
//   - Invert (destructive): O(V + E) time, O(1) extra space.
//   - Delayed forms: O(out-degree) per first visit, O(1) thereafter.
package rational
