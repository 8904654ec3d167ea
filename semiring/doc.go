// Package semiring defines the weight domain for weighted finite-state
// transducers: an algebraic structure (W, ⊕, ⊗, Zero, One) together with
// the textual and binary I/O conventions every weight type must follow.
//
// A weight type W participates in the library by satisfying the Weight[W]
// constraint. The laws callers rely on (and which every concrete type in
// this package upholds) are:
//
//	– Plus and Times are associative.
//	– Times distributes over Plus.
//	– Zero is the identity of Plus and annihilates Times.
//	– One is the identity of Times.
//
// Shortest-path and composition-style algorithms are correct only under
// these laws; a weight type violating them is a defect, not a quality
// issue.
//
// Concrete semirings provided:
//
//	– Tropical: ⊕ = min, ⊗ = +, Zero = +Inf, One = 0 (Viterbi costs).
//	– Log:      ⊕ = -log(e⁻ᵃ+e⁻ᵇ), ⊗ = +, Zero = +Inf, One = 0.
//	– Bool:     ⊕ = ∨, ⊗ = ∧, Zero = false, One = true (acceptance).
//	– Pair:     componentwise product of two semirings.
//
// Composite weights (Pair and anything built from it) are printed as
// sub-weight strings joined by a single configurable separator character,
// optionally wrapped in a configurable open/close parenthesis pair so
// that nested composites stay unambiguous. TextWriter and TextReader
// implement that convention; misconfiguration (separator not exactly one
// character, only one of the two parentheses set) is detected at
// construction and marks the helper errored so later stream operations
// short-circuit instead of failing mid-parse.
//
// Complexity: all semiring operations are O(1); text I/O is linear in
// the printed length.
package semiring
