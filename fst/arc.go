// Package fst: labels, state identifiers, and the Arc value type.

package fst

import "github.com/katalvlaran/lvlfst/semiring"

// Label identifies an input or output symbol on an arc. Labels are
// non-negative; Epsilon (0) is the reserved no-symbol label used for
// silent transitions.
type Label int64

// Epsilon is the reserved no-symbol label.
const Epsilon Label = 0

// StateID identifies a state. IDs are dense and non-negative, assigned
// at creation and stable until the state is deleted; NoStateID is the
// "no state" sentinel (no start state, invalid destination).
type StateID int64

// NoStateID is the sentinel for "no state".
const NoStateID StateID = -1

// Arc is one weighted transition: input label, output label, weight,
// and destination state. Arcs are owned by the state holding them and
// are passed by value throughout the library.
type Arc[W semiring.Weight[W]] struct {
	ILabel    Label
	OLabel    Label
	Weight    W
	NextState StateID
}

// NewArc builds an arc. Provided for symmetry with the iterator's
// Value; composite literals are equally fine.
func NewArc[W semiring.Weight[W]](ilabel, olabel Label, weight W, next StateID) Arc[W] {
	return Arc[W]{ILabel: ilabel, OLabel: olabel, Weight: weight, NextState: next}
}

// ArcType names the arc instantiation for registries and file headers;
// an arc type is named by its weight type (e.g. "tropical").
func ArcType[W semiring.Weight[W]]() string {
	var zero W

	return zero.Type()
}
