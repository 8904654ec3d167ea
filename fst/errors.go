// Package fst: sentinel errors shared across the package.

package fst

import "errors"

// Sentinel errors for transducer construction, mutation, and I/O.
var (
	// ErrNilFst indicates a nil transducer was passed where a value is
	// required.
	ErrNilFst = errors.New("fst: transducer is nil")

	// ErrNoState indicates an operation referenced a StateID outside the
	// live state set.
	ErrNoState = errors.New("fst: state does not exist")

	// ErrBadStart indicates a start StateID that is neither NoStateID nor
	// a live state.
	ErrBadStart = errors.New("fst: start state does not exist")

	// ErrDanglingArc indicates an arc whose NextState is not a live state.
	ErrDanglingArc = errors.New("fst: arc destination does not exist")

	// ErrNonMemberWeight indicates a weight failing its semiring Member
	// predicate.
	ErrNonMemberWeight = errors.New("fst: weight is not a semiring member")

	// ErrNegativeLabel indicates an arc with a negative input or output
	// label, which is outside the label domain.
	ErrNegativeLabel = errors.New("fst: arc label is negative")

	// ErrBadHeader indicates a serialized transducer with a corrupt or
	// truncated header.
	ErrBadHeader = errors.New("fst: bad or truncated header")

	// ErrBadMagic indicates input that is not a serialized transducer.
	ErrBadMagic = errors.New("fst: bad magic number")

	// ErrUnknownFstType indicates a representation type tag with no
	// registered reader.
	ErrUnknownFstType = errors.New("fst: unknown transducer type")

	// ErrArcTypeMismatch indicates a file whose arc type differs from the
	// caller's expected arc type.
	ErrArcTypeMismatch = errors.New("fst: arc type mismatch")

	// ErrNotMutable indicates a non-mutable serialized transducer read
	// through the mutable entry point.
	ErrNotMutable = errors.New("fst: serialized transducer is not mutable")

	// ErrDuplicateFstType indicates a second registration under the same
	// representation type tag.
	ErrDuplicateFstType = errors.New("fst: transducer type already registered")
)
