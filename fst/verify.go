// Package fst: the structural validation diagnostic.

package fst

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/katalvlaran/lvlfst/semiring"
)

// Verify scans f for structural violations: a start state outside the
// live set, arcs whose destination does not exist, negative labels, and
// weights failing their semiring Member predicate. Every finding is
// accumulated (multierr), so one pass reports the full damage.
//
// Mutators never run this scan — doing so on every mutation would break
// the linear-time contracts — so unsafe mutation sequences (deleting a
// state another arc still targets) are detectable here rather than
// prevented there.
// Complexity: O(V + E).
func Verify[W semiring.Weight[W]](f Expanded[W]) error {
	if f == nil {
		return ErrNilFst
	}
	n := StateID(f.NumStates())
	var err error
	if start := f.Start(); start != NoStateID && (start < 0 || start >= n) {
		err = multierr.Append(err, fmt.Errorf("%w: start %d, %d states", ErrBadStart, start, n))
	}
	for it := f.States(); !it.Done(); it.Next() {
		s := it.Value()
		if !f.Final(s).Member() {
			err = multierr.Append(err, fmt.Errorf("%w: final weight of state %d", ErrNonMemberWeight, s))
		}
		pos := 0
		for ait := f.Arcs(s); !ait.Done(); ait.Next() {
			arc := ait.Value()
			if arc.NextState < 0 || arc.NextState >= n {
				err = multierr.Append(err, fmt.Errorf("%w: state %d arc %d -> %d", ErrDanglingArc, s, pos, arc.NextState))
			}
			if arc.ILabel < 0 || arc.OLabel < 0 {
				err = multierr.Append(err, fmt.Errorf("%w: state %d arc %d (%d:%d)", ErrNegativeLabel, s, pos, arc.ILabel, arc.OLabel))
			}
			if !arc.Weight.Member() {
				err = multierr.Append(err, fmt.Errorf("%w: state %d arc %d", ErrNonMemberWeight, s, pos))
			}
			pos++
		}
	}

	return err
}
