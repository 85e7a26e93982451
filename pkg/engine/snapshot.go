package engine

import (
	"fmt"

	"cloudeng.io/errors"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/monthindex"
)

// ErrInvalidSnapshot is returned by Restore for snapshots that cannot apply.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// RangeDescriptor describes a range by the dates it was built from.
type RangeDescriptor struct {
	Min clock.Date `json:"min"`
	Max clock.Date `json:"max,omitempty"`
}

// Snapshot is the engine state a host persists across save/restore.
type Snapshot struct {
	Range           RangeDescriptor `json:"range"`
	VisiblePosition *int            `json:"visible_position,omitempty"`
	Selection       *clock.Date     `json:"selection,omitempty"`
}

// Snapshot captures the range, visible position and selection.
func (e *Engine) Snapshot() Snapshot {
	min, max := e.Bounds()
	s := Snapshot{Range: RangeDescriptor{Min: min, Max: max}}
	if pos, ok := e.pager.VisiblePosition(); ok {
		s.VisiblePosition = &pos
	}
	if d, ok := e.tracker.Selected(); ok {
		s.Selection = &d
	}
	return s
}

// Restore applies s without emitting month, year or selection events. When s
// has a visible position the host receives one non-animated scroll command
// for it. Invalid snapshots leave the engine unchanged.
func (e *Engine) Restore(s Snapshot) error {
	min := e.clock.FromParts(s.Range.Min.Year(), s.Range.Min.Month(), s.Range.Min.Day())
	var max clock.Date
	if !s.Range.Max.IsZero() {
		max = e.clock.FromParts(s.Range.Max.Year(), s.Range.Max.Month(), s.Range.Max.Day())
	}

	errs := &errors.M{}
	var rng monthindex.Range
	if s.Range.Min.IsZero() {
		errs.Append(fmt.Errorf("%w: missing range minimum", ErrInvalidSnapshot))
	} else {
		var err error
		if rng, err = monthindex.NewRange(min, max); err != nil {
			errs.Append(fmt.Errorf("%w: %w", ErrInvalidSnapshot, err))
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}
	if s.VisiblePosition != nil && !monthindex.Contains(rng, *s.VisiblePosition) {
		errs.Append(fmt.Errorf("%w: visible position %d outside %v", ErrInvalidSnapshot, *s.VisiblePosition, rng))
	}
	if s.Selection != nil && !s.Selection.IsZero() {
		if s.Selection.Before(min) || (!max.IsZero() && s.Selection.After(max)) {
			errs.Append(fmt.Errorf("%w: selection %s outside %v", ErrInvalidSnapshot, s.Selection, rng))
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}

	if _, err := e.bounds.Set(min, max); err != nil {
		return err
	}
	e.pager.Reset(rng)
	if s.Selection != nil {
		e.tracker.Restore(*s.Selection)
	} else {
		e.tracker.Restore(clock.Date{})
	}
	if s.VisiblePosition != nil {
		e.pager.Restore(*s.VisiblePosition)
	}
	return nil
}
