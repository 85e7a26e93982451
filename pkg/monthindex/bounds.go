package monthindex

import (
	"tableflip.dev/calpage/pkg/clock"
)

// Bounds holds the min/max dates a range was derived from.
type Bounds struct {
	min, max clock.Date
	rng      Range
}

// NewBounds returns bounds for min and max; a zero max is unbounded.
func NewBounds(min, max clock.Date) (*Bounds, error) {
	r, err := NewRange(min, max)
	if err != nil {
		return nil, err
	}
	return &Bounds{min: min, max: max, rng: r}, nil
}

// Min returns the earliest date.
func (b *Bounds) Min() clock.Date { return b.min }

// Max returns the latest date, or a zero date when unbounded.
func (b *Bounds) Max() clock.Date { return b.max }

// Range returns the month range derived from the bounds.
func (b *Bounds) Range() Range { return b.rng }

// Set replaces the bounds. It reports whether the derived range changed; a
// change of day that keeps the same months is not a range change. Invalid
// bounds leave b untouched.
func (b *Bounds) Set(min, max clock.Date) (bool, error) {
	r, err := NewRange(min, max)
	if err != nil {
		return false, err
	}
	b.min, b.max = min, max
	if r == b.rng {
		return false, nil
	}
	b.rng = r
	return true, nil
}

// ClampDate returns the date within [min, max] nearest to d and whether it
// had to be moved.
func (b *Bounds) ClampDate(d clock.Date) (clock.Date, bool) {
	if d.Before(b.min) {
		return b.min, true
	}
	if !b.max.IsZero() && d.After(b.max) {
		return b.max, true
	}
	return d, false
}
