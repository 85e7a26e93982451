// Package monthindex maps zero-based page positions to calendar months and
// back for an open-ended or bounded range of months.
package monthindex

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tableflip.dev/calpage/pkg/clock"
)

// MaxUnboundedPosition is the last position an unbounded range can reach.
const MaxUnboundedPosition = math.MaxInt32 - 1

// ErrInvalidRange is returned when a range's minimum date is after its
// maximum date.
var ErrInvalidRange = errors.New("invalid range")

// Range is the start month plus an optional month count.
type Range struct {
	start   clock.YearMonth
	count   uint32
	bounded bool
}

// NewRange builds a range spanning the months of min through max. A zero max
// means the range is unbounded.
func NewRange(min, max clock.Date) (Range, error) {
	if min.IsZero() {
		return Range{}, fmt.Errorf("%w: missing minimum date", ErrInvalidRange)
	}
	if max.IsZero() {
		return Unbounded(min.YearMonth()), nil
	}
	if min.After(max) {
		return Range{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, min, max)
	}
	r := Range{start: min.YearMonth(), bounded: true}
	span := PositionOf(r, max.Year(), max.Month()) + 1
	if span > MaxUnboundedPosition+1 {
		return Range{}, fmt.Errorf("%w: %s to %s spans more than %d months", ErrInvalidRange, min, max, MaxUnboundedPosition+1)
	}
	r.count = uint32(span)
	return r, nil
}

// NewCountRange builds a range of count months starting at start.
func NewCountRange(start clock.YearMonth, count uint32) (Range, error) {
	if count < 1 {
		return Range{}, fmt.Errorf("%w: month count must be at least 1", ErrInvalidRange)
	}
	return Range{start: normalize(start), count: count, bounded: true}, nil
}

// Unbounded builds an open-ended range starting at start.
func Unbounded(start clock.YearMonth) Range {
	return Range{start: normalize(start)}
}

func normalize(ym clock.YearMonth) clock.YearMonth {
	return ym.Add(0)
}

// Start returns the month at position 0.
func (r Range) Start() clock.YearMonth { return r.start }

// Count returns the number of months and whether the range is bounded.
func (r Range) Count() (uint32, bool) { return r.count, r.bounded }

// Bounded reports whether the range has a fixed month count.
func (r Range) Bounded() bool { return r.bounded }

// Last returns the final month of a bounded range.
func (r Range) Last() (clock.YearMonth, bool) {
	if !r.bounded {
		return clock.YearMonth{}, false
	}
	return MonthAt(r, int(r.count)-1), true
}

func (r Range) String() string {
	if !r.bounded {
		return fmt.Sprintf("%s..", r.start)
	}
	last, _ := r.Last()
	return fmt.Sprintf("%s..%s", r.start, last)
}

// PositionOf returns the page position of year and month. The result is not
// clamped to the range.
func PositionOf(r Range, year int, month time.Month) int {
	return (year-r.start.Year)*12 + (int(month) - int(r.start.Month))
}

// PositionOfMonth is PositionOf for a YearMonth.
func PositionOfMonth(r Range, ym clock.YearMonth) int {
	return PositionOf(r, ym.Year, ym.Month)
}

// PositionOfDate returns the position of the month containing d.
func PositionOfDate(r Range, d clock.Date) int {
	return PositionOf(r, d.Year(), d.Month())
}

// PositionOfTime returns the position of the month containing t as seen by c.
func PositionOfTime(r Range, c *clock.Clock, t time.Time) int {
	y, m, _ := c.Parts(t)
	return PositionOf(r, y, m)
}

// MonthAt returns the month at position. Negative positions resolve to
// months before the start.
func MonthAt(r Range, position int) clock.YearMonth {
	idx := int(r.start.Month) - 1 + position
	return clock.YearMonth{
		Year:  r.start.Year + clock.FloorDiv(idx, 12),
		Month: time.Month(clock.FloorMod(idx, 12) + 1),
	}
}

// Size returns the number of months in a bounded range.
func Size(r Range) (uint64, bool) {
	if !r.bounded {
		return 0, false
	}
	return uint64(r.count), true
}

// MaxPosition returns the last valid position of r.
func MaxPosition(r Range) int {
	if !r.bounded {
		return MaxUnboundedPosition
	}
	return int(r.count) - 1
}

// Contains reports whether position is valid in r.
func Contains(r Range, position int) bool {
	return position >= 0 && position <= MaxPosition(r)
}

// Clamp returns the valid position nearest to position and whether it had to
// be moved.
func Clamp(r Range, position int) (int, bool) {
	switch {
	case position < 0:
		return 0, true
	case position > MaxPosition(r):
		return MaxPosition(r), true
	}
	return position, false
}
