// Package clock converts between instants and calendar fields for a given
// location and first day of week.
package clock

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/datetime"
)

const (
	layoutISO      = "2006-01-02"
	layoutISOLoose = "2006-1-2"
)

// Clock extracts calendar fields from instants and builds dates from fields.
type Clock struct {
	loc      *time.Location
	firstDay time.Weekday
}

// New returns a Clock for loc. A nil loc means UTC.
func New(loc *time.Location, firstDay time.Weekday) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	if firstDay < time.Sunday || firstDay > time.Saturday {
		firstDay = time.Sunday
	}
	return &Clock{loc: loc, firstDay: firstDay}
}

// Location returns the clock's location.
func (c *Clock) Location() *time.Location { return c.loc }

// FirstDayOfWeek returns the weekday shown in the first grid column.
func (c *Clock) FirstDayOfWeek() time.Weekday { return c.firstDay }

// Parts returns the year, month and day of t in the clock's location.
func (c *Clock) Parts(t time.Time) (int, time.Month, int) {
	return t.In(c.loc).Date()
}

// FromParts builds a date from calendar fields. Out of range fields are
// normalized the way time.Date normalizes them, so day 0 is the last day of
// the previous month.
func (c *Clock) FromParts(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, c.loc)}
}

// Date truncates t to the start of its day.
func (c *Clock) Date(t time.Time) Date {
	y, m, d := c.Parts(t)
	return c.FromParts(y, m, d)
}

// MonthStart returns the first day of ym.
func (c *Clock) MonthStart(ym YearMonth) Date {
	return c.FromParts(ym.Year, ym.Month, 1)
}

// StartWeekdayIndex returns the grid column, in [0,6], holding day 1 of the
// month.
func (c *Clock) StartWeekdayIndex(year int, month time.Month) int {
	wd := c.FromParts(year, month, 1).t.Weekday()
	return (int(wd) - int(c.firstDay) + 7) % 7
}

// Weekdays returns the seven weekdays in grid column order.
func (c *Clock) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(c.firstDay) + i) % 7)
	}
	return out
}

// Parse parses "2006-01-02" or "2006-1-2" in the clock's location.
func (c *Clock) Parse(val string) (Date, error) {
	val = strings.TrimSpace(val)
	for _, layout := range []string{layoutISO, layoutISOLoose} {
		if t, err := time.ParseInLocation(layout, val, c.loc); err == nil {
			return Date{t: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q, expected format 2006-01-02", val)
}

// ParseYearMonth parses "2006-01" or "2006-1".
func ParseYearMonth(val string) (YearMonth, error) {
	val = strings.TrimSpace(val)
	for _, layout := range []string{"2006-01", "2006-1"} {
		if t, err := time.Parse(layout, val); err == nil {
			return YearMonth{Year: t.Year(), Month: t.Month()}, nil
		}
	}
	return YearMonth{}, fmt.Errorf("invalid month %q, expected format 2006-01", val)
}

// DaysInMonth returns the number of days in month for year.
func DaysInMonth(year int, month time.Month) int {
	return int(datetime.DaysInMonth(year, datetime.Month(month)))
}
