package clock

import (
	"fmt"
	"time"
)

// Date is a calendar day. The zero value is "no date".
type Date struct {
	t time.Time
}

// Year returns the date's year.
func (d Date) Year() int { return d.t.Year() }

// Month returns the date's month.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of the month, starting at 1.
func (d Date) Day() int { return d.t.Day() }

// Weekday returns the date's weekday.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// YearMonth returns the month containing d.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.t.Year(), Month: d.t.Month()}
}

// Time returns midnight of d in its clock's location.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether d is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool {
	if d.IsZero() || o.IsZero() {
		return d.IsZero() == o.IsZero()
	}
	return d.compare(o) == 0
}

// Before reports whether d is an earlier calendar day than o.
func (d Date) Before(o Date) bool { return d.compare(o) < 0 }

// After reports whether d is a later calendar day than o.
func (d Date) After(o Date) bool { return d.compare(o) > 0 }

func (d Date) compare(o Date) int {
	ay, am, ad := d.t.Date()
	by, bm, bd := o.t.Date()
	switch {
	case ay != by:
		return cmpInt(ay, by)
	case am != bm:
		return cmpInt(int(am), int(bm))
	default:
		return cmpInt(ad, bd)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(layoutISO)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Dates decode in UTC.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(layoutISO, string(b))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", string(b), err)
	}
	*d = Date{t: t}
	return nil
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Index returns the number of months since January of year 0.
func (ym YearMonth) Index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// FromIndex is the inverse of Index.
func FromIndex(idx int) YearMonth {
	return YearMonth{Year: FloorDiv(idx, 12), Month: time.Month(FloorMod(idx, 12) + 1)}
}

// Add returns the month n months after ym; n may be negative.
func (ym YearMonth) Add(n int) YearMonth {
	return FromIndex(ym.Index() + n)
}

// Before reports whether ym is earlier than o.
func (ym YearMonth) Before(o YearMonth) bool { return ym.Index() < o.Index() }

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns a modulo b with the sign of b.
func FloorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
