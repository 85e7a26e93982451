package clock

import (
	"testing"
	"time"
)

func TestPartsUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	c := New(tokyo, time.Sunday)

	// 2024-02-29T20:00Z is already March 1st in Tokyo.
	y, m, d := c.Parts(time.Date(2024, time.February, 29, 20, 0, 0, 0, time.UTC))
	if y != 2024 || m != time.March || d != 1 {
		t.Fatalf("expected 2024-03-01, got %d-%d-%d", y, m, d)
	}
}

func TestFromPartsNormalizes(t *testing.T) {
	c := New(nil, time.Sunday)
	got := c.FromParts(2024, time.March, 0)
	if got.String() != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", got)
	}
}

func TestStartWeekdayIndex(t *testing.T) {
	// March 1st 2024 is a Friday.
	tests := []struct {
		first time.Weekday
		want  int
	}{
		{time.Sunday, 5},
		{time.Monday, 4},
		{time.Saturday, 6},
		{time.Friday, 0},
	}
	for _, tt := range tests {
		c := New(time.UTC, tt.first)
		if got := c.StartWeekdayIndex(2024, time.March); got != tt.want {
			t.Fatalf("first=%v: expected %d, got %d", tt.first, tt.want, got)
		}
	}
}

func TestWeekdaysOrder(t *testing.T) {
	c := New(time.UTC, time.Monday)
	wds := c.Weekdays()
	if wds[0] != time.Monday || wds[6] != time.Sunday {
		t.Fatalf("unexpected weekday order %v", wds)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Fatalf("%d-%v: expected %d, got %d", tt.year, tt.month, tt.want, got)
		}
	}
}

func TestParse(t *testing.T) {
	c := New(time.UTC, time.Sunday)
	for _, val := range []string{"2024-03-05", "2024-3-5", " 2024-03-05 "} {
		d, err := c.Parse(val)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", val, err)
		}
		if d.String() != "2024-03-05" {
			t.Fatalf("%q: expected 2024-03-05, got %s", val, d)
		}
	}
	if _, err := c.Parse("03/05/2024"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestParseYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2025-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ym != (YearMonth{Year: 2025, Month: time.February}) {
		t.Fatalf("unexpected month %v", ym)
	}
}

func TestYearMonthAddFloors(t *testing.T) {
	start := YearMonth{Year: 2024, Month: time.July}
	tests := []struct {
		n    int
		want YearMonth
	}{
		{0, YearMonth{2024, time.July}},
		{5, YearMonth{2024, time.December}},
		{6, YearMonth{2025, time.January}},
		{-6, YearMonth{2024, time.January}},
		{-7, YearMonth{2023, time.December}},
		{-19, YearMonth{2022, time.December}},
	}
	for _, tt := range tests {
		if got := start.Add(tt.n); got != tt.want {
			t.Fatalf("Add(%d): expected %v, got %v", tt.n, tt.want, got)
		}
	}
}

func TestFloorDivMod(t *testing.T) {
	tests := []struct{ a, b, div, mod int }{
		{7, 12, 0, 7},
		{12, 12, 1, 0},
		{-1, 12, -1, 11},
		{-12, 12, -1, 0},
		{-13, 12, -2, 11},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.a, tt.b); got != tt.div {
			t.Fatalf("FloorDiv(%d, %d): expected %d, got %d", tt.a, tt.b, tt.div, got)
		}
		if got := FloorMod(tt.a, tt.b); got != tt.mod {
			t.Fatalf("FloorMod(%d, %d): expected %d, got %d", tt.a, tt.b, tt.mod, got)
		}
	}
}

func TestDateCompareAndText(t *testing.T) {
	c := New(time.UTC, time.Sunday)
	a := c.FromParts(2024, time.March, 15)
	b := c.FromParts(2024, time.March, 16)
	if !a.Before(b) || !b.After(a) || a.Equal(b) {
		t.Fatalf("unexpected ordering between %s and %s", a, b)
	}
	if !a.Equal(c.Date(time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC))) {
		t.Fatalf("expected truncated date to equal %s", a)
	}

	text, err := a.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Date
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(a) {
		t.Fatalf("expected %s, got %s", a, back)
	}
	if !(Date{}).Equal(Date{}) || (Date{}).Equal(a) {
		t.Fatalf("zero dates only equal each other")
	}
}

func TestFirstDayForLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   time.Weekday
	}{
		{"en-US", time.Sunday},
		{"en_US", time.Sunday},
		{"de-DE", time.Monday},
		{"en-GB", time.Monday},
		{"ar-EG", time.Saturday},
		{"ja", time.Sunday},
		{"fr", time.Monday},
		{"", time.Sunday},
	}
	for _, tt := range tests {
		got, err := FirstDayForLocale(tt.locale)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.locale, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %v, got %v", tt.locale, tt.want, got)
		}
	}
	if _, err := FirstDayForLocale("not a locale!"); err == nil {
		t.Fatalf("expected error for malformed locale")
	}
}

func TestParseWeekday(t *testing.T) {
	for val, want := range map[string]time.Weekday{"mon": time.Monday, "Sunday": time.Sunday, "sa": time.Saturday} {
		got, err := ParseWeekday(val)
		if err != nil || got != want {
			t.Fatalf("%q: expected %v, got %v (%v)", val, want, got, err)
		}
	}
	if _, err := ParseWeekday("x"); err == nil {
		t.Fatalf("expected error")
	}
}
