package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/daygrid"
)

const width = len("11 12 13 14 15 16 17") // an example week

// MonthView is what Month renders: the month shown and the days to
// highlight. Zero dates highlight nothing.
type MonthView struct {
	Month    clock.YearMonth
	Selected clock.Date
	Today    clock.Date
	Position int
}

// Month writes a one month grid with columns starting on the clock's first
// day of week.
func (pp *PrettyPrint) Month(c *clock.Clock, v MonthView) {
	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)
	title := fmt.Sprintf("%s %d", v.Month.Month, v.Month.Year)
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), title)

	hf := color.New(color.Faint)
	heads := make([]string, 0, daygrid.Columns)
	for _, wd := range c.Weekdays() {
		heads = append(heads, wd.String()[0:2])
	}
	_, _ = hf.Fprintln(w, strings.Join(heads, " "))

	for _, line := range monthRows(c, v) {
		_, _ = fmt.Fprintln(w, line)
	}
	_, _ = fmt.Fprintln(w, "")
}

// monthRows returns the grid lines of the month, one per week.
func monthRows(c *clock.Clock, v MonthView) []string {
	plain := color.New()
	sel := color.New(color.Bold, color.FgHiWhite, color.ReverseVideo)
	today := color.New(color.Bold, color.Underline)

	start := c.StartWeekdayIndex(v.Month.Year, v.Month.Month)
	days := clock.DaysInMonth(v.Month.Year, v.Month.Month)
	rows := daygrid.Rows(start, days)

	lines := make([]string, 0, rows)
	var sb strings.Builder
	// Pad out the start of the month.
	sb.WriteString(strings.Repeat("   ", start))
	col := start
	for day := 1; day <= days; day++ {
		p := plain
		switch {
		case isDay(v.Selected, v.Month, day):
			p = sel
		case isDay(v.Today, v.Month, day):
			p = today
		}
		sb.WriteString(p.Sprintf("%2d", day))
		col++
		if col == daygrid.Columns {
			lines = append(lines, sb.String())
			sb.Reset()
			col = 0
			continue
		}
		sb.WriteString(" ")
	}
	if sb.Len() > 0 {
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

func isDay(d clock.Date, ym clock.YearMonth, day int) bool {
	return !d.IsZero() && d.YearMonth() == ym && d.Day() == day
}
