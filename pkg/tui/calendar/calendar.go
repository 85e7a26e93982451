// Package calendar renders one month page of the pager.
package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/daygrid"
	"tableflip.dev/calpage/pkg/engine"
)

// Cell geometry of the rendered grid: two digits and a separating space.
const (
	CellWidth  = 3
	CellHeight = 1
)

// Page describes the month being rendered.
type Page struct {
	Month    clock.YearMonth
	Selected clock.Date
	Today    clock.Date
	// Disabled reports days outside the selectable bounds.
	Disabled func(day int) bool
}

// Options controls calendar styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	DayStyle      lipgloss.Style
	DisabledStyle lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
}

const (
	dayColor        = "#eeeeee"
	backgroundColor = "#1c1c1c"

	lightDayColor        = "#262626"
	lightBackgroundColor = "#fafafa"
)

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	return Options{
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		DayStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color(dayColor)),
		DisabledStyle: lipgloss.NewStyle().Foreground(Dim(dayColor, backgroundColor, 0.7)),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
	}
}

// LightOptions is DefaultOptions for terminals with a light background.
func LightOptions() Options {
	o := DefaultOptions()
	o.DayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(lightDayColor))
	o.DisabledStyle = lipgloss.NewStyle().Foreground(Dim(lightDayColor, lightBackgroundColor, 0.7))
	o.SelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("15"))
	return o
}

// Dim blends fg toward bg by t in Lab space. An unparseable bg leaves fg as is.
func Dim(fg, bg string, t float64) colorful.Color {
	a, err := colorful.Hex(fg)
	if err != nil {
		return colorful.Color{}
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return a
	}
	return a.BlendLab(b, t).Clamped()
}

// Header renders the weekday names starting at the clock's first day.
func Header(c *clock.Clock, opts Options) string {
	names := make([]string, 0, daygrid.Columns)
	for _, wd := range c.Weekdays() {
		names = append(names, wd.String()[0:2])
	}
	return opts.HeaderStyle.Render(strings.Join(names, " "))
}

// Rows renders the week rows of p, one string per row.
func Rows(c *clock.Clock, p Page, opts Options) []string {
	start := c.StartWeekdayIndex(p.Month.Year, p.Month.Month)
	days := clock.DaysInMonth(p.Month.Year, p.Month.Month)
	rows := daygrid.Rows(start, days)

	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		cells := make([]string, 0, daygrid.Columns)
		for col := 0; col < daygrid.Columns; col++ {
			day := row*daygrid.Columns + col - start + 1
			if day < 1 || day > days {
				cells = append(cells, "  ")
				continue
			}
			cells = append(cells, renderDay(p, day, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

func renderDay(p Page, day int, opts Options) string {
	text := fmt.Sprintf("%2d", day)

	style := opts.DayStyle
	if p.Disabled != nil && p.Disabled(day) {
		style = opts.DisabledStyle
	}
	if isDay(p.Today, p.Month, day) {
		style = style.Inherit(opts.TodayStyle)
	}
	if isDay(p.Selected, p.Month, day) {
		style = opts.SelectedStyle.Inherit(style)
	}
	return style.Render(text)
}

func isDay(d clock.Date, ym clock.YearMonth, day int) bool {
	return !d.IsZero() && d.YearMonth() == ym && d.Day() == day
}

// Layout returns the engine layout of a grid whose first row is drawn at
// terminal row top and whose first cell starts at column left. Cell anchors
// sit between the two digits so a click on either digit resolves to the day.
func Layout(left, top int) engine.Layout {
	return engine.Layout{
		CellWidth:  CellWidth,
		CellHeight: CellHeight,
		OriginX:    float64(left) + 0.5,
		OriginY:    float64(top),
		Radius:     1,
	}
}
