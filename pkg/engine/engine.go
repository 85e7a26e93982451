// Package engine wires the clock, month index, pager and selection tracker
// of one calendar widget behind a single API.
package engine

import (
	"log"
	"time"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/daygrid"
	"tableflip.dev/calpage/pkg/events"
	"tableflip.dev/calpage/pkg/monthindex"
	"tableflip.dev/calpage/pkg/pager"
	"tableflip.dev/calpage/pkg/selection"
)

// DefaultMinYear is the first year shown when no minimum date is configured.
const DefaultMinYear = 1900

// Config configures a new engine.
type Config struct {
	// Location used to read calendar fields; nil means UTC.
	Location *time.Location
	// FirstDayOfWeek is shown in the first grid column.
	FirstDayOfWeek time.Weekday
	// MinDate is the first selectable date; zero means DefaultMinYear-01-01.
	MinDate time.Time
	// MaxDate is the last selectable date; zero means unbounded.
	MaxDate time.Time
	// Logger, when set, receives a line per emitted event.
	Logger *log.Logger
}

// Engine is the calendar state of one widget. It is not safe for concurrent
// use; the host calls it from its UI loop.
type Engine struct {
	clock   *clock.Clock
	bounds  *monthindex.Bounds
	bus     *events.Bus
	pager   *pager.Pager
	tracker *selection.Tracker
}

// New builds an engine. It fails with monthindex.ErrInvalidRange when the
// bounds are invalid.
func New(cfg Config) (*Engine, error) {
	c := clock.New(cfg.Location, cfg.FirstDayOfWeek)
	var max clock.Date
	if !cfg.MaxDate.IsZero() {
		max = c.Date(cfg.MaxDate)
	}
	min := c.FromParts(DefaultMinYear, time.January, 1)
	if !cfg.MinDate.IsZero() {
		min = c.Date(cfg.MinDate)
	}
	bounds, err := monthindex.NewBounds(min, max)
	if err != nil {
		return nil, err
	}
	bus := events.NewBus(cfg.Logger)
	p := pager.New(bounds.Range(), bus)
	return &Engine{
		clock:   c,
		bounds:  bounds,
		bus:     bus,
		pager:   p,
		tracker: selection.New(c, p, bus),
	}, nil
}

// Clock returns the engine's clock.
func (e *Engine) Clock() *clock.Clock { return e.clock }

// Pager returns the engine's pager for gesture reports.
func (e *Engine) Pager() *pager.Pager { return e.pager }

// Range returns the current month range.
func (e *Engine) Range() monthindex.Range { return e.bounds.Range() }

// Bounds returns the min and max dates; max is zero when unbounded.
func (e *Engine) Bounds() (clock.Date, clock.Date) { return e.bounds.Min(), e.bounds.Max() }

// Subscribe registers h for every event the engine emits.
func (e *Engine) Subscribe(h events.Handler) func() { return e.bus.Subscribe(h) }

// SetBounds changes the selectable dates; a zero min means DefaultMinYear and
// a zero max means unbounded. The visible page and the selection are clamped
// into the new bounds.
func (e *Engine) SetBounds(min, max time.Time) error {
	lo := e.clock.FromParts(DefaultMinYear, time.January, 1)
	if !min.IsZero() {
		lo = e.clock.Date(min)
	}
	var hi clock.Date
	if !max.IsZero() {
		hi = e.clock.Date(max)
	}
	changed, err := e.bounds.Set(lo, hi)
	if err != nil {
		return err
	}
	if changed {
		e.pager.SetRange(e.bounds.Range())
		e.tracker.Refresh()
	}
	if d, ok := e.tracker.Selected(); ok {
		if clamped, moved := e.bounds.ClampDate(d); moved {
			e.tracker.Select(clamped, selection.FromAPI())
		}
	}
	return nil
}

// Select selects the day containing t, clamped into the bounds, and scrolls
// to it. It reports whether t had to be clamped.
func (e *Engine) Select(t time.Time) bool {
	d, clamped := e.bounds.ClampDate(e.clock.Date(t))
	e.tracker.Select(d, selection.FromAPI())
	return clamped
}

// SelectDay selects day on the page at position, as a tap does.
func (e *Engine) SelectDay(position, day int) (clock.Date, bool) {
	ym := monthindex.MonthAt(e.Range(), position)
	d := e.clock.FromParts(ym.Year, ym.Month, day)
	if day < 1 || day > clock.DaysInMonth(ym.Year, ym.Month) || !e.inBounds(d) {
		return clock.Date{}, false
	}
	return e.tracker.SelectDay(position, day)
}

func (e *Engine) inBounds(d clock.Date) bool {
	_, moved := e.bounds.ClampDate(d)
	return !moved
}

// Clear removes the selection.
func (e *Engine) Clear() { e.tracker.Clear() }

// Selected returns the selected date.
func (e *Engine) Selected() (clock.Date, bool) { return e.tracker.Selected() }

// SelectedPosition returns the page of the selected date.
func (e *Engine) SelectedPosition() (int, bool) { return e.tracker.SelectedPosition() }

// RequestVisibleDate scrolls to the month containing t. It reports whether
// the month was outside the range.
func (e *Engine) RequestVisibleDate(t time.Time, animate bool) bool {
	return e.pager.RequestVisibleDate(e.clock.Date(t), animate)
}

// RequestVisibleMonth scrolls to ym. It reports whether ym was outside the
// range.
func (e *Engine) RequestVisibleMonth(ym clock.YearMonth, animate bool) bool {
	return e.pager.RequestVisibleMonth(ym, animate)
}

// Layout is the pixel layout a host uses for every month page.
type Layout struct {
	CellWidth  float64
	CellHeight float64
	OriginX    float64
	OriginY    float64
	Radius     float64
}

// Geometry returns the grid geometry of the page at position.
func (e *Engine) Geometry(position int, l Layout) daygrid.Geometry {
	ym := monthindex.MonthAt(e.Range(), position)
	return daygrid.NewGeometry(e.clock, ym, l.CellWidth, l.CellHeight, l.OriginX, l.OriginY, l.Radius)
}

// DayAt returns the day under (x, y) on the page at position.
func (e *Engine) DayAt(position int, l Layout, x, y float64) (int, bool) {
	return daygrid.DayAt(e.Geometry(position, l), x, y)
}

// Tap selects the day under (x, y) on the page at position.
func (e *Engine) Tap(position int, l Layout, x, y float64) (clock.Date, bool) {
	day, ok := e.DayAt(position, l, x, y)
	if !ok {
		return clock.Date{}, false
	}
	return e.SelectDay(position, day)
}
