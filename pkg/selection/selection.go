// Package selection tracks the selected date of a calendar and keeps the
// pager showing it when the selection comes from outside the visible page.
package selection

import (
	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/events"
	"tableflip.dev/calpage/pkg/monthindex"
	"tableflip.dev/calpage/pkg/pager"
)

// ComponentID is the component name used on emitted events.
const ComponentID events.ComponentID = "selection"

// Origin classifies where a selection came from.
type Origin struct {
	position int
	page     bool
}

// FromAPI is a programmatic selection; the pager scrolls to the date.
func FromAPI() Origin { return Origin{} }

// FromPage is a selection made on the page at position, such as a day tap;
// the pager does not scroll.
func FromPage(position int) Origin { return Origin{position: position, page: true} }

// Page returns the originating page position for page selections.
func (o Origin) Page() (int, bool) { return o.position, o.page }

type selected struct {
	date     clock.Date
	position int
	origin   Origin
}

// Tracker owns the selected date of one calendar widget.
type Tracker struct {
	bus   *events.Bus
	pager *pager.Pager
	clock *clock.Clock
	sel   *selected
}

// New returns a tracker with nothing selected.
func New(c *clock.Clock, p *pager.Pager, bus *events.Bus) *Tracker {
	return &Tracker{clock: c, pager: p, bus: bus}
}

// Selected returns the selected date.
func (t *Tracker) Selected() (clock.Date, bool) {
	if t.sel == nil {
		return clock.Date{}, false
	}
	return t.sel.date, true
}

// SelectedPosition returns the page position of the selected date's month.
func (t *Tracker) SelectedPosition() (int, bool) {
	if t.sel == nil {
		return 0, false
	}
	return t.sel.position, true
}

// Select makes d the selection. API selections also ask the pager to show
// d's month, animating only when the pager already shows a page. Selecting
// the current date again from the same origin does nothing.
func (t *Tracker) Select(d clock.Date, origin Origin) {
	if d.IsZero() {
		t.Clear()
		return
	}
	d = t.clock.FromParts(d.Year(), d.Month(), d.Day())
	same := t.sel != nil && t.sel.date.Equal(d)
	if same && t.sel.origin == origin {
		return
	}
	t.sel = &selected{
		date:     d,
		position: monthindex.PositionOfDate(t.pager.Range(), d),
		origin:   origin,
	}
	if !origin.page {
		_, shown := t.pager.VisiblePosition()
		t.pager.RequestVisibleDate(d, shown)
	}
	if same {
		return
	}
	sel := d
	t.bus.Emit(events.SelectionChangedMsg{Component: ComponentID, Date: &sel})
}

// SelectDay selects day of the month shown at position, as a tap on that
// page does. Days outside the month are rejected.
func (t *Tracker) SelectDay(position, day int) (clock.Date, bool) {
	ym := monthindex.MonthAt(t.pager.Range(), position)
	if day < 1 || day > clock.DaysInMonth(ym.Year, ym.Month) {
		return clock.Date{}, false
	}
	d := t.clock.FromParts(ym.Year, ym.Month, day)
	t.Select(d, FromPage(position))
	return d, true
}

// Clear removes the selection. The visible page does not change.
func (t *Tracker) Clear() {
	if t.sel == nil {
		return
	}
	t.sel = nil
	t.bus.Emit(events.SelectionChangedMsg{Component: ComponentID})
}

// Refresh recomputes the cached position after the pager's range changed.
func (t *Tracker) Refresh() {
	if t.sel == nil {
		return
	}
	t.sel.position = monthindex.PositionOfDate(t.pager.Range(), t.sel.date)
}

// Restore sets the selection without notifying listeners or scrolling.
func (t *Tracker) Restore(d clock.Date) {
	if d.IsZero() {
		t.sel = nil
		return
	}
	d = t.clock.FromParts(d.Year(), d.Month(), d.Day())
	t.sel = &selected{
		date:     d,
		position: monthindex.PositionOfDate(t.pager.Range(), d),
		origin:   FromAPI(),
	}
}
