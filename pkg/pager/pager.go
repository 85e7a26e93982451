// Package pager tracks which month page is visible and turns drag gestures
// into settle commands.
package pager

import (
	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/events"
	"tableflip.dev/calpage/pkg/monthindex"
)

// ComponentID is the component name used on emitted events.
const ComponentID events.ComponentID = "pager"

// State is the pager's gesture state.
type State int

const (
	// Idle means no drag or settle is in flight.
	Idle State = iota
	// Tracking means the user is dragging.
	Tracking
	// Settling means a scroll animation toward a target is in flight.
	Settling
)

func (s State) String() string {
	switch s {
	case Tracking:
		return "tracking"
	case Settling:
		return "settling"
	}
	return "idle"
}

// Direction is the direction of a drag in page order.
type Direction int

const (
	// Backward drags toward earlier months.
	Backward Direction = -1
	// Forward drags toward later months.
	Forward Direction = 1
)

// SettleThreshold is the dragged-past fraction at which a drag moves to the
// neighbouring page. A fraction equal to the threshold moves.
const SettleThreshold = 0.5

// SettleTarget returns the page a drag that started on origin settles on.
func SettleTarget(origin int, fraction float64, dir Direction) int {
	if fraction < 0 {
		fraction = -fraction
	}
	if fraction >= SettleThreshold && dir != 0 {
		if dir < 0 {
			return origin - 1
		}
		return origin + 1
	}
	return origin
}

// Pager owns the visible position of one calendar widget.
type Pager struct {
	bus *events.Bus
	rng monthindex.Range

	state State

	visible    int
	hasVisible bool
	offset     float64
	month      clock.YearMonth

	notified    clock.YearMonth
	hasNotified bool

	pending        int
	hasPending     bool
	pendingAnimate bool

	dragOrigin int
}

// New returns an idle pager over r with no visible position.
func New(r monthindex.Range, bus *events.Bus) *Pager {
	return &Pager{rng: r, bus: bus}
}

// Range returns the current month range.
func (p *Pager) Range() monthindex.Range { return p.rng }

// State returns the gesture state.
func (p *Pager) State() State { return p.state }

// VisiblePosition returns the topmost visible page, once the host has
// reported one.
func (p *Pager) VisiblePosition() (int, bool) { return p.visible, p.hasVisible }

// VisibleMonth returns the month of the visible page.
func (p *Pager) VisibleMonth() (clock.YearMonth, bool) { return p.month, p.hasVisible }

// Offset returns the last reported fraction of the visible page scrolled out.
func (p *Pager) Offset() float64 { return p.offset }

// PendingTarget returns the target of the last scroll command the host has
// not yet confirmed.
func (p *Pager) PendingTarget() (int, bool) { return p.pending, p.hasPending }

// SetRange replaces the month range. It reports whether the range changed;
// the visible position is clamped into the new range and the visible month
// re-derived.
func (p *Pager) SetRange(r monthindex.Range) bool {
	if r == p.rng {
		return false
	}
	p.rng = r
	p.bus.Emit(events.RangeChangedMsg{Component: ComponentID, Range: r})
	if p.hasPending {
		p.pending, _ = monthindex.Clamp(r, p.pending)
	}
	if p.hasVisible {
		pos, _ := monthindex.Clamp(r, p.visible)
		p.apply(pos, p.offset)
	}
	return true
}

// ReportScrollPositionChanged records the topmost visible page and the
// fraction of it scrolled out of view.
func (p *Pager) ReportScrollPositionChanged(topmost int, fraction float64) {
	pos, _ := monthindex.Clamp(p.rng, topmost)
	p.apply(pos, clampFraction(fraction))
	if p.hasPending && p.pending == pos && p.offset == 0 && p.state != Settling {
		p.hasPending = false
	}
}

// ReportScrollSettled records the page a settle animation or jump ended on.
func (p *Pager) ReportScrollSettled(position int) {
	pos, _ := monthindex.Clamp(p.rng, position)
	p.hasPending = false
	p.apply(pos, 0)
	p.setState(Idle)
}

// DragStarted marks the start of a user drag. A drag interrupts a settle.
func (p *Pager) DragStarted() {
	if p.state == Tracking {
		return
	}
	p.dragOrigin = p.visible
	p.hasPending = false
	p.setState(Tracking)
}

// DragEnded applies the settle rule to a finished drag and issues an
// animated scroll to the chosen page, which it returns. Outside of a drag it
// does nothing and returns the visible position.
func (p *Pager) DragEnded(fraction float64, dir Direction) int {
	if p.state != Tracking {
		return p.visible
	}
	target, _ := monthindex.Clamp(p.rng, SettleTarget(p.dragOrigin, fraction, dir))
	p.setState(Settling)
	p.command(target, true)
	return target
}

// Cancel abandons an in-flight settle without moving.
func (p *Pager) Cancel() {
	if p.state != Settling {
		return
	}
	p.hasPending = false
	p.setState(Idle)
}

// RequestVisibleMonth asks the host to show ym. Months outside the range are
// clamped to the nearest end, reported by the result. Requests for the page
// already shown or already requested are ignored.
func (p *Pager) RequestVisibleMonth(ym clock.YearMonth, animate bool) bool {
	target, clamped := monthindex.Clamp(p.rng, monthindex.PositionOfMonth(p.rng, ym))
	p.request(target, animate)
	return clamped
}

// RequestVisibleDate asks the host to show the month containing d.
func (p *Pager) RequestVisibleDate(d clock.Date, animate bool) bool {
	return p.RequestVisibleMonth(d.YearMonth(), animate)
}

// JumpTo asks the host to show position without animation.
func (p *Pager) JumpTo(position int) bool {
	target, clamped := monthindex.Clamp(p.rng, position)
	p.request(target, false)
	return clamped
}

// Next requests the page after the visible one.
func (p *Pager) Next() bool {
	return p.step(1)
}

// Previous requests the page before the visible one.
func (p *Pager) Previous() bool {
	return p.step(-1)
}

func (p *Pager) step(delta int) bool {
	base := p.visible
	if p.hasPending {
		base = p.pending
	}
	target, clamped := monthindex.Clamp(p.rng, base+delta)
	p.request(target, true)
	return clamped
}

// CanGoNext reports whether a page exists after the visible one.
func (p *Pager) CanGoNext() bool {
	return monthindex.Contains(p.rng, p.visible+1)
}

// CanGoPrevious reports whether a page exists before the visible one.
func (p *Pager) CanGoPrevious() bool {
	return p.visible > 0
}

// Reset replaces the range and forgets the visible position, the pending
// target and the last notified month. It emits nothing.
func (p *Pager) Reset(r monthindex.Range) {
	*p = Pager{bus: p.bus, rng: r}
}

// Restore sets the visible position without notifying month or year
// listeners and asks the host to jump there.
func (p *Pager) Restore(position int) {
	pos, _ := monthindex.Clamp(p.rng, position)
	p.notified, p.hasNotified = monthindex.MonthAt(p.rng, pos), true
	p.apply(pos, 0)
	p.hasPending = false
	p.setState(Idle)
	p.command(pos, false)
}

func (p *Pager) request(target int, animate bool) {
	if p.hasPending {
		// A jump still overrides an animated scroll to the same page.
		if p.pending == target && (animate || !p.pendingAnimate) {
			return
		}
	} else if p.hasVisible && p.visible == target && p.offset == 0 {
		return
	}
	if animate {
		p.setState(Settling)
	} else {
		p.setState(Idle)
	}
	p.command(target, animate)
}

func (p *Pager) command(target int, animate bool) {
	p.pending, p.hasPending, p.pendingAnimate = target, true, animate
	p.bus.Emit(events.ScrollCommandMsg{Component: ComponentID, Target: target, Animate: animate})
}

func (p *Pager) setState(s State) {
	if s == p.state {
		return
	}
	from := p.state
	p.state = s
	p.bus.Emit(events.StateChangedMsg{Component: ComponentID, From: from.String(), To: s.String()})
}

// apply is the single place the visible month is derived from the visible
// position.
func (p *Pager) apply(position int, fraction float64) {
	p.visible, p.hasVisible = position, true
	p.offset = fraction
	p.month = monthindex.MonthAt(p.rng, position)

	if p.hasNotified && p.notified == p.month {
		return
	}
	prev, hadPrev := p.notified, p.hasNotified
	p.notified, p.hasNotified = p.month, true
	p.bus.Emit(events.MonthChangedMsg{Component: ComponentID, Month: p.month, Position: position})
	if !hadPrev || prev.Year != p.month.Year {
		p.bus.Emit(events.YearChangedMsg{Component: ComponentID, Year: p.month.Year})
	}
}

func clampFraction(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f >= 1:
		return 0.999999
	}
	return f
}
