// Package events defines the notifications the calendar engine emits and a
// synchronous bus to deliver them to the host.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/calpage/pkg/clock"
)

// ComponentID identifies the engine component emitting an event.
type ComponentID string

// Msg is implemented by every event.
type Msg interface {
	Describe() string
}

// MonthChangedMsg fires when the visible month changes.
type MonthChangedMsg struct {
	Component ComponentID
	Month     clock.YearMonth
	Position  int
}

// Describe renders the change for logs.
func (m MonthChangedMsg) Describe() string {
	return fmt.Sprintf(`month:%q position:%d`, m.Month, m.Position)
}

// YearChangedMsg fires together with a MonthChangedMsg when the year of the
// visible month changes.
type YearChangedMsg struct {
	Component ComponentID
	Year      int
}

// Describe renders the change for logs.
func (m YearChangedMsg) Describe() string {
	return fmt.Sprintf(`year:%d`, m.Year)
}

// SelectionChangedMsg carries the new selection. A nil Date means the
// selection was cleared.
type SelectionChangedMsg struct {
	Component ComponentID
	Date      *clock.Date
}

// Selected returns the selected date, if any.
func (m SelectionChangedMsg) Selected() (clock.Date, bool) {
	if m.Date == nil {
		return clock.Date{}, false
	}
	return *m.Date, true
}

// Describe renders the selection for logs.
func (m SelectionChangedMsg) Describe() string {
	if m.Date == nil {
		return `selection:"cleared"`
	}
	return fmt.Sprintf(`selection:%q`, m.Date.String())
}

// ScrollCommandMsg asks the host to scroll to a page. The visible position
// only changes once the host reports back.
type ScrollCommandMsg struct {
	Component ComponentID
	Target    int
	Animate   bool
}

// Describe renders the command for logs.
func (m ScrollCommandMsg) Describe() string {
	return fmt.Sprintf(`target:%d animate:%v`, m.Target, m.Animate)
}

// RangeChangedMsg fires when the pager's month range changes.
type RangeChangedMsg struct {
	Component ComponentID
	Range     fmt.Stringer
}

// Describe renders the range for logs.
func (m RangeChangedMsg) Describe() string {
	return fmt.Sprintf(`range:%q`, m.Range)
}

// StateChangedMsg fires on pager state machine transitions.
type StateChangedMsg struct {
	Component ComponentID
	From      string
	To        string
}

// Describe renders the transition for logs.
func (m StateChangedMsg) Describe() string {
	return fmt.Sprintf(`from:%q to:%q`, m.From, m.To)
}

// Cmd wraps msg into a tea.Cmd for Bubble Tea hosts.
func Cmd(msg Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
