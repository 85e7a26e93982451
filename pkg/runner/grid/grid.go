// Package grid resolves pointer coordinates on a month page.
package grid

import (
	"context"
	"fmt"
	"strconv"

	"tableflip.dev/calpage/pkg/engine"
	"tableflip.dev/calpage/pkg/monthindex"
	"tableflip.dev/calpage/pkg/printers"
	"tableflip.dev/calpage/pkg/runner/session"
)

// Grid maps (X, Y) on the page at Position to a day. With Tap set the day
// is selected as a tap would.
type Grid struct {
	Session *session.Session
	// Position defaults to the visible page when nil.
	Position *int
	Layout   engine.Layout
	X, Y     float64
	Tap      bool
	Output   string
	Printer  *printers.PrettyPrint
}

type hit struct {
	Position int     `json:"position"`
	Month    string  `json:"month"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Day      int     `json:"day,omitempty"`
	Hit      bool    `json:"hit"`
}

func (g *Grid) Do(ctx context.Context) error {
	e := g.Session.Engine
	pos, ok := e.Pager().VisiblePosition()
	if g.Position != nil {
		pos, ok = *g.Position, true
	}
	if !ok {
		return fmt.Errorf("grid: no visible page, pass a position")
	}
	if !monthindex.Contains(e.Range(), pos) {
		return fmt.Errorf("grid: position %d outside %s", pos, e.Range())
	}

	pp := g.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	if g.Tap {
		if _, ok := e.Tap(pos, g.Layout, g.X, g.Y); !ok {
			return fmt.Errorf("grid: no selectable day at (%g, %g)", g.X, g.Y)
		}
		return g.Session.Finish(pp, g.Output)
	}

	day, found := e.DayAt(pos, g.Layout, g.X, g.Y)
	res := hit{
		Position: pos,
		Month:    monthindex.MonthAt(e.Range(), pos).String(),
		X:        g.X,
		Y:        g.Y,
		Day:      day,
		Hit:      found,
	}
	if g.Output == "json" {
		return pp.JSON(res)
	}
	dayText := "none"
	if found {
		dayText = strconv.Itoa(day)
	}
	pp.Fields(
		[2]string{"Month", res.Month},
		[2]string{"Point", fmt.Sprintf("(%g, %g)", res.X, res.Y)},
		[2]string{"Day", dayText},
	)
	return nil
}
