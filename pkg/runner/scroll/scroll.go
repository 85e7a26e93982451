// Package scroll moves the visible page of a session.
package scroll

import (
	"context"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/monthindex"
	"tableflip.dev/calpage/pkg/pager"
	"tableflip.dev/calpage/pkg/printers"
	"tableflip.dev/calpage/pkg/runner/session"
)

// Scroll requests a month, a position or a number of pages forward
// (negative for backward), in that order of precedence.
type Scroll struct {
	Session  *session.Session
	Month    string
	Position *int
	Pages    int
	Animate  bool
	Output   string
	Printer  *printers.PrettyPrint
}

func (s *Scroll) Do(ctx context.Context) error {
	p := s.Session.Engine.Pager()
	switch {
	case s.Month != "":
		ym, err := clock.ParseYearMonth(s.Month)
		if err != nil {
			return err
		}
		s.Session.Engine.RequestVisibleMonth(ym, s.Animate)
	case s.Position != nil:
		if s.Animate {
			p.RequestVisibleMonth(monthindex.MonthAt(p.Range(), *s.Position), true)
		} else {
			p.JumpTo(*s.Position)
		}
	default:
		for i := 0; i < s.Pages; i++ {
			p.Next()
		}
		for i := 0; i > s.Pages; i-- {
			p.Previous()
		}
	}
	return s.Session.Finish(printer(s.Printer), s.Output)
}

// Drag plays a user drag that ends with Fraction of the page dragged past in
// Direction, then lets the pager settle.
type Drag struct {
	Session   *session.Session
	Fraction  float64
	Direction pager.Direction
	Output    string
	Printer   *printers.PrettyPrint
}

func (d *Drag) Do(ctx context.Context) error {
	p := d.Session.Engine.Pager()
	origin, _ := p.VisiblePosition()
	p.DragStarted()
	if d.Direction == pager.Backward && origin > 0 {
		p.ReportScrollPositionChanged(origin-1, 1-d.Fraction)
	} else {
		p.ReportScrollPositionChanged(origin, d.Fraction)
	}
	p.DragEnded(d.Fraction, d.Direction)
	return d.Session.Finish(printer(d.Printer), d.Output)
}

func printer(pp *printers.PrettyPrint) *printers.PrettyPrint {
	if pp == nil {
		return &printers.PrettyPrint{}
	}
	return pp
}
