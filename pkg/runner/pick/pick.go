// Package pick changes the selected date of a session.
package pick

import (
	"context"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/printers"
	"tableflip.dev/calpage/pkg/runner/session"
)

// Select selects Date, "2006-01-02" or "today", scrolling to its month.
type Select struct {
	Session *session.Session
	Date    string
	Output  string
	Printer *printers.PrettyPrint
}

func (s *Select) Do(ctx context.Context) error {
	var d clock.Date
	if strings.EqualFold(strings.TrimSpace(s.Date), "today") {
		d = s.Session.Today()
	} else {
		var err error
		if d, err = s.Session.Engine.Clock().Parse(s.Date); err != nil {
			return err
		}
	}

	pp := s.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	if s.Session.Engine.Select(d.Time()) && s.Output != "json" {
		sel, _ := s.Session.Engine.Selected()
		w := color.New(color.FgYellow)
		pp.Title(w.Sprintf("%s is outside the range, selected %s", d, sel))
	}
	return s.Session.Finish(pp, s.Output)
}

// Clear removes the selection.
type Clear struct {
	Session *session.Session
	Output  string
	Printer *printers.PrettyPrint
}

func (c *Clear) Do(ctx context.Context) error {
	pp := c.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	c.Session.Engine.Clear()
	return c.Session.Finish(pp, c.Output)
}
