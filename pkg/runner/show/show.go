// Package show prints the state of a session.
package show

import (
	"context"
	"strconv"

	"tableflip.dev/calpage/pkg/printers"
	"tableflip.dev/calpage/pkg/runner/session"
)

// Show prints the visible month and the session state.
type Show struct {
	Session *session.Session
	Output  string
	Printer *printers.PrettyPrint
}

type state struct {
	Session         string `json:"session"`
	Range           string `json:"range"`
	Min             string `json:"min"`
	Max             string `json:"max,omitempty"`
	VisiblePosition *int   `json:"visible_position,omitempty"`
	VisibleMonth    string `json:"visible_month,omitempty"`
	Selection       string `json:"selection,omitempty"`
	State           string `json:"state"`
	CanGoPrevious   bool   `json:"can_go_previous"`
	CanGoNext       bool   `json:"can_go_next"`
}

func (s *Show) Do(ctx context.Context) error {
	e := s.Session.Engine
	p := e.Pager()
	min, max := e.Bounds()
	st := state{
		Session:       s.Session.Name,
		Range:         e.Range().String(),
		Min:           min.String(),
		Max:           max.String(),
		State:         p.State().String(),
		CanGoPrevious: p.CanGoPrevious(),
		CanGoNext:     p.CanGoNext(),
	}
	if pos, ok := p.VisiblePosition(); ok {
		st.VisiblePosition = &pos
	}
	ym, hasMonth := p.VisibleMonth()
	if hasMonth {
		st.VisibleMonth = ym.String()
	}
	selected, _ := e.Selected()
	st.Selection = selected.String()

	pp := s.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	if s.Output == "json" {
		return pp.JSON(st)
	}

	if hasMonth {
		pp.Month(e.Clock(), printers.MonthView{
			Month:    ym,
			Selected: selected,
			Today:    s.Session.Today(),
		})
	}
	visible := "none"
	if st.VisiblePosition != nil {
		visible = strconv.Itoa(*st.VisiblePosition) + " (" + st.VisibleMonth + ")"
	}
	selection := st.Selection
	if selection == "" {
		selection = "none"
	}
	bound := st.Max
	if bound == "" {
		bound = "unbounded"
	}
	pp.Fields(
		[2]string{"Session", st.Session},
		[2]string{"Range", st.Range},
		[2]string{"Bounds", st.Min + " .. " + bound},
		[2]string{"Visible", visible},
		[2]string{"Selection", selection},
		[2]string{"State", st.State},
	)
	return nil
}
