// Package index answers month index questions against a session's range.
package index

import (
	"context"
	"strconv"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/monthindex"
	"tableflip.dev/calpage/pkg/printers"
	"tableflip.dev/calpage/pkg/runner/session"
)

// Position prints the page position of a month.
type Position struct {
	Session *session.Session
	Month   string
	Output  string
	Printer *printers.PrettyPrint
}

type positionResult struct {
	Month    string `json:"month"`
	Position int    `json:"position"`
	InRange  bool   `json:"in_range"`
}

func (p *Position) Do(ctx context.Context) error {
	ym, err := clock.ParseYearMonth(p.Month)
	if err != nil {
		return err
	}
	r := p.Session.Engine.Range()
	pos := monthindex.PositionOfMonth(r, ym)
	res := positionResult{Month: ym.String(), Position: pos, InRange: monthindex.Contains(r, pos)}

	pp := printer(p.Printer)
	if p.Output == "json" {
		return pp.JSON(res)
	}
	pp.Fields(
		[2]string{"Month", res.Month},
		[2]string{"Position", strconv.Itoa(res.Position)},
		[2]string{"In range", yesNo(res.InRange)},
	)
	return nil
}

// Month prints the month shown at a page position.
type Month struct {
	Session  *session.Session
	Position int
	Output   string
	Printer  *printers.PrettyPrint
}

type monthResult struct {
	Position int    `json:"position"`
	Month    string `json:"month"`
	InRange  bool   `json:"in_range"`
}

func (m *Month) Do(ctx context.Context) error {
	r := m.Session.Engine.Range()
	ym := monthindex.MonthAt(r, m.Position)
	res := monthResult{Position: m.Position, Month: ym.String(), InRange: monthindex.Contains(r, m.Position)}

	pp := printer(m.Printer)
	if m.Output == "json" {
		return pp.JSON(res)
	}
	pp.Fields(
		[2]string{"Position", strconv.Itoa(res.Position)},
		[2]string{"Month", res.Month},
		[2]string{"In range", yesNo(res.InRange)},
	)
	return nil
}

// Size prints the number of pages in the session's range.
type Size struct {
	Session *session.Session
	Output  string
	Printer *printers.PrettyPrint
}

type sizeResult struct {
	Range       string  `json:"range"`
	Size        *uint64 `json:"size,omitempty"`
	Bounded     bool    `json:"bounded"`
	MaxPosition int     `json:"max_position"`
}

func (s *Size) Do(ctx context.Context) error {
	r := s.Session.Engine.Range()
	res := sizeResult{Range: r.String(), Bounded: r.Bounded(), MaxPosition: monthindex.MaxPosition(r)}
	if n, ok := monthindex.Size(r); ok {
		res.Size = &n
	}

	pp := printer(s.Printer)
	if s.Output == "json" {
		return pp.JSON(res)
	}
	size := "unbounded"
	if res.Size != nil {
		size = strconv.FormatUint(*res.Size, 10)
	}
	pp.Fields(
		[2]string{"Range", res.Range},
		[2]string{"Size", size},
		[2]string{"Last position", strconv.Itoa(res.MaxPosition)},
	)
	return nil
}

func printer(pp *printers.PrettyPrint) *printers.PrettyPrint {
	if pp == nil {
		return &printers.PrettyPrint{}
	}
	return pp
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
