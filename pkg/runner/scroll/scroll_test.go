package scroll

import (
	"bytes"
	"context"
	"testing"

	"tableflip.dev/calpage/pkg/pager"
	"tableflip.dev/calpage/pkg/printers"
	"tableflip.dev/calpage/pkg/runner/session"
	"tableflip.dev/calpage/pkg/runner/session/sessiontest"
)

func visible(t *testing.T, s *session.Session) int {
	t.Helper()
	pos, ok := s.Engine.Pager().VisiblePosition()
	if !ok {
		t.Fatal("no visible position")
	}
	return pos
}

func quiet() *printers.PrettyPrint {
	return &printers.PrettyPrint{Out: &bytes.Buffer{}}
}

func TestScroll(t *testing.T) {
	position := func(v int) *int { return &v }
	tests := map[string]struct {
		scroll Scroll
		want   int
	}{
		"month":            {scroll: Scroll{Month: "2020-08"}, want: 7},
		"month clamped":    {scroll: Scroll{Month: "2024-01"}, want: 11},
		"position":         {scroll: Scroll{Position: position(5)}, want: 5},
		"position animate": {scroll: Scroll{Position: position(9), Animate: true}, want: 9},
		"forward pages":    {scroll: Scroll{Pages: 3}, want: 5},
		"backward pages":   {scroll: Scroll{Pages: -5}, want: 0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := sessiontest.Open(t)
			tc.scroll.Session = s
			tc.scroll.Printer = quiet()
			if err := tc.scroll.Do(context.Background()); err != nil {
				t.Fatalf("scroll: %v", err)
			}
			if got := visible(t, s); got != tc.want {
				t.Fatalf("visible = %d, want %d", got, tc.want)
			}
			if s.Engine.Pager().State() != pager.Idle {
				t.Fatalf("state = %v, want idle", s.Engine.Pager().State())
			}
		})
	}
}

func TestScrollBadMonth(t *testing.T) {
	s := sessiontest.Open(t)
	if err := (&Scroll{Session: s, Month: "march", Printer: quiet()}).Do(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDrag(t *testing.T) {
	tests := map[string]struct {
		fraction float64
		dir      pager.Direction
		want     int
	}{
		"past half forward":  {fraction: 0.6, dir: pager.Forward, want: 3},
		"exactly half":       {fraction: 0.5, dir: pager.Forward, want: 3},
		"short forward":      {fraction: 0.3, dir: pager.Forward, want: 2},
		"past half backward": {fraction: 0.7, dir: pager.Backward, want: 1},
		"short backward":     {fraction: 0.2, dir: pager.Backward, want: 2},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := sessiontest.Open(t)
			d := Drag{Session: s, Fraction: tc.fraction, Direction: tc.dir, Printer: quiet()}
			if err := d.Do(context.Background()); err != nil {
				t.Fatalf("drag: %v", err)
			}
			if got := visible(t, s); got != tc.want {
				t.Fatalf("visible = %d, want %d", got, tc.want)
			}
		})
	}
}
