package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/events"
	"tableflip.dev/calpage/pkg/monthindex"
	"tableflip.dev/calpage/pkg/pager"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, cfg Config) (*Engine, *events.Recorder) {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := &events.Recorder{}
	e.Subscribe(rec.Handle)
	return e, rec
}

func only[T events.Msg](msgs []events.Msg) []T {
	var out []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestNewRejectsInvalidRange(t *testing.T) {
	_, err := New(Config{MinDate: day(2024, time.May, 1), MaxDate: day(2024, time.April, 1)})
	if !errors.Is(err, monthindex.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestNewDefaultsMinimum(t *testing.T) {
	e, _ := newTestEngine(t, Config{})
	min, max := e.Bounds()
	if min.String() != "1900-01-01" || !max.IsZero() {
		t.Fatalf("unexpected default bounds %s..%s", min, max)
	}
}

func TestSelectScenario(t *testing.T) {
	e, rec := newTestEngine(t, Config{MinDate: day(2024, time.January, 1)})

	if clamped := e.Select(day(2024, time.March, 15)); clamped {
		t.Fatalf("date is in range")
	}
	if len(rec.Msgs) != 2 {
		t.Fatalf("expected 2 events, got:\n%s", rec.Describe())
	}
	if sc, ok := rec.Msgs[0].(events.ScrollCommandMsg); !ok || sc.Target != 2 || sc.Animate {
		t.Fatalf("expected jump to 2, got:\n%s", rec.Describe())
	}
	sel, ok := rec.Msgs[1].(events.SelectionChangedMsg)
	if !ok || sel.Date == nil || sel.Date.String() != "2024-03-15" {
		t.Fatalf("expected selection of 2024-03-15, got:\n%s", rec.Describe())
	}
}

func TestDragScenario(t *testing.T) {
	e, rec := newTestEngine(t, Config{MinDate: day(2024, time.January, 1)})
	p := e.Pager()
	p.ReportScrollPositionChanged(2, 0)
	rec.Take()

	p.DragStarted()
	p.ReportScrollPositionChanged(2, 0.6)
	p.DragEnded(0.6, pager.Forward)
	cmds := only[events.ScrollCommandMsg](rec.Take())
	if len(cmds) != 1 || cmds[0].Target != 3 || !cmds[0].Animate {
		t.Fatalf("expected animated scroll to 3, got %+v", cmds)
	}

	p.ReportScrollSettled(3)
	months := only[events.MonthChangedMsg](rec.Msgs)
	if len(months) != 1 || months[0].Month != (clock.YearMonth{Year: 2024, Month: time.April}) {
		t.Fatalf("expected April 2024, got %+v", months)
	}
}

func TestSelectClampsIntoBounds(t *testing.T) {
	e, _ := newTestEngine(t, Config{MinDate: day(2024, time.January, 10), MaxDate: day(2024, time.June, 20)})
	if clamped := e.Select(day(2030, time.January, 1)); !clamped {
		t.Fatalf("expected clamp")
	}
	if d, _ := e.Selected(); d.String() != "2024-06-20" {
		t.Fatalf("expected 2024-06-20, got %s", d)
	}
	if pos, _ := e.SelectedPosition(); pos != 5 {
		t.Fatalf("expected position 5, got %d", pos)
	}
}

func TestSelectDayRespectsBounds(t *testing.T) {
	e, rec := newTestEngine(t, Config{MinDate: day(2024, time.January, 10), MaxDate: day(2024, time.June, 20)})
	if _, ok := e.SelectDay(0, 9); ok {
		t.Fatalf("day before the minimum must be rejected")
	}
	if _, ok := e.SelectDay(5, 21); ok {
		t.Fatalf("day after the maximum must be rejected")
	}
	if len(rec.Msgs) != 0 {
		t.Fatalf("expected no events, got:\n%s", rec.Describe())
	}
	if d, ok := e.SelectDay(5, 20); !ok || d.String() != "2024-06-20" {
		t.Fatalf("expected 2024-06-20, got %s (%v)", d, ok)
	}
}

func TestTap(t *testing.T) {
	e, _ := newTestEngine(t, Config{MinDate: day(2024, time.January, 1), FirstDayOfWeek: time.Sunday})
	l := Layout{CellWidth: 10, CellHeight: 10, OriginX: 0, OriginY: 0, Radius: 2}

	// March 2024 starts on Friday, column 5.
	d, ok := e.Tap(2, l, 50, 0)
	if !ok || d.String() != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %s (%v)", d, ok)
	}
	if _, ok := e.Tap(2, l, 0, 0); ok {
		t.Fatalf("leading blank cell must not select")
	}
	if _, ok := e.Tap(2, l, -3, 0); ok {
		t.Fatalf("outside the padded grid must not select")
	}
}

func TestSetBounds(t *testing.T) {
	e, rec := newTestEngine(t, Config{MinDate: day(2024, time.January, 1)})
	e.Select(day(2024, time.August, 8))
	e.Pager().ReportScrollSettled(7)
	rec.Take()

	if err := e.SetBounds(day(2024, time.January, 1), time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Msgs) != 0 {
		t.Fatalf("identical bounds must be silent, got:\n%s", rec.Describe())
	}

	if err := e.SetBounds(day(2024, time.January, 1), day(2024, time.May, 31)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(only[events.RangeChangedMsg](rec.Msgs)) != 1 {
		t.Fatalf("expected a range event, got:\n%s", rec.Describe())
	}
	if pos, _ := e.Pager().VisiblePosition(); pos != 4 {
		t.Fatalf("expected visible position clamped to 4, got %d", pos)
	}
	if d, _ := e.Selected(); d.String() != "2024-05-31" {
		t.Fatalf("expected selection clamped to 2024-05-31, got %s", d)
	}

	if err := e.SetBounds(day(2024, time.June, 1), day(2024, time.May, 31)); !errors.Is(err, monthindex.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSnapshotRestore(t *testing.T) {
	e, _ := newTestEngine(t, Config{MinDate: day(2024, time.January, 1), MaxDate: day(2026, time.December, 31)})
	e.Select(day(2024, time.March, 15))
	e.Pager().ReportScrollPositionChanged(2, 0)

	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{`"min":"2024-01-01"`, `"max":"2026-12-31"`, `"visible_position":2`, `"selection":"2024-03-15"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Fatalf("expected %s in %s", want, data)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other, rec := newTestEngine(t, Config{})
	if err := other.Restore(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(only[events.MonthChangedMsg](rec.Msgs)) != 0 || len(only[events.SelectionChangedMsg](rec.Msgs)) != 0 {
		t.Fatalf("restore must be silent, got:\n%s", rec.Describe())
	}
	cmds := only[events.ScrollCommandMsg](rec.Msgs)
	if len(cmds) != 1 || cmds[0].Target != 2 || cmds[0].Animate {
		t.Fatalf("expected one jump to 2, got %+v", cmds)
	}
	if d, ok := other.Selected(); !ok || d.String() != "2024-03-15" {
		t.Fatalf("expected restored selection, got %s (%v)", d, ok)
	}
	if pos, ok := other.SelectedPosition(); !ok || pos != 2 {
		t.Fatalf("expected restored selected position 2, got %d (%v)", pos, ok)
	}
	if size, _ := monthindex.Size(other.Range()); size != 36 {
		t.Fatalf("expected 36 months, got %d", size)
	}
}

func TestRestoreEmptySelectionClears(t *testing.T) {
	e, _ := newTestEngine(t, Config{MinDate: day(2024, time.January, 1)})
	e.Select(day(2024, time.March, 15))
	snap := e.Snapshot()
	snap.Selection = nil
	if err := e.Restore(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := e.Selected(); ok {
		t.Fatalf("expected no selection")
	}
	if _, ok := e.Pager().VisiblePosition(); ok {
		t.Fatalf("snapshot without a visible position restores none")
	}
}

func TestRestoreRejectsInvalidSnapshots(t *testing.T) {
	c := clock.New(time.UTC, time.Sunday)
	pos := 40
	sel := c.FromParts(2030, time.January, 1)
	snap := Snapshot{
		Range:           RangeDescriptor{Min: c.FromParts(2024, time.January, 1), Max: c.FromParts(2024, time.December, 31)},
		VisiblePosition: &pos,
		Selection:       &sel,
	}

	e, rec := newTestEngine(t, Config{MinDate: day(2020, time.January, 1)})
	err := e.Restore(snap)
	if !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	if !strings.Contains(err.Error(), "visible position") || !strings.Contains(err.Error(), "selection") {
		t.Fatalf("expected both failures reported, got %v", err)
	}
	if len(rec.Msgs) != 0 {
		t.Fatalf("failed restore must not emit, got:\n%s", rec.Describe())
	}
	if min, _ := e.Bounds(); min.String() != "2020-01-01" {
		t.Fatalf("failed restore must not change bounds, got %s", min)
	}

	if err := e.Restore(Snapshot{}); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot for missing range, got %v", err)
	}
	inverted := Snapshot{Range: RangeDescriptor{Min: c.FromParts(2024, time.May, 1), Max: c.FromParts(2024, time.April, 1)}}
	if err := e.Restore(inverted); !errors.Is(err, monthindex.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestLoggerReceivesEvents(t *testing.T) {
	var buf bytes.Buffer
	e, _ := newTestEngine(t, Config{MinDate: day(2024, time.January, 1), Logger: log.New(&buf, "", 0)})
	e.Select(day(2024, time.February, 2))
	if !strings.Contains(buf.String(), `selection:"2024-02-02"`) {
		t.Fatalf("expected selection in log, got %q", buf.String())
	}
}

func TestRequestVisibleDateClamped(t *testing.T) {
	e, rec := newTestEngine(t, Config{MinDate: day(2024, time.January, 1), MaxDate: day(2024, time.December, 31)})
	if !e.RequestVisibleDate(day(2025, time.March, 1), false) {
		t.Fatalf("expected clamped")
	}
	cmds := only[events.ScrollCommandMsg](rec.Msgs)
	if len(cmds) != 1 || cmds[0].Target != 11 {
		t.Fatalf("expected scroll to 11, got %+v", cmds)
	}
	if e.RequestVisibleMonth(clock.YearMonth{Year: 2024, Month: time.June}, false) {
		t.Fatalf("June 2024 is in range")
	}
}
