package app

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/calpage/pkg/daygrid"
	"tableflip.dev/calpage/pkg/engine"
	"tableflip.dev/calpage/pkg/pager"
	"tableflip.dev/calpage/pkg/store"
	"tableflip.dev/calpage/pkg/tui/calendar"
)

var testNow = time.Date(2020, time.March, 10, 9, 30, 0, 0, time.UTC)

type fakeStore struct {
	snaps map[string]engine.Snapshot
	ch    chan store.Event
}

func newFakeStore() *fakeStore {
	return &fakeStore{snaps: map[string]engine.Snapshot{}}
}

func (f *fakeStore) Save(name string, s engine.Snapshot) error {
	f.snaps[name] = s
	return nil
}

func (f *fakeStore) Load(name string) (engine.Snapshot, bool, error) {
	s, ok := f.snaps[name]
	return s, ok, nil
}

func (f *fakeStore) Delete(name string) error {
	delete(f.snaps, name)
	return nil
}

func (f *fakeStore) Sessions(context.Context) []string {
	names := make([]string, 0, len(f.snaps))
	for k := range f.snaps {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (f *fakeStore) Watch(context.Context) (<-chan store.Event, error) {
	if f.ch == nil {
		f.ch = make(chan store.Event)
		close(f.ch)
	}
	return f.ch, nil
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.Config{
		MinDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		MaxDate: time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

func newModel(t *testing.T, e *engine.Engine, p store.Persistence) *Model {
	t.Helper()
	m := New(context.Background(), Options{
		Engine:      e,
		Persistence: p,
		Now:         func() time.Time { return testNow },
	})
	t.Cleanup(m.Close)
	pump(t, m, m.Init())
	return m
}

// pump runs cmd and feeds every message it produces back into the model
// until no work is left.
func pump(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 500 {
			t.Fatalf("message loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(t *testing.T, m *Model, key rune) {
	t.Helper()
	_, cmd := m.Update(tea.KeyPressMsg{Text: string(key), Code: key})
	pump(t, m, cmd)
}

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewShowsHelpAndWrapsStatus(t *testing.T) {
	m := newModel(t, newEngine(t), nil)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 30})
	m.status = "one two three four five six seven"
	view := stripANSI(m.View())
	if !strings.Contains(view, "quit") {
		t.Fatalf("expected key help in view:\n%s", view)
	}
	if strings.Contains(view, m.status) {
		t.Fatalf("expected status to wrap at width 20:\n%s", view)
	}
	if !strings.Contains(view, "one two three") {
		t.Fatalf("expected wrapped status in view:\n%s", view)
	}
}

func TestInitShowsCurrentMonth(t *testing.T) {
	m := newModel(t, newEngine(t), nil)
	pos, ok := m.engine.Pager().VisiblePosition()
	if !ok || pos != 2 {
		t.Fatalf("visible = %d,%v, want 2", pos, ok)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "March 2020") {
		t.Fatalf("expected month title in view:\n%s", view)
	}
	if !strings.Contains(view, "Su Mo Tu We Th Fr Sa") {
		t.Fatalf("expected weekday header in view:\n%s", view)
	}
}

func TestNextKeyAnimatesToNextMonth(t *testing.T) {
	m := newModel(t, newEngine(t), nil)
	press(t, m, 'l')

	p := m.engine.Pager()
	if pos, _ := p.VisiblePosition(); pos != 3 {
		t.Fatalf("visible = %d, want 3", pos)
	}
	if p.State() != pager.Idle {
		t.Fatalf("state = %v, want idle", p.State())
	}
	if _, pending := p.PendingTarget(); pending {
		t.Fatal("expected no pending target after settle")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "April 2020") {
		t.Fatalf("expected April in view:\n%s", view)
	}
}

func TestPreviousStopsAtRangeStart(t *testing.T) {
	m := newModel(t, newEngine(t), nil)
	for i := 0; i < 4; i++ {
		press(t, m, 'h')
	}
	if pos, _ := m.engine.Pager().VisiblePosition(); pos != 0 {
		t.Fatalf("visible = %d, want 0", pos)
	}
}

func TestClickSelectsDay(t *testing.T) {
	m := newModel(t, newEngine(t), nil)

	g := m.engine.Geometry(2, calendar.Layout(gridLeft, gridTop))
	x, y, ok := daygrid.CellAnchor(g, 14)
	if !ok {
		t.Fatal("no anchor for day 14")
	}
	_, cmd := m.Update(tea.MouseClickMsg{X: int(x), Y: int(y), Button: tea.MouseLeft})
	pump(t, m, cmd)

	d, ok := m.engine.Selected()
	if !ok || d.String() != "2020-03-14" {
		t.Fatalf("selected = %v,%v, want 2020-03-14", d, ok)
	}
	if !strings.Contains(m.last, "SelectionChanged") {
		t.Fatalf("expected selection event in status, got %q", m.last)
	}
}

func TestClickOutsideGridSelectsNothing(t *testing.T) {
	m := newModel(t, newEngine(t), nil)
	_, cmd := m.Update(tea.MouseClickMsg{X: 60, Y: 0, Button: tea.MouseLeft})
	pump(t, m, cmd)
	if _, ok := m.engine.Selected(); ok {
		t.Fatal("expected no selection")
	}
}

func TestWheelTurnsPage(t *testing.T) {
	m := newModel(t, newEngine(t), nil)
	_, cmd := m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	pump(t, m, cmd)
	if pos, _ := m.engine.Pager().VisiblePosition(); pos != 3 {
		t.Fatalf("visible = %d, want 3", pos)
	}
	_, cmd = m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	pump(t, m, cmd)
	if pos, _ := m.engine.Pager().VisiblePosition(); pos != 2 {
		t.Fatalf("visible = %d, want 2", pos)
	}
}

func TestTodayAndWeekMoves(t *testing.T) {
	m := newModel(t, newEngine(t), nil)
	press(t, m, 't')
	if d, _ := m.engine.Selected(); d.String() != "2020-03-10" {
		t.Fatalf("selected = %v, want today", d)
	}
	for i := 0; i < 3; i++ {
		press(t, m, 'j')
	}
	d, _ := m.engine.Selected()
	if d.String() != "2020-03-31" {
		t.Fatalf("selected = %v, want 2020-03-31", d)
	}
	press(t, m, 'j')
	if pos, _ := m.engine.Pager().VisiblePosition(); pos != 3 {
		t.Fatalf("selecting into April should scroll there, visible = %d", pos)
	}
	press(t, m, 'x')
	if _, ok := m.engine.Selected(); ok {
		t.Fatal("expected selection cleared")
	}
}

func TestQuitSavesSession(t *testing.T) {
	fs := newFakeStore()
	m := newModel(t, newEngine(t), fs)
	press(t, m, 't')

	_, cmd := m.Update(tea.KeyPressMsg{Text: "q", Code: 'q'})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	snap, ok := fs.snaps[store.DefaultSession]
	if !ok {
		t.Fatal("expected session saved on quit")
	}
	if snap.Selection == nil || snap.Selection.String() != "2020-03-10" {
		t.Fatalf("saved selection = %v", snap.Selection)
	}
	if snap.VisiblePosition == nil || *snap.VisiblePosition != 2 {
		t.Fatalf("saved position = %v", snap.VisiblePosition)
	}
}

func TestWatchReloadsSession(t *testing.T) {
	other := newEngine(t)
	other.Select(time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC))
	other.Pager().ReportScrollSettled(5)

	fs := newFakeStore()
	fs.snaps[store.DefaultSession] = other.Snapshot()
	fs.ch = make(chan store.Event, 1)
	fs.ch <- store.Event{Type: store.EventSessionChanged, Session: store.DefaultSession}
	close(fs.ch)

	m := newModel(t, newEngine(t), fs)

	if pos, _ := m.engine.Pager().VisiblePosition(); pos != 5 {
		t.Fatalf("visible = %d, want 5", pos)
	}
	if d, _ := m.engine.Selected(); d.String() != "2020-06-15" {
		t.Fatalf("selected = %v, want 2020-06-15", d)
	}
	if !strings.Contains(m.status, "Reloaded") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestWatchIgnoresOtherSessions(t *testing.T) {
	fs := newFakeStore()
	fs.ch = make(chan store.Event, 1)
	fs.ch <- store.Event{Type: store.EventSessionChanged, Session: "other"}
	close(fs.ch)

	m := newModel(t, newEngine(t), fs)
	if strings.Contains(m.status, "Reloaded") {
		t.Fatalf("unexpected reload: %q", m.status)
	}
}

func TestEscCancelsSettle(t *testing.T) {
	m := newModel(t, newEngine(t), nil)
	// Start a scroll without running its animation frames.
	_, _ = m.Update(tea.KeyPressMsg{Text: "l", Code: 'l'})
	p := m.engine.Pager()
	if p.State() != pager.Settling {
		t.Fatalf("state = %v, want settling", p.State())
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	pump(t, m, cmd)
	if p.State() != pager.Idle {
		t.Fatalf("state = %v, want idle", p.State())
	}
	if pos, _ := p.VisiblePosition(); pos != 2 {
		t.Fatalf("visible = %d, want 2", pos)
	}
}

func TestLightPalette(t *testing.T) {
	m := New(context.Background(), Options{
		Engine: newEngine(t),
		Now:    func() time.Time { return testNow },
		Light:  true,
	})
	t.Cleanup(m.Close)
	want := calendar.LightOptions().DisabledStyle.GetForeground()
	if got := m.calendarOpts.DisabledStyle.GetForeground(); got != want {
		t.Fatalf("disabled foreground = %v, want %v", got, want)
	}
}
