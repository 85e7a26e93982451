// Package app hosts the calendar engine in a Bubble Tea program: it renders
// the visible month, plays scroll commands as short animations and turns
// keys, clicks and wheel notches into engine calls.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/daygrid"
	"tableflip.dev/calpage/pkg/engine"
	"tableflip.dev/calpage/pkg/events"
	"tableflip.dev/calpage/pkg/monthindex"
	"tableflip.dev/calpage/pkg/pager"
	"tableflip.dev/calpage/pkg/store"
	"tableflip.dev/calpage/pkg/tui/calendar"
)

const (
	gridLeft = 2
	gridTop  = 2

	scrollFrames = 4
	frameDelay   = 30 * time.Millisecond
)

// Options configures the UI.
type Options struct {
	Engine *engine.Engine
	// Session is the name the engine state is saved under on quit.
	Session string
	// Persistence is optional; without it nothing is saved or watched.
	Persistence store.Persistence
	// Now defaults to time.Now.
	Now func() time.Time
	// Light selects the calendar palette for light terminal backgrounds.
	Light bool
}

// Model contains UI state.
type Model struct {
	ctx         context.Context
	engine      *engine.Engine
	session     string
	persistence store.Persistence
	now         func() time.Time

	inbox       *[]events.Msg
	unsubscribe func()

	scrollID int

	width  int
	height int

	status  string
	last    string
	saveErr error

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	keys keyMap
	help help.Model

	calendarOpts calendar.Options
	titleStyle   lipgloss.Style
	arrowStyle   lipgloss.Style
	faintStyle   lipgloss.Style
}

// New creates a UI model hosting opts.Engine.
func New(ctx context.Context, opts Options) *Model {
	m := &Model{
		ctx:          ctx,
		engine:       opts.Engine,
		session:      opts.Session,
		persistence:  opts.Persistence,
		now:          opts.Now,
		inbox:        &[]events.Msg{},
		keys:         defaultKeyMap(),
		help:         help.New(),
		calendarOpts: calendar.DefaultOptions(),
		titleStyle:   lipgloss.NewStyle().Bold(true),
		arrowStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		faintStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
	if m.now == nil {
		m.now = time.Now
	}
	if opts.Light {
		m.calendarOpts = calendar.LightOptions()
	}
	if m.session == "" {
		m.session = store.DefaultSession
	}
	inbox := m.inbox
	m.unsubscribe = m.engine.Subscribe(func(msg events.Msg) {
		*inbox = append(*inbox, msg)
	})
	if _, ok := m.engine.Pager().VisiblePosition(); !ok {
		m.engine.RequestVisibleDate(m.now(), false)
	}
	return m
}

// ErrNotTerminal is returned by Run when stdout is not a terminal.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

// Run launches the Bubble Tea program and saves the session on quit.
func Run(ctx context.Context, opts Options) error {
	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}
	opts.Light = !termenv.HasDarkBackground()
	m := New(ctx, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.saveErr
}

// Close detaches the model from the engine and stops watching the store.
func (m *Model) Close() {
	m.stopWatch()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := m.drain()
	cmds = append(cmds, startWatchCmd(m.ctx, m.persistence))
	return tea.Batch(cmds...)
}

// drain turns the events the engine emitted since the last call into
// commands, so they come back through Update in order.
func (m *Model) drain() []tea.Cmd {
	msgs := *m.inbox
	*m.inbox = nil
	cmds := make([]tea.Cmd, 0, len(msgs))
	for _, msg := range msgs {
		cmds = append(cmds, events.Cmd(msg))
	}
	return cmds
}

type scrollFrameMsg struct {
	id     int
	frame  int
	from   int
	target int
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			m.tap(mouse.X, mouse.Y)
		}
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelDown:
			m.fling(pager.Forward)
		case tea.MouseWheelUp:
			m.fling(pager.Backward)
		}
	case events.ScrollCommandMsg:
		m.last = describe(msg)
		if cmd := m.startScroll(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case scrollFrameMsg:
		if cmd := m.scrollFrame(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case events.Msg:
		m.last = describe(msg)
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "ERR: watch " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	}

	cmds = append(cmds, m.drain()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	p := m.engine.Pager()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.save()
		return tea.Quit
	case key.Matches(msg, m.keys.Next):
		p.Next()
	case key.Matches(msg, m.keys.Previous):
		p.Previous()
	case key.Matches(msg, m.keys.First):
		p.JumpTo(0)
	case key.Matches(msg, m.keys.Last):
		if r := m.engine.Range(); r.Bounded() {
			p.JumpTo(monthindex.MaxPosition(r))
		}
	case key.Matches(msg, m.keys.Today):
		m.engine.Select(m.now())
	case key.Matches(msg, m.keys.WeekDown):
		m.moveSelection(7)
	case key.Matches(msg, m.keys.WeekUp):
		m.moveSelection(-7)
	case key.Matches(msg, m.keys.DayNext):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.DayPrev):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Clear):
		m.engine.Clear()
	case key.Matches(msg, m.keys.Cancel):
		if p.State() == pager.Settling {
			p.Cancel()
			if pos, ok := p.VisiblePosition(); ok {
				p.ReportScrollPositionChanged(pos, 0)
			}
		}
	}
	return nil
}

func (m *Model) moveSelection(days int) {
	d, ok := m.engine.Selected()
	if !ok {
		m.engine.Select(m.now())
		return
	}
	m.engine.Select(d.Time().AddDate(0, 0, days))
}

func (m *Model) tap(x, y int) {
	pos, ok := m.engine.Pager().VisiblePosition()
	if !ok {
		return
	}
	if _, ok := m.engine.Tap(pos, calendar.Layout(gridLeft, gridTop), float64(x), float64(y)); !ok {
		m.status = "no selectable day there"
	}
}

// fling treats a wheel notch as a full page drag.
func (m *Model) fling(dir pager.Direction) {
	p := m.engine.Pager()
	p.DragStarted()
	p.DragEnded(1, dir)
}

func (m *Model) startScroll(cmd events.ScrollCommandMsg) tea.Cmd {
	m.scrollID++
	p := m.engine.Pager()
	from, ok := p.VisiblePosition()
	if !cmd.Animate || !ok || from == cmd.Target {
		p.ReportScrollSettled(cmd.Target)
		return nil
	}
	return nextFrame(scrollFrameMsg{id: m.scrollID, frame: 1, from: from, target: cmd.Target})
}

func nextFrame(f scrollFrameMsg) tea.Cmd {
	return tea.Tick(frameDelay, func(time.Time) tea.Msg { return f })
}

// scrollFrame reports one step of a settle animation. Frames of superseded
// or cancelled scrolls are dropped.
func (m *Model) scrollFrame(f scrollFrameMsg) tea.Cmd {
	p := m.engine.Pager()
	if f.id != m.scrollID || p.State() != pager.Settling {
		return nil
	}
	if f.frame >= scrollFrames {
		p.ReportScrollSettled(f.target)
		return nil
	}
	progress := float64(f.frame) / scrollFrames
	if f.target > f.from {
		p.ReportScrollPositionChanged(f.target-1, progress)
	} else {
		p.ReportScrollPositionChanged(f.target, 1-progress)
	}
	f.frame++
	return nextFrame(f)
}

func (m *Model) save() {
	if m.persistence == nil {
		return
	}
	if err := m.persistence.Save(m.session, m.engine.Snapshot()); err != nil {
		m.saveErr = fmt.Errorf("save session %q: %w", m.session, err)
	}
}

func describe(msg events.Msg) string {
	name := fmt.Sprintf("%T", msg)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "Msg") + " " + msg.Describe()
}

// View renders the visible month with its affordances and a status line.
func (m *Model) View() string {
	p := m.engine.Pager()
	ym, ok := p.VisibleMonth()
	if !ok {
		return "loading..."
	}
	c := m.engine.Clock()
	indent := strings.Repeat(" ", gridLeft)

	prev, next := " ", " "
	if p.CanGoPrevious() {
		prev = m.arrowStyle.Render("<")
	}
	if p.CanGoNext() {
		next = m.arrowStyle.Render(">")
	}
	title := m.titleStyle.Render(fmt.Sprintf("%s %d", ym.Month, ym.Year))

	lines := make([]string, 0, gridTop+daygrid.MaxRows+3)
	lines = append(lines, fmt.Sprintf("%s%s %s %s", indent, prev, title, next))
	lines = append(lines, indent+calendar.Header(c, m.calendarOpts))

	selected, _ := m.engine.Selected()
	rows := calendar.Rows(c, calendar.Page{
		Month:    ym,
		Selected: selected,
		Today:    c.Date(m.now()),
		Disabled: m.disabled(ym),
	}, m.calendarOpts)
	for _, row := range rows {
		lines = append(lines, indent+row)
	}
	for i := len(rows); i < daygrid.MaxRows; i++ {
		lines = append(lines, "")
	}

	lines = append(lines, "", m.wrap(m.statusLine(selected), indent))
	if m.status != "" {
		lines = append(lines, m.wrap(m.status, indent))
	}
	lines = append(lines, indent+m.help.ShortHelpView(m.keys.ShortHelp()))
	return strings.Join(lines, "\n")
}

// wrap renders text faint and wrapped to the terminal width.
func (m *Model) wrap(text, indent string) string {
	if m.width > len(indent) {
		text = wordwrap.String(text, m.width-len(indent))
	}
	out := strings.Split(text, "\n")
	for i, line := range out {
		out[i] = indent + m.faintStyle.Render(line)
	}
	return strings.Join(out, "\n")
}

func (m *Model) statusLine(selected clock.Date) string {
	p := m.engine.Pager()
	parts := []string{"session " + m.session}
	if selected.IsZero() {
		parts = append(parts, "no selection")
	} else {
		parts = append(parts, "selected "+selected.String())
	}
	state := p.State().String()
	if p.State() == pager.Settling {
		state = fmt.Sprintf("%s %.0f%%", state, p.Offset()*100)
	}
	parts = append(parts, state)
	if m.last != "" {
		parts = append(parts, m.last)
	}
	return strings.Join(parts, " | ")
}

func (m *Model) disabled(ym clock.YearMonth) func(int) bool {
	c := m.engine.Clock()
	min, max := m.engine.Bounds()
	return func(day int) bool {
		d := c.FromParts(ym.Year, ym.Month, day)
		return d.Before(min) || (!max.IsZero() && d.After(max))
	}
}
