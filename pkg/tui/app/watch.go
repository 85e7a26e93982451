package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/calpage/pkg/store"
)

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, p store.Persistence) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// handleWatchEvent reloads the session when another process rewrote it.
func (m *Model) handleWatchEvent(ev store.Event) {
	if ev.Type == store.EventSessionChanged && ev.Session != m.session {
		return
	}
	snap, ok, err := m.persistence.Load(m.session)
	if err != nil {
		m.status = "ERR: reload " + err.Error()
		return
	}
	if !ok {
		return
	}
	if err := m.engine.Restore(snap); err != nil {
		m.status = "ERR: reload " + err.Error()
		return
	}
	m.status = "Reloaded session " + m.session
}
