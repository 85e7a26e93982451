// Package session opens a persisted calendar engine for one CLI invocation
// and plays the part of an instant scrolling host for it.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/engine"
	"tableflip.dev/calpage/pkg/events"
	"tableflip.dev/calpage/pkg/printers"
	"tableflip.dev/calpage/pkg/store"
)

// Options selects the session to open and overrides its configuration.
type Options struct {
	Name string
	// Min and Max override the configured bounds, "2006-01-02".
	Min, Max string
	Logger   *log.Logger

	// Config and Persistence are loaded from disk when nil.
	Config      store.Config
	Persistence store.Persistence
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session is an engine restored from the store.
type Session struct {
	Name   string
	Engine *engine.Engine

	persistence store.Persistence
	recorder    *events.Recorder
	scroll      *events.ScrollCommandMsg
	now         func() time.Time
}

// Open restores the named session, or starts one showing the current month.
// Bounds in opts apply on top of the restored range.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = store.LoadConfig(); err != nil {
			return nil, err
		}
	}
	p := opts.Persistence
	if p == nil {
		var err error
		if p, err = store.Load(cfg); err != nil {
			return nil, err
		}
	}
	ec, err := store.EngineConfig(cfg)
	if err != nil {
		return nil, err
	}
	ec.Logger = opts.Logger

	c := clock.New(ec.Location, ec.FirstDayOfWeek)
	min, err := parseDate(c, opts.Min)
	if err != nil {
		return nil, fmt.Errorf("min: %w", err)
	}
	max, err := parseDate(c, opts.Max)
	if err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}
	if !min.IsZero() {
		ec.MinDate = min
	}
	if !max.IsZero() {
		ec.MaxDate = max
	}

	e, err := engine.New(ec)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = store.DefaultSession
	}
	s := &Session{
		Name:        name,
		Engine:      e,
		persistence: p,
		recorder:    &events.Recorder{},
		now:         opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	e.Subscribe(s.handle)

	snap, ok, err := p.Load(name)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := e.Restore(snap); err != nil {
			return nil, fmt.Errorf("session %q: %w", name, err)
		}
		if !min.IsZero() || !max.IsZero() {
			lo, hi := e.Bounds()
			if !min.IsZero() {
				lo = c.Date(min)
			}
			if !max.IsZero() {
				hi = c.Date(max)
			}
			if err := e.SetBounds(lo.Time(), hi.Time()); err != nil {
				return nil, err
			}
		}
	}
	if _, visible := e.Pager().VisiblePosition(); !visible {
		e.RequestVisibleDate(s.now(), false)
	}
	s.Settle()
	s.recorder.Take()
	return s, nil
}

func parseDate(c *clock.Clock, val string) (time.Time, error) {
	if strings.TrimSpace(val) == "" {
		return time.Time{}, nil
	}
	d, err := c.Parse(val)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time(), nil
}

func (s *Session) handle(msg events.Msg) {
	s.recorder.Handle(msg)
	if cmd, ok := msg.(events.ScrollCommandMsg); ok {
		s.scroll = &cmd
	}
}

// Settle completes the last scroll command as if the host had finished the
// scroll instantly. Earlier commands are superseded by the last one.
func (s *Session) Settle() {
	for s.scroll != nil {
		cmd := s.scroll
		s.scroll = nil
		s.Engine.Pager().ReportScrollSettled(cmd.Target)
	}
}

// Events returns the events emitted since the last call.
func (s *Session) Events() []events.Msg {
	return s.recorder.Take()
}

// Today returns the current date in the engine's clock.
func (s *Session) Today() clock.Date {
	return s.Engine.Clock().Date(s.now())
}

// Save persists the engine state under the session name.
func (s *Session) Save() error {
	return s.persistence.Save(s.Name, s.Engine.Snapshot())
}

// Delete removes the persisted session.
func (s *Session) Delete() error {
	return s.persistence.Delete(s.Name)
}

// Persistence returns the store the session is saved in.
func (s *Session) Persistence() store.Persistence { return s.persistence }

// Now returns the session's time source.
func (s *Session) Now() time.Time { return s.now() }

// Finish settles scrolling, prints the events this invocation caused and
// saves the session.
func (s *Session) Finish(pp *printers.PrettyPrint, output string) error {
	s.Settle()
	msgs := s.Events()
	if output == "json" {
		if err := pp.JSON(printers.Records(msgs...)); err != nil {
			return err
		}
	} else {
		pp.Events(msgs...)
	}
	return s.Save()
}
