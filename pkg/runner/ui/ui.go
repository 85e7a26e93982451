// Package ui runs the interactive month pager for a session.
package ui

import (
	"context"

	"tableflip.dev/calpage/pkg/runner/session"
	"tableflip.dev/calpage/pkg/tui/app"
)

// UI hosts the session in the terminal UI until the user quits.
type UI struct {
	Session *session.Session
}

func (u *UI) Do(ctx context.Context) error {
	return app.Run(ctx, app.Options{
		Engine:      u.Session.Engine,
		Session:     u.Session.Name,
		Persistence: u.Session.Persistence(),
		Now:         u.Session.Now,
	})
}
