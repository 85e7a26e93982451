// Package reset forgets a persisted session.
package reset

import (
	"context"
	"fmt"

	"tableflip.dev/calpage/pkg/printers"
	"tableflip.dev/calpage/pkg/runner/session"
)

// Reset deletes the session from the store.
type Reset struct {
	Session *session.Session
	Printer *printers.PrettyPrint
}

func (r *Reset) Do(ctx context.Context) error {
	if err := r.Session.Delete(); err != nil {
		return err
	}
	pp := r.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.Title(fmt.Sprintf("Session %q reset", r.Session.Name))
	return nil
}
