// Package sessiontest opens throwaway sessions for runner tests.
package sessiontest

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/calpage/pkg/runner/session"
)

// Now is the clock reading of sessions opened by Open.
var Now = time.Date(2020, time.March, 10, 0, 0, 0, 0, time.UTC)

// Config bounds sessions to 2020 and stores them under Path.
type Config struct{ Path string }

func (c Config) BasePath() string       { return c.Path }
func (c Config) MinDate() string        { return "2020-01-01" }
func (c Config) MaxDate() string        { return "2020-12-31" }
func (c Config) FirstDayOfWeek() string { return "" }
func (c Config) Locale() string         { return "" }
func (c Config) Timezone() string       { return "" }

// Open opens the default session in a temporary store. March 2020 is
// visible.
func Open(t testing.TB) *session.Session {
	t.Helper()
	s, err := session.Open(context.Background(), session.Options{
		Config: Config{Path: t.TempDir()},
		Now:    func() time.Time { return Now },
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}
