// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calpage/pkg/store"
)

// SessionOptions selects the persisted session a command works on and
// overrides its bounds.
type SessionOptions struct {
	Name string
	Min  string
	Max  string
}

// AddSessionArgs wires session-related flags on the provided command.
func AddSessionArgs(cmd *cobra.Command, o *SessionOptions) {
	cmd.Flags().StringVarP(&o.Name, "session", "s", store.DefaultSession,
		"Name of the session to use.")
	cmd.Flags().StringVar(&o.Min, "min", "",
		`Override the first selectable date, example: --min="2020-01-01".`)
	cmd.Flags().StringVar(&o.Max, "max", "",
		`Override the last selectable date, example: --max="2030-12-31".`)
}

// VerboseOptions
type VerboseOptions struct {
	Verbose bool
}

// AddVerboseArg registers --verbose on every command below cmd.
func AddVerboseArg(cmd *cobra.Command, o *VerboseOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log every engine event to stderr.")
}
