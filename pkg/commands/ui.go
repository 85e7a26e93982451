package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/calpage/pkg/commands/options"
	"tableflip.dev/calpage/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the month pager",
		Example: `
calpage ui
calpage ui --session work
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background(), so)
			if err != nil {
				return err
			}
			i := ui.UI{Session: s}
			return i.Do(context.Background())
		},
	}
	addSessionArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
