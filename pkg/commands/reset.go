package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calpage/pkg/commands/options"
	"tableflip.dev/calpage/pkg/runner/reset"
)

func addReset(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget a saved session.",
		Example: `
calpage reset --session work
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			r := reset.Reset{Session: s}
			return oo.HandleError(r.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
