package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calpage/pkg/commands/options"
	"tableflip.dev/calpage/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the visible month and the session state.",
		Example: `
calpage show
calpage show --session work --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			sh := show.Show{Session: s, Output: output()}
			return oo.HandleError(sh.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
