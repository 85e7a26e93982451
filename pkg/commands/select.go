package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calpage/pkg/commands/options"
	"tableflip.dev/calpage/pkg/runner/pick"
)

func addSelect(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	cmd := &cobra.Command{
		Use:     "select <YYYY-MM-DD|today>",
		Aliases: []string{"pick"},
		Short:   base.Wrap80("Select a date and scroll to its month. Dates outside the range are clamped to it."),
		Example: `
calpage select today
calpage select 2021-03-14 --session work
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			p := pick.Select{Session: s, Date: args[0], Output: output()}
			return oo.HandleError(p.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the selected date.",
		Example: `
calpage clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			c := pick.Clear{Session: s, Output: output()}
			return oo.HandleError(c.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
