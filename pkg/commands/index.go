package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calpage/pkg/commands/options"
	"tableflip.dev/calpage/pkg/runner/index"
)

func addPosition(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	cmd := &cobra.Command{
		Use:   "position <YYYY-MM>",
		Short: "Print the page position of a month.",
		Example: `
calpage position 2021-03
calpage position 2021-03 --min 2020-01-01 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			p := index.Position{Session: s, Month: args[0], Output: output()}
			return oo.HandleError(p.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addMonth(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	cmd := &cobra.Command{
		Use:   "month <position>",
		Short: "Print the month shown at a page position.",
		Example: `
calpage month 14
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("requires a position")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, _ := strconv.Atoi(args[0])
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			m := index.Month{Session: s, Position: pos, Output: output()}
			return oo.HandleError(m.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addSize(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Print the number of month pages in the range.",
		Example: `
calpage size --min 2020-01-15 --max 2021-06-01
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			sz := index.Size{Session: s, Output: output()}
			return oo.HandleError(sz.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
