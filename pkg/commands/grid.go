package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calpage/pkg/commands/options"
	"tableflip.dev/calpage/pkg/runner/grid"
)

func addGrid(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	lo := &options.LayoutOptions{}
	position := 0
	tap := false

	cmd := &cobra.Command{
		Use:   "grid <x> <y>",
		Short: base.Wrap80("Resolve a point on a month page to the day under it. With --tap the day is selected."),
		Example: `
calpage grid 100 60
calpage grid 100 60 --position 3 --tap
calpage grid 10 5 --cell-width 3 --cell-height 1 --origin-x 0.5 --origin-y 0 --radius 1
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("requires x and y")
			}
			for _, a := range args {
				if _, err := strconv.ParseFloat(a, 64); err != nil {
					return fmt.Errorf("invalid coordinate %q", a)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			x, _ := strconv.ParseFloat(args[0], 64)
			y, _ := strconv.ParseFloat(args[1], 64)
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			g := grid.Grid{
				Session: s,
				Layout:  lo.Layout(),
				X:       x,
				Y:       y,
				Tap:     tap,
				Output:  output(),
			}
			if cmd.Flags().Changed("position") {
				g.Position = &position
			}
			return oo.HandleError(g.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	options.AddLayoutArgs(cmd, lo)
	cmd.Flags().IntVar(&position, "position", 0, "Page to resolve on, defaults to the visible page.")
	cmd.Flags().BoolVar(&tap, "tap", false, "Select the day under the point.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
