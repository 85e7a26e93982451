package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calpage/pkg/commands/options"
	"tableflip.dev/calpage/pkg/pager"
	"tableflip.dev/calpage/pkg/runner/scroll"
)

func addScroll(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	position := 0
	pages := 0
	animate := false

	cmd := &cobra.Command{
		Use:   "scroll [YYYY-MM]",
		Short: base.Wrap80("Scroll to a month, a page position, or a number of pages from the visible one."),
		Example: `
calpage scroll 2021-03
calpage scroll --position 0
calpage scroll --pages -2 --animate
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			sc := scroll.Scroll{Session: s, Pages: pages, Animate: animate, Output: output()}
			if len(args) == 1 {
				sc.Month = args[0]
			}
			if cmd.Flags().Changed("position") {
				sc.Position = &position
			}
			return oo.HandleError(sc.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	cmd.Flags().IntVar(&position, "position", 0, "Page position to scroll to.")
	cmd.Flags().IntVar(&pages, "pages", 1, "Pages to move, negative moves backward.")
	cmd.Flags().BoolVar(&animate, "animate", false, "Request an animated scroll.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addDrag(topLevel *cobra.Command) {
	so := &options.SessionOptions{}
	backward := false

	cmd := &cobra.Command{
		Use:   "drag <fraction>",
		Short: base.Wrap80("Play a drag that ends with the given fraction of the page dragged past, then settle."),
		Example: `
calpage drag 0.6
calpage drag 0.3 --backward
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("requires a fraction")
			}
			f, err := strconv.ParseFloat(args[0], 64)
			if err != nil || f < 0 || f > 1 {
				return fmt.Errorf("fraction must be between 0 and 1, got %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _ := strconv.ParseFloat(args[0], 64)
			s, err := openSession(context.Background(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			dir := pager.Forward
			if backward {
				dir = pager.Backward
			}
			d := scroll.Drag{Session: s, Fraction: f, Direction: dir, Output: output()}
			return oo.HandleError(d.Do(context.Background()))
		},
	}
	addSessionArgs(cmd, so)
	cmd.Flags().BoolVar(&backward, "backward", false, "Drag toward earlier months.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
