package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calpage/pkg/engine"
)

// LayoutOptions describes the pixel layout of a month grid.
type LayoutOptions struct {
	CellWidth  float64
	CellHeight float64
	OriginX    float64
	OriginY    float64
	Radius     float64
}

func AddLayoutArgs(cmd *cobra.Command, o *LayoutOptions) {
	cmd.Flags().Float64Var(&o.CellWidth, "cell-width", 40,
		"Width of a day cell.")
	cmd.Flags().Float64Var(&o.CellHeight, "cell-height", 40,
		"Height of a day cell.")
	cmd.Flags().Float64Var(&o.OriginX, "origin-x", 20,
		"X of the first cell's anchor.")
	cmd.Flags().Float64Var(&o.OriginY, "origin-y", 20,
		"Y of the first cell's anchor.")
	cmd.Flags().Float64Var(&o.Radius, "radius", 20,
		"Touch padding around the grid.")
}

// Layout returns the engine layout for the flags.
func (o *LayoutOptions) Layout() engine.Layout {
	return engine.Layout{
		CellWidth:  o.CellWidth,
		CellHeight: o.CellHeight,
		OriginX:    o.OriginX,
		OriginY:    o.OriginY,
		Radius:     o.Radius,
	}
}
