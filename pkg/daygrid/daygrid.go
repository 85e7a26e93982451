// Package daygrid maps pointer coordinates on a 7 column month grid to day
// numbers.
package daygrid

import (
	"math"

	"tableflip.dev/calpage/pkg/clock"
)

const (
	// Columns is the number of days in a grid row.
	Columns = 7
	// MaxRows is the largest number of week rows a month needs.
	MaxRows = 6
)

// Geometry describes where a month's grid sits. Cell (0,0) is anchored at
// the origin; a pointer resolves to the cell whose anchor is nearest.
// Radius pads the touchable area on every side.
type Geometry struct {
	Rows         int
	CellWidth    float64
	CellHeight   float64
	OriginX      float64
	OriginY      float64
	Radius       float64
	StartWeekday int
	DaysInMonth  int
}

// NewGeometry returns the geometry of ym as laid out by c, using the fewest
// rows the month needs.
func NewGeometry(c *clock.Clock, ym clock.YearMonth, cellWidth, cellHeight, originX, originY, radius float64) Geometry {
	start := c.StartWeekdayIndex(ym.Year, ym.Month)
	days := clock.DaysInMonth(ym.Year, ym.Month)
	return Geometry{
		Rows:         Rows(start, days),
		CellWidth:    cellWidth,
		CellHeight:   cellHeight,
		OriginX:      originX,
		OriginY:      originY,
		Radius:       radius,
		StartWeekday: start,
		DaysInMonth:  days,
	}
}

// Rows returns the number of week rows needed for a month of days days whose
// first day falls in column startWeekday.
func Rows(startWeekday, days int) int {
	return (startWeekday + days + Columns - 1) / Columns
}

func (g Geometry) rows() int {
	if g.Rows <= 0 || g.Rows > MaxRows {
		return MaxRows
	}
	return g.Rows
}

// Width returns the grid's width without padding.
func (g Geometry) Width() float64 { return Columns * g.CellWidth }

// Height returns the grid's height without padding.
func (g Geometry) Height() float64 { return float64(g.rows()) * g.CellHeight }

// DayAt returns the day under (x, y), or false when the point is outside the
// padded grid or on a cell with no day.
func DayAt(g Geometry, x, y float64) (int, bool) {
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		return 0, false
	}
	if x < g.OriginX-g.Radius || x > g.OriginX+g.Width()+g.Radius {
		return 0, false
	}
	if y < g.OriginY-g.Radius || y > g.OriginY+g.Height()+g.Radius {
		return 0, false
	}
	col := clampInt(roundHalfUp((x-g.OriginX)/g.CellWidth), 0, Columns-1)
	row := clampInt(roundHalfUp((y-g.OriginY)/g.CellHeight), 0, g.rows()-1)

	day := row*Columns + col - g.StartWeekday + 1
	if day < 1 || day > g.DaysInMonth {
		return 0, false
	}
	return day, true
}

// CellAnchor returns the anchor point of day's cell.
func CellAnchor(g Geometry, day int) (float64, float64, bool) {
	if day < 1 || day > g.DaysInMonth {
		return 0, 0, false
	}
	idx := day - 1 + g.StartWeekday
	col, row := idx%Columns, idx/Columns
	return g.OriginX + float64(col)*g.CellWidth, g.OriginY + float64(row)*g.CellHeight, true
}

// roundHalfUp rounds ties toward positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
