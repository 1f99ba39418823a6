package grid

import "math"

// Layout maps a pixel viewport onto a cell grid.
type Layout struct {
	CellSize int
	W, H     int

	// Viewport the layout was derived from, in pixels.
	ViewW, ViewH int
}

// Configure derives the layout for a viewport so that the shorter side holds
// roughly `resolution` cells. A cell is never smaller than one pixel, and the
// grid always has at least one row and one column, so small or degenerate
// viewports still produce a usable layout.
func Configure(viewW, viewH, resolution int) Layout {
	if resolution < 1 {
		resolution = 1
	}
	short := viewW
	if viewH < short {
		short = viewH
	}

	cellSize := short / resolution
	if cellSize < 1 {
		cellSize = 1
	}

	w := viewW / cellSize
	if w < 1 {
		w = 1
	}
	h := viewH / cellSize
	if h < 1 {
		h = 1
	}

	return Layout{CellSize: cellSize, W: w, H: h, ViewW: viewW, ViewH: viewH}
}

// NewGrid allocates an empty grid sized for this layout.
func (l Layout) NewGrid() *Grid {
	return New(l.W, l.H)
}

// PixelToCell converts a viewport pixel position to a cell coordinate.
// The result may lie outside the grid; callers clamp or filter.
func (l Layout) PixelToCell(px, py float64) (int, int) {
	cs := float64(l.CellSize)
	return int(math.Floor(px / cs)), int(math.Floor(py / cs))
}

// CellOrigin returns the top-left pixel of cell (x, y).
func (l Layout) CellOrigin(x, y int) (int, int) {
	return x * l.CellSize, y * l.CellSize
}
