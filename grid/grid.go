// Package grid holds the cell storage for the sand simulation.
//
// Cells are addressed [x][y] with y growing downward. Storage is one flat
// column-major slice so that a column scan walks contiguous memory.
package grid

// Empty is the value of an unoccupied cell. Any other value is a hue.
const Empty = 0.0

// Grid is a rectangular W x H field of cells.
type Grid struct {
	W, H int

	// Cells in column-major order: index x*H + y.
	cells []float64
}

// New allocates a zeroed grid. Non-positive dimensions are clamped to 1.
func New(w, h int) *Grid {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Grid{W: w, H: h, cells: make([]float64, w*h)}
}

// Exists reports whether (x, y) lies inside the grid.
func (g *Grid) Exists(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the cell value at (x, y). The caller must bounds-check.
func (g *Grid) At(x, y int) float64 {
	return g.cells[x*g.H+y]
}

// Set writes the cell value at (x, y). The caller must bounds-check.
func (g *Grid) Set(x, y int, v float64) {
	g.cells[x*g.H+y] = v
}

// IsEmpty reports whether the cell at (x, y) is unoccupied.
func (g *Grid) IsEmpty(x, y int) bool {
	return g.cells[x*g.H+y] == Empty
}

// Cells exposes the backing slice (column-major).
func (g *Grid) Cells() []float64 { return g.cells }

// Occupied counts the non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, v := range g.cells {
		if v != Empty {
			n++
		}
	}
	return n
}

// Clear empties every cell in place.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, cells: make([]float64, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// SameSize reports whether both grids have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return g.W == o.W && g.H == o.H
}

// ColumnHeight returns the height of the sand pile in column x, measured as
// the number of rows from the bottom up to and including the topmost
// occupied cell. An empty column has height 0.
func (g *Grid) ColumnHeight(x int) int {
	col := g.cells[x*g.H : (x+1)*g.H]
	for y, v := range col {
		if v != Empty {
			return g.H - y
		}
	}
	return 0
}
