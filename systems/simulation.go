package systems

import "github.com/pthm-cable/sandfall/grid"

// Params holds everything the simulation needs besides the viewport.
type Params struct {
	Resolution int // cells across the shorter viewport side
	InitialHue float64
	Spawn      SpawnParams
}

// Simulation owns one grid, its layout, and the current spawn hue.
// It is not safe for concurrent use; hosts drive it from a single loop.
type Simulation struct {
	grid   *grid.Grid
	layout grid.Layout
	hue    float64
	params Params
	rng    Rand
}

// NewSimulation configures a layout for the viewport and starts with an empty grid.
func NewSimulation(viewW, viewH int, params Params, rng Rand) *Simulation {
	s := &Simulation{
		hue:    params.InitialHue,
		params: params,
		rng:    rng,
	}
	s.Resize(viewW, viewH)
	return s
}

// Resize recomputes the layout and discards the grid. Grains do not survive a resize.
func (s *Simulation) Resize(viewW, viewH int) {
	s.layout = grid.Configure(viewW, viewH, s.params.Resolution)
	s.grid = s.layout.NewGrid()
}

// Step advances the grid by one tick.
func (s *Simulation) Step() MoveCounts {
	next, counts := StepCounted(s.grid, s.rng)
	s.grid = next
	return counts
}

// SpawnAt sprays grains around the viewport pixel (px, py).
// Returns the number of cells filled.
func (s *Simulation) SpawnAt(px, py float64) int {
	cx, cy := s.layout.PixelToCell(px, py)
	return s.SpawnCell(cx, cy)
}

// SpawnCell sprays grains around cell (cx, cy).
func (s *Simulation) SpawnCell(cx, cy int) int {
	var filled int
	s.hue, filled = Spawn(s.grid, cx, cy, s.hue, s.params.Spawn, s.rng)
	return filled
}

// Clear empties the grid without changing the layout.
func (s *Simulation) Clear() {
	s.grid = s.layout.NewGrid()
}

// Restore replaces the grid and hue, e.g. from a snapshot. Cells outside the
// current layout are dropped.
func (s *Simulation) Restore(g *grid.Grid, hue float64) {
	next := s.layout.NewGrid()
	for x := 0; x < g.W && x < next.W; x++ {
		for y := 0; y < g.H && y < next.H; y++ {
			next.Set(x, y, g.At(x, y))
		}
	}
	s.grid = next
	s.hue = hue
}

// Grid returns the live grid. It is replaced on every Step.
func (s *Simulation) Grid() *grid.Grid { return s.grid }

// Layout returns the current layout.
func (s *Simulation) Layout() grid.Layout { return s.layout }

// Hue returns the hue the next spawn will start with.
func (s *Simulation) Hue() float64 { return s.hue }

// SpawnParams returns the current spawn parameters.
func (s *Simulation) SpawnParams() SpawnParams { return s.params.Spawn }

// SetSpawnParams replaces the spawn parameters.
func (s *Simulation) SetSpawnParams(p SpawnParams) {
	s.params.Spawn = p
}
