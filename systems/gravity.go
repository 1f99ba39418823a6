package systems

import "github.com/pthm-cable/sandfall/grid"

// MoveCounts tallies how grains resolved during one step.
type MoveCounts struct {
	Down  int
	Left  int
	Right int
	Stay  int
}

// Total returns the number of grains processed.
func (m MoveCounts) Total() int {
	return m.Down + m.Left + m.Right + m.Stay
}

// Moved returns the number of grains that changed cell.
func (m MoveCounts) Moved() int {
	return m.Down + m.Left + m.Right
}

// Add accumulates another tally.
func (m *MoveCounts) Add(o MoveCounts) {
	m.Down += o.Down
	m.Left += o.Left
	m.Right += o.Right
	m.Stay += o.Stay
}

// Step advances src by one tick and returns the new grid. src is not modified.
func Step(src *grid.Grid, rng Rand) *grid.Grid {
	next, _ := StepCounted(src, rng)
	return next
}

// StepCounted is Step plus a tally of how each grain moved.
//
// Columns are scanned left to right and each column bottom-up, writing into a
// fresh grid so no grain moves twice. The down move checks the destination
// grid; diagonal moves check the source grid, and additionally refuse a
// destination that an earlier grain already claimed this tick.
func StepCounted(src *grid.Grid, rng Rand) (*grid.Grid, MoveCounts) {
	next := grid.New(src.W, src.H)
	var counts MoveCounts

	for x := 0; x < src.W; x++ {
		for y := src.H - 1; y >= 0; y-- {
			v := src.At(x, y)
			if v == grid.Empty {
				continue
			}

			move := drawDrift(rng)

			switch {
			case src.Exists(x, y+1) && next.IsEmpty(x, y+1):
				next.Set(x, y+1, v)
				counts.Down++
			case move == -1 && src.Exists(x-1, y+1) && src.IsEmpty(x-1, y+1) && next.IsEmpty(x-1, y+1):
				next.Set(x-1, y+1, v)
				counts.Left++
			case move == 1 && src.Exists(x+1, y+1) && src.IsEmpty(x+1, y+1) && next.IsEmpty(x+1, y+1):
				next.Set(x+1, y+1, v)
				counts.Right++
			default:
				next.Set(x, y, v)
				counts.Stay++
			}
		}
	}

	return next, counts
}
