package telemetry

import (
	"github.com/pthm-cable/sandfall/grid"
	"github.com/pthm-cable/sandfall/systems"
)

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns  int
	spawned int
	moves   systems.MoveCounts
}

// NewCollector creates a new stats collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: int32(windowTicks)}
}

// RecordSpawn records one spawn call and the number of cells it filled.
func (c *Collector) RecordSpawn(filled int) {
	c.spawns++
	c.spawned += filled
}

// RecordStep records the moves made by one step.
func (c *Collector) RecordStep(m systems.MoveCounts) {
	c.moves.Add(m)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush samples the grid, produces a WindowStats and resets counters for the
// next window.
func (c *Collector) Flush(currentTick int32, g *grid.Grid) WindowStats {
	sample := SampleGrid(g)

	var settled float64
	if total := c.moves.Total(); total > 0 {
		settled = float64(c.moves.Stay) / float64(total)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Occupied:     sample.Occupied,
		FillFraction: sample.FillFraction,

		Spawns:  c.spawns,
		Spawned: c.spawned,

		MovesDown:  c.moves.Down,
		MovesLeft:  c.moves.Left,
		MovesRight: c.moves.Right,
		Settled:    settled,

		HueMean: sample.HueMean,
		HueStd:  sample.HueStd,

		HeightP50: sample.HeightP50,
		HeightP90: sample.HeightP90,
		HeightMax: sample.HeightMax,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = 0
	c.spawned = 0
	c.moves = systems.MoveCounts{}

	return stats
}

// Reset discards the current window, e.g. after a clear or restore.
func (c *Collector) Reset(currentTick int32) {
	c.windowStartTick = currentTick
	c.spawns = 0
	c.spawned = 0
	c.moves = systems.MoveCounts{}
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
