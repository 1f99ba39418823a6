package telemetry

import (
	"testing"

	"github.com/pthm-cable/sandfall/grid"
	"github.com/pthm-cable/sandfall/systems"
)

func TestCollector_ShouldFlush(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9) {
		t.Error("flushed before the window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("expected flush at window end")
	}

	c.Flush(10, grid.New(2, 2))
	if c.ShouldFlush(15) {
		t.Error("window should restart at the flush tick")
	}
	if !c.ShouldFlush(20) {
		t.Error("expected second flush")
	}
}

func TestCollector_ClampsWindow(t *testing.T) {
	c := NewCollector(0)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("window = %d, want 1", c.WindowDurationTicks())
	}
}

func TestCollector_Flush(t *testing.T) {
	c := NewCollector(5)
	c.RecordSpawn(3)
	c.RecordSpawn(0)
	c.RecordStep(systems.MoveCounts{Down: 2, Left: 1, Stay: 1})
	c.RecordStep(systems.MoveCounts{Right: 1, Stay: 3})

	g := grid.New(3, 3)
	g.Set(0, 2, 1)
	g.Set(1, 2, 2)
	g.Set(2, 2, 3)

	stats := c.Flush(5, g)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 5 {
		t.Errorf("window = [%d, %d], want [0, 5]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Spawns != 2 || stats.Spawned != 3 {
		t.Errorf("spawns = %d/%d, want 2/3", stats.Spawns, stats.Spawned)
	}
	if stats.Moves() != 4 {
		t.Errorf("moves = %d, want 4", stats.Moves())
	}
	if stats.Settled != 0.5 {
		t.Errorf("settled = %v, want 0.5", stats.Settled)
	}
	if stats.Occupied != 3 || stats.HueMean != 2 {
		t.Errorf("sample = %d grains, mean %v", stats.Occupied, stats.HueMean)
	}
	if stats.HeightP50 != 1 {
		t.Errorf("height p50 = %v, want 1", stats.HeightP50)
	}

	// Counters reset
	next := c.Flush(10, g)
	if next.Spawns != 0 || next.Moves() != 0 || next.Settled != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 5 {
		t.Errorf("next window start = %d, want 5", next.WindowStartTick)
	}
}
