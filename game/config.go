package game

import (
	"github.com/pthm-cable/sandfall/config"
	"github.com/pthm-cable/sandfall/systems"
)

// Options holds configuration for game initialization.
type Options struct {
	Seed             int64
	LogStats         bool   // log window stats and bookmarks via slog
	StatsWindowTicks int    // 0 = use config
	SnapshotDir      string // bookmark snapshots are only saved when set
	OutputDir        string // CSV output is disabled when empty
	Headless         bool
	StepsPerUpdate   int
	LoadPath         string // snapshot to restore on start
	PerfLog          bool   // periodically log render timing
}

// maxStepsPerUpdate caps the speed-up keys in graphical mode.
const maxStepsPerUpdate = 10

// snapshotDirDefault is used by the snapshot key when no directory was given.
const snapshotDirDefault = "snapshots"

// emitterFromConfig converts the emitter section into a scripted pointer.
// Returns nil when the emitter is disabled.
func emitterFromConfig(c config.EmitterConfig) *systems.Emitter {
	if !c.Enabled {
		return nil
	}
	return &systems.Emitter{
		X:           c.X,
		Y:           c.Y,
		Sweep:       c.Sweep,
		PeriodTicks: c.PeriodTicks,
		EveryTicks:  c.EveryTicks,
		StopAfter:   c.StopAfter,
	}
}
