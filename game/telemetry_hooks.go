package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sandfall/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sim.Grid())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats
	g.hasStats = true

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "tick", g.tick, "stats", perfStats)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}

		// Save snapshot on bookmark
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot writes the current grid to the snapshot directory. A nil
// bookmark marks a manual snapshot.
func (g *Game) saveSnapshot(bm *telemetry.Bookmark) {
	dir := g.snapshotDir
	if dir == "" {
		dir = snapshotDirDefault
	}

	snap := telemetry.FromSimulation(g.sim, g.tick, g.rngSeed)
	snap.Bookmark = bm

	path, err := telemetry.SaveSnapshot(snap, dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick, "grains", len(snap.Cells))
}

// loadSnapshot restores grid contents, hue and tick from a snapshot file.
func (g *Game) loadSnapshot(path string) error {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	dropped := snap.Apply(g.sim)
	g.tick = snap.Tick
	g.collector.Reset(g.tick)
	g.bookmarkDetector.Reset()

	if dropped > 0 {
		slog.Warn("snapshot cells dropped (outside the grid, repeated or out-of-band hue)",
			"snapshot_grid", fmt.Sprintf("%dx%d", snap.GridWidth, snap.GridHeight),
			"dropped", dropped,
		)
	}
	slog.Info("snapshot loaded", "path", path, "tick", snap.Tick, "grains", len(snap.Cells)-dropped)
	return nil
}
