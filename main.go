package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandfall/config"
	"github.com/pthm-cable/sandfall/game"
	"github.com/pthm-cable/sandfall/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by the configured emitter")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files (enables snapshots on bookmarks)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	loadPath := flag.String("load", "", "Snapshot file to restore on start")
	perfLog := flag.Bool("perf", false, "Log render timing every 120 ticks")
	perfLogPath := flag.String("perf-log", "", "Write render timing to this file instead of stdout (implies -perf)")
	untilSettled := flag.Bool("until-settled", false, "Headless: stop at the first stats window in which no grain moved")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *perfLogPath != "" {
		f, err := os.Create(*perfLogPath)
		if err != nil {
			slog.Error("failed to open perf log", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		game.SetLogWriter(f)
		*perfLog = true
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:             rngSeed,
		LogStats:         *logStats,
		StatsWindowTicks: *statsWindow,
		SnapshotDir:      *snapshotDir,
		OutputDir:        *outputDir,
		Headless:         *headless,
		StepsPerUpdate:   *stepsPerUpdate,
		LoadPath:         *loadPath,
		PerfLog:          *perfLog,
	}

	if *headless {
		if *maxTicks <= 0 && !cfg.Emitter.Enabled && (!*untilSettled || *loadPath == "") {
			slog.Warn("headless run without emitter or max ticks will idle forever")
		}
		if err := runHeadless(opts, *maxTicks, *untilSettled); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runWindowed(cfg, opts, *maxTicks); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the simulation without raylib until maxTicks is reached
// or, with untilSettled, until a stats window passes with no grain moving.
func runHeadless(opts game.Options, maxTicks int, untilSettled bool) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	var settled *telemetry.WindowStats
	if untilSettled {
		g.SetStatsCallback(func(s telemetry.WindowStats) {
			if settled == nil && s.AtRest() {
				settled = &s
			}
		})
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if settled != nil {
			slog.Info("grid settled",
				"tick", settled.WindowEndTick,
				"grains", settled.Occupied,
				"height_max", settled.HeightMax,
			)
			return nil
		}

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached",
				"tick", g.Tick(),
				"grains", g.Simulation().Grid().Occupied(),
			)
			return nil
		}
	}
}

// runWindowed opens a resizable raylib window and runs the frame loop.
func runWindowed(cfg *config.Config, opts game.Options, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Sandfall")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}
