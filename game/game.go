// Package game hosts the sand simulation: the raylib frame loop, the headless
// loop, input handling and telemetry wiring.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandfall/camera"
	"github.com/pthm-cable/sandfall/config"
	"github.com/pthm-cable/sandfall/palette"
	"github.com/pthm-cable/sandfall/renderer"
	"github.com/pthm-cable/sandfall/systems"
	"github.com/pthm-cable/sandfall/telemetry"
	"github.com/pthm-cable/sandfall/ui"
)

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	sim     *systems.Simulation
	rng     *rand.Rand
	rngSeed int64

	// State
	tick           int32
	paused         bool
	stepOnce       bool
	stepsPerUpdate int
	headless       bool

	// Pointer state captured by input and applied in the spawn phase
	pointer  systems.Pointer
	pouring  bool // press or drag this frame
	pointerX float64
	pointerY float64

	// Scripted pointer for headless runs
	emitter *systems.Emitter

	// Window dimensions
	screenWidth, screenHeight float32

	// Telemetry
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	lastStats        telemetry.WindowStats
	hasStats         bool
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string

	// Rendering (nil in headless mode)
	camera       *camera.Camera
	palette      *palette.Palette
	gridRenderer *renderer.GridRenderer
	hud          *ui.HUD
	controls     *ui.ControlsPanel
	statsPanel   *ui.StatsPanel
	perfPanel    *ui.PerfPanel
	inspector    *ui.Inspector
	overlays     *ui.OverlayRegistry
	renderPerf   *PerfStats
	perfLog      bool
}

// NewGameWithOptions creates a game from the global config.
// In graphical mode the raylib window must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowTicks > 0 {
		statsWindow = opts.StatsWindowTicks
	}

	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		stepsPerUpdate: stepsPerUpdate,
		headless:       opts.Headless,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		perfLog:        opts.PerfLog,
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),

		collector: telemetry.NewCollector(statsWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(
			cfg.Telemetry.BookmarkHistorySize,
			cfg.Telemetry.SaturationThreshold,
			cfg.Telemetry.BurstMultiplier,
		),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}

	if !opts.Headless {
		g.screenWidth = float32(rl.GetScreenWidth())
		g.screenHeight = float32(rl.GetScreenHeight())
	}

	g.sim = systems.NewSimulation(int(g.screenWidth), int(g.screenHeight), cfg.SimParams(), g.rng)

	if opts.Headless {
		g.emitter = emitterFromConfig(cfg.Emitter)
	} else {
		g.initRendering()
	}

	// Output manager
	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if opts.LoadPath != "" {
		if err := g.loadSnapshot(opts.LoadPath); err != nil {
			g.Unload()
			return nil, err
		}
	}

	layout := g.sim.Layout()
	slog.Info("layout configured",
		"viewport_w", layout.ViewW,
		"viewport_h", layout.ViewH,
		"cell_size", layout.CellSize,
		"grid_w", layout.W,
		"grid_h", layout.H,
	)

	return g, nil
}

// initRendering sets up the camera, renderers and UI.
func (g *Game) initRendering() {
	g.camera = camera.New(g.screenWidth, g.screenHeight, g.screenWidth, g.screenHeight)
	g.palette = palette.NewPalette(g.cfg.Derived.Background)
	g.gridRenderer = renderer.NewGridRenderer(g.palette)
	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(10, 125, 240)
	g.statsPanel = ui.NewStatsPanel(int32(g.screenWidth)-270, 10, 260)
	g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-300, 10)
	g.inspector = ui.NewInspector(180)
	g.overlays = ui.NewOverlayRegistry()
	g.renderPerf = NewPerfStats()
}

// Update handles one frame of input and runs the configured number of steps.
func (g *Game) Update() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perfCollector.StartPhase(telemetry.PhaseSpawn)
	if g.pouring {
		filled := g.sim.SpawnAt(g.pointerX, g.pointerY)
		g.collector.RecordSpawn(filled)
	}

	steps := g.stepsPerUpdate
	if g.paused {
		steps = 0
		if g.stepOnce {
			steps = 1
		}
	}
	g.stepOnce = false

	for i := 0; i < steps; i++ {
		g.perfCollector.StartPhase(telemetry.PhaseStep)
		g.simulationStep()

		g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
		g.flushTelemetry()
	}

	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()
}

// UpdateHeadless runs the configured number of steps without raylib.
// The emitter, if enabled, stands in for the mouse.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.perfCollector.StartTick()

		g.perfCollector.StartPhase(telemetry.PhaseSpawn)
		if g.emitter != nil {
			layout := g.sim.Layout()
			if px, py, fire := g.emitter.Position(int(g.tick), layout.ViewW, layout.ViewH); fire {
				filled := g.sim.SpawnAt(px, py)
				g.collector.RecordSpawn(filled)
			}
		}

		g.perfCollector.StartPhase(telemetry.PhaseStep)
		g.simulationStep()

		g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
		g.flushTelemetry()

		g.perfCollector.EndTick()
	}
}

// simulationStep runs a single tick of the simulation.
func (g *Game) simulationStep() {
	moves := g.sim.Step()
	g.collector.RecordStep(moves)
	g.perfCollector.RecordMoves(moves)
	g.tick++
}

// clear empties the grid and restarts the telemetry window.
func (g *Game) clear() {
	g.sim.Clear()
	g.collector.Reset(g.tick)
	g.bookmarkDetector.Reset()
	slog.Info("grid cleared", "tick", g.tick)
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *systems.Simulation {
	return g.sim
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.gridRenderer != nil {
		g.gridRenderer.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
