package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandfall/renderer"
	"github.com/pthm-cable/sandfall/ui"
)

const controlsLegend = "LMB: Pour | Space: Pause | N: Step | C: Clear | P: Shape | [ ]: Radius | Tab: Panel | S: Snapshot | < >: Speed | I/F/G/H/X: Overlays"

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(g.palette.Background)

	// Render timing is sampled every 120 ticks when perf logging is on
	measureRender := g.perfLog && g.tick%120 == 0
	start := time.Now()

	layout := g.sim.Layout()
	g.gridRenderer.Init(layout.W, layout.H)
	g.gridRenderer.Update(g.sim.Grid())
	if measureRender {
		g.renderPerf.Record("upload", time.Since(start))
		start = time.Now()
	}

	g.gridRenderer.Draw(layout, g.camera)
	g.drawActiveOverlays()
	if measureRender {
		g.renderPerf.Record("draw", time.Since(start))
		start = time.Now()
	}

	g.drawUI()
	if measureRender {
		g.renderPerf.Record("ui", time.Since(start))
		g.logPerfStats()
	}

	rl.EndDrawing()
}

// drawActiveOverlays draws the world-space overlays enabled in the registry.
func (g *Game) drawActiveOverlays() {
	layout := g.sim.Layout()
	if g.overlays.IsEnabled(ui.OverlayCellGrid) {
		renderer.DrawCellGrid(layout, g.camera)
	}
	if g.overlays.IsEnabled(ui.OverlayHeights) && g.hasStats {
		renderer.DrawHeightMarkers(layout, g.camera, g.lastStats.HeightP50, g.lastStats.HeightP90)
	}
}

// drawUI draws the HUD and panels.
func (g *Game) drawUI() {
	layout := g.sim.Layout()
	params := g.sim.SpawnParams()

	g.hud.Draw(ui.HUDData{
		Title:    "Sandfall",
		Grains:   g.sim.Grid().Occupied(),
		GridW:    layout.W,
		GridH:    layout.H,
		CellSize: layout.CellSize,
		Hue:      g.sim.Hue(),
		HueColor: g.palette.Color(g.sim.Hue()),
		Tick:     g.tick,
		Speed:    g.stepsPerUpdate,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
		Policy:   params.Policy.String(),
		Radius:   params.Radius,
		Zoom:     g.camera.Zoom,
	})

	result := g.controls.Draw(params, g.overlays)
	if result.Changed {
		g.sim.SetSpawnParams(result.Params)
	}
	if result.Clear {
		g.clear()
	}

	if g.overlays.IsEnabled(ui.OverlayStats) && g.hasStats {
		g.statsPanel.Draw(g.lastStats, g.cfg.Telemetry.SaturationThreshold)
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	if g.overlays.IsEnabled(ui.OverlayCellInfo) {
		g.drawInspector()
	}

	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)
}

// drawInspector describes the cell under the cursor, if any.
func (g *Game) drawInspector() {
	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	cx, cy := g.sim.Layout().PixelToCell(float64(wx), float64(wy))

	cells := g.sim.Grid()
	if !cells.Exists(cx, cy) {
		return
	}
	hue := cells.At(cx, cy)
	renderer.DrawCellHighlight(g.sim.Layout(), g.camera, cx, cy)
	g.inspector.Draw(mouse.X, mouse.Y, int32(g.screenWidth), int32(g.screenHeight), ui.InspectorData{
		CellX:        cx,
		CellY:        cy,
		Hue:          hue,
		Color:        g.palette.Cell(hue),
		ColumnHeight: cells.ColumnHeight(cx),
		GridH:        cells.H,
		Supported:    cy == cells.H-1 || !cells.IsEmpty(cx, cy+1),
	})
}
