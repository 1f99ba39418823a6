package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandfall/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyN) && g.paused {
		g.stepOnce = true
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	g.handleBrushInput()

	if rl.IsKeyPressed(rl.KeyC) {
		g.clear()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.saveSnapshot(nil)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	// Overlay hotkeys
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, enabled, ok := g.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", enabled)
		}
	}

	// Camera controls
	g.handleCameraInput()

	g.handlePointer()
}

// handleBrushInput adjusts spawn parameters from the keyboard.
func (g *Game) handleBrushInput() {
	params := g.sim.SpawnParams()
	changed := false

	if rl.IsKeyPressed(rl.KeyP) {
		params.Policy = params.Policy.Next()
		changed = true
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) && params.Radius > 0 {
		params.Radius--
		changed = true
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) && params.Radius < ui.MaxSliderRadius {
		params.Radius++
		changed = true
	}

	if changed {
		g.sim.SetSpawnParams(params)
	}
}

// handlePointer decides whether this frame pours and where, in viewport
// pixels. Pressing the left button pours, and so does dragging it; holding
// it still does not.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	down := rl.IsMouseButtonDown(rl.MouseButtonLeft) && !g.controls.Contains(mouse.X, mouse.Y)
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	g.pointerX = float64(wx)
	g.pointerY = float64(wy)
	g.pouring = g.pointer.Update(down, g.pointerX, g.pointerY)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.sim.Resize(int(w), int(h))
	g.camera.Resize(w, h)
	g.statsPanel.SetPosition(int32(w)-270, 10)
	g.perfPanel.SetPosition(int32(w)-300, 10)

	// The grid was rebuilt, so the current window no longer describes it.
	g.collector.Reset(g.tick)

	layout := g.sim.Layout()
	slog.Info("layout reconfigured",
		"viewport_w", layout.ViewW,
		"viewport_h", layout.ViewH,
		"cell_size", layout.CellSize,
		"grid_w", layout.W,
		"grid_h", layout.H,
	)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	panSpeed := float32(8.0)

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1 + wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
