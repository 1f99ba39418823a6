package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandfall/camera"
	"github.com/pthm-cable/sandfall/grid"
)

// minGridSpacing is the on-screen cell size below which grid lines are skipped.
const minGridSpacing = 4

var (
	gridLineColor  = rl.Color{R: 255, G: 255, B: 255, A: 25}
	heightP50Color = rl.Color{R: 100, G: 200, B: 255, A: 180}
	heightP90Color = rl.Color{R: 255, G: 120, B: 80, A: 180}
	highlightColor = rl.Color{R: 255, G: 255, B: 255, A: 200}
)

// DrawCellGrid draws cell boundaries for the visible part of the canvas.
func DrawCellGrid(layout grid.Layout, cam *camera.Camera) {
	cs := float32(layout.CellSize)
	if cs*cam.Zoom < minGridSpacing {
		return
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	cw, ch := layout.CellOrigin(layout.W, layout.H)
	canvasW, canvasH := float32(cw), float32(ch)

	for x := 0; x <= layout.W; x++ {
		ox, _ := layout.CellOrigin(x, 0)
		wx := float32(ox)
		if wx < minX || wx > maxX {
			continue
		}
		sx, sy0 := cam.WorldToScreen(wx, 0)
		_, sy1 := cam.WorldToScreen(wx, canvasH)
		rl.DrawLine(int32(sx), int32(sy0), int32(sx), int32(sy1), gridLineColor)
	}
	for y := 0; y <= layout.H; y++ {
		_, oy := layout.CellOrigin(0, y)
		wy := float32(oy)
		if wy < minY || wy > maxY {
			continue
		}
		sx0, sy := cam.WorldToScreen(0, wy)
		sx1, _ := cam.WorldToScreen(canvasW, wy)
		rl.DrawLine(int32(sx0), int32(sy), int32(sx1), int32(sy), gridLineColor)
	}
}

// DrawHeightMarkers draws horizontal lines at the median and p90 pile heights,
// measured in cells from the floor.
func DrawHeightMarkers(layout grid.Layout, cam *camera.Camera, p50, p90 float64) {
	cs := float32(layout.CellSize)
	cw, ch := layout.CellOrigin(layout.W, layout.H)
	canvasW, floor := float32(cw), float32(ch)

	for _, m := range []struct {
		h     float64
		color rl.Color
		label string
	}{
		{p50, heightP50Color, "p50"},
		{p90, heightP90Color, "p90"},
	} {
		wy := floor - float32(m.h)*cs
		sx0, sy := cam.WorldToScreen(0, wy)
		sx1, _ := cam.WorldToScreen(canvasW, wy)
		rl.DrawLineEx(rl.Vector2{X: sx0, Y: sy}, rl.Vector2{X: sx1, Y: sy}, 2, m.color)
		rl.DrawText(m.label, int32(sx1)-30, int32(sy)-14, 12, m.color)
	}
}

// DrawCellHighlight outlines cell (x, y).
func DrawCellHighlight(layout grid.Layout, cam *camera.Camera, x, y int) {
	ox, oy := layout.CellOrigin(x, y)
	sx0, sy0 := cam.WorldToScreen(float32(ox), float32(oy))
	sx1, sy1 := cam.WorldToScreen(float32(ox+layout.CellSize), float32(oy+layout.CellSize))
	rl.DrawRectangleLinesEx(rl.Rectangle{X: sx0, Y: sy0, Width: sx1 - sx0, Height: sy1 - sy0}, 1, highlightColor)
}
