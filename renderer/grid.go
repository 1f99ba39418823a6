// Package renderer draws the sand grid with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandfall/camera"
	"github.com/pthm-cable/sandfall/grid"
	"github.com/pthm-cable/sandfall/palette"
)

// GridRenderer draws the sand grid as one texel per cell, scaled up by the
// cell size with point filtering so every grain is a crisp square.
type GridRenderer struct {
	palette *palette.Palette

	tex        rl.Texture2D
	texW, texH int
	pixels     []color.RGBA

	initialized bool
}

// NewGridRenderer creates a grid renderer using the given palette.
func NewGridRenderer(p *palette.Palette) *GridRenderer {
	return &GridRenderer{palette: p}
}

// Init allocates the texture (must be called after raylib window is created).
// Calling it with new dimensions reallocates.
func (r *GridRenderer) Init(gridW, gridH int) {
	if r.initialized && gridW == r.texW && gridH == r.texH {
		return
	}
	r.Unload()

	r.texW = gridW
	r.texH = gridH
	r.pixels = make([]color.RGBA, gridW*gridH)

	img := rl.GenImageColor(gridW, gridH, r.palette.Background)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update uploads the grid to the GPU texture.
func (r *GridRenderer) Update(g *grid.Grid) {
	r.Init(g.W, g.H)
	palette.Rasterize(g, r.palette, r.pixels)
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the grid texture through the camera. Each cell covers
// cellSize×cellSize canvas pixels starting at the top-left corner.
func (r *GridRenderer) Draw(layout grid.Layout, cam *camera.Camera) {
	if !r.initialized {
		return
	}

	canvasW := float32(layout.W * layout.CellSize)
	canvasH := float32(layout.H * layout.CellSize)

	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(canvasW, canvasH)

	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dstRect := rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}

	rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *GridRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
