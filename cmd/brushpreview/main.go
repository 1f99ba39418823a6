// Brush preview tool - pour sand on a small grid and tune the brush with sliders.
//
// Usage: go run ./cmd/brushpreview
package main

import (
	"fmt"
	"image/color"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandfall/config"
	"github.com/pthm-cable/sandfall/palette"
	"github.com/pthm-cable/sandfall/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 560
	previewSize  = 512
	gridSize     = 128
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	config.MustInit("")
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Brush Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	// One pixel per cell so the whole grid fits the texture
	params := cfg.SimParams()
	params.Resolution = gridSize
	seed := int64(12345)
	sim := systems.NewSimulation(gridSize, gridSize, params, rand.New(rand.NewSource(seed)))

	pal := palette.NewPalette(cfg.Derived.Background)
	pixels := make([]color.RGBA, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, pal.Background)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	rl.SetTextureFilter(texture, rl.FilterPoint)

	pouring := true
	paused := false

	for !rl.WindowShouldClose() {
		// Pour at the top center, or at the mouse when it is over the preview
		mouse := rl.GetMousePosition()
		overPreview := mouse.X >= 10 && mouse.X < 10+previewSize && mouse.Y >= 10 && mouse.Y < 10+previewSize
		if overPreview && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			scale := float32(gridSize) / previewSize
			sim.SpawnAt(float64((mouse.X-10)*scale), float64((mouse.Y-10)*scale))
		} else if pouring && !paused {
			sim.SpawnCell(gridSize/2, gridSize/8)
		}
		if !paused {
			sim.Step()
		}

		palette.Rasterize(sim.Grid(), pal, pixels)
		rl.UpdateTexture(texture, pixels)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Brush Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		sp := sim.SpawnParams()
		changed := false
		sliderW := float32(panelWidth - 80)

		slider := func(label, minText, maxText, valueText string, value, lo, hi float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20}, minText, maxText, value, lo, hi)
			rl.DrawText(valueText, int32(panelX+sliderW+10), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return v
		}

		if r := int(slider("Radius (cells)", "0", "20", fmt.Sprintf("%d", sp.Radius), float32(sp.Radius), 0, 20)); r != sp.Radius {
			sp.Radius = r
			changed = true
		}
		if p := float64(slider("Fill probability", "0", "1", fmt.Sprintf("%.2f", sp.Probability), float32(sp.Probability), 0, 1)); p != sp.Probability {
			sp.Probability = p
			changed = true
		}
		if h := float64(slider("Hue step (per scanline)", "0", "1", fmt.Sprintf("%.3f", sp.HueStep), float32(sp.HueStep), 0, 1)); h != sp.HueStep {
			sp.HueStep = h
			changed = true
		}
		if w := float64(slider("Hue wrap (degrees)", "6", "360", fmt.Sprintf("%.0f", sp.HueWrap), float32(sp.HueWrap), 6, 360)); int(w) != int(sp.HueWrap) {
			sp.HueWrap = float64(int(w))
			changed = true
		}

		// Hue swatch across the wrap range
		swatchW := int32(sliderW)
		for i := int32(0); i < swatchW; i++ {
			hue := sp.HueWrap * float64(i) / float64(swatchW)
			rl.DrawLine(int32(panelX)+i, int32(panelY), int32(panelX)+i, int32(panelY)+16, pal.Color(hue))
		}
		rl.DrawRectangle(int32(panelX)+int32(sim.Hue()/sp.HueWrap*float64(swatchW)), int32(panelY)-2, 2, 20, rl.Black)
		panelY += 30

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Shape: "+sp.Policy.String()) {
			sp.Policy = sp.Policy.Next()
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(pouring, "Stop Pour", "Pour")) {
			pouring = !pouring
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Clear") {
			sim.Clear()
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = rand.Int63()
			sim = systems.NewSimulation(gridSize, gridSize, params, rand.New(rand.NewSource(seed)))
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			sp = cfg.SimParams().Spawn
			changed = true
		}
		panelY += 45

		if changed {
			sim.SetSpawnParams(sp)
		}

		// Stats
		rl.DrawText(fmt.Sprintf("Grains: %d  Hue: %.2f  Seed: %d", sim.Grid().Occupied(), sim.Hue(), seed),
			int32(panelX), int32(panelY), 16, rl.DarkGray)

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
