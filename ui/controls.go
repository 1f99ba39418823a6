package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandfall/systems"
)

// Brush limits exposed by the sliders.
const (
	MaxSliderRadius = 30
)

// ControlsResult reports what the user changed in the controls panel this frame.
type ControlsResult struct {
	Params  systems.SpawnParams
	Changed bool
	Clear   bool
}

// ControlsPanel renders the left-side controls panel: brush sliders, the
// shape policy toggle and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  false,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel, so pointer
// input there is not treated as a spawn.
func (c *ControlsPanel) Contains(px, py float32) bool {
	if !c.visible || c.height == 0 {
		return false
	}
	return px >= float32(c.x) && px < float32(c.x+c.width) &&
		py >= float32(c.y) && py < float32(c.y+c.height)
}

// Draw renders the controls panel and returns the edited brush parameters.
func (c *ControlsPanel) Draw(params systems.SpawnParams, overlays *OverlayRegistry) ControlsResult {
	result := ControlsResult{Params: params}
	if !c.visible {
		return result
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	// Calculate panel height based on content
	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	brushHeight := int32(170)
	c.height = brushHeight + int32(totalItems)*lineHeight + padding*3 + lineHeight

	// Draw panel background
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := float32(c.x + padding)
	y := c.y + padding
	sliderW := float32(c.width - padding*2 - 50)

	// Title
	rl.DrawText("Brush", int32(x), y, 16, rl.White)
	y += lineHeight + 4

	// Radius slider
	r.DrawLabelValue(int32(x), y, "Radius", fmt.Sprintf("%d", params.Radius))
	y += lineHeight
	newRadius := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
		"", fmt.Sprintf("%d", MaxSliderRadius),
		float32(params.Radius), 0, MaxSliderRadius,
	)
	if rr := int(math.Round(float64(newRadius))); rr != params.Radius {
		result.Params.Radius = rr
		result.Changed = true
	}
	y += 24

	// Probability slider
	r.DrawLabelValue(int32(x), y, "Probability", fmt.Sprintf("%.2f", params.Probability))
	y += lineHeight
	newProb := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
		"", "1",
		float32(params.Probability), 0, 1,
	)
	if p := float64(newProb); math.Abs(p-params.Probability) > 1e-3 {
		result.Params.Probability = p
		result.Changed = true
	}
	y += 24

	// Policy toggle and clear
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: 110, Height: 24}, "Shape: "+params.Policy.String()) {
		result.Params.Policy = params.Policy.Next()
		result.Changed = true
	}
	if gui.Button(rl.Rectangle{X: x + 120, Y: float32(y), Width: 80, Height: 24}, "Clear") {
		result.Clear = true
	}
	y += 36

	// Overlay toggles by category
	rl.DrawText("Overlays", int32(x), y, 16, rl.White)
	y += lineHeight + 4
	for _, category := range categories {
		rl.DrawText(categoryLabel(category), int32(x), y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(int32(x), y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}

		y += 4 // Gap between categories
	}

	return result
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	// Name
	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "info":
		return "Info"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
