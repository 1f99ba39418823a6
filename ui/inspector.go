package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// InspectorData describes the cell under the cursor.
type InspectorData struct {
	CellX, CellY int
	Hue          float64 // 0 for an empty cell
	Color        rl.Color
	ColumnHeight int
	GridH        int
	Supported    bool // the cell below is the floor or occupied
}

// Inspector renders a small panel next to the cursor describing one cell.
type Inspector struct {
	renderer *Renderer
	width    int32
}

// NewInspector creates a new cell inspector.
func NewInspector(width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		width:    width,
	}
}

// Draw renders the inspector next to the screen point (mx, my), flipping to
// the other side of the cursor near the screen edges.
func (ins *Inspector) Draw(mx, my float32, screenW, screenH int32, data InspectorData) {
	r := ins.renderer
	padding := r.Theme.Padding
	lines := int32(4)
	if data.Hue != 0 {
		lines++
	}
	height := lines*r.Theme.LineHeight + padding*2

	x := int32(mx) + 16
	y := int32(my) + 16
	if x+ins.width > screenW {
		x = int32(mx) - ins.width - 16
	}
	if y+height > screenH {
		y = int32(my) - height - 16
	}

	r.DrawPanel(x, y, ins.width, height)
	x += padding
	y += padding

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Cell %d, %d", data.CellX, data.CellY))
	if data.Hue == 0 {
		y = r.DrawLabelValue(x, y, "State", "empty")
	} else {
		y = r.DrawLabelValue(x, y, "Hue", fmt.Sprintf("%.2f", data.Hue))
		y = r.DrawColorSwatch(x, y, "Color", data.Color)
		state := "falling"
		if data.Supported {
			state = "supported"
		}
		y = r.DrawLabelValue(x, y, "State", state)
	}
	r.DrawLabelValue(x, y, "Column", fmt.Sprintf("%d / %d", data.ColumnHeight, data.GridH))
}
