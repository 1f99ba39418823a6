package palette

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/sandfall/grid"
)

func TestPaletteColor(t *testing.T) {
	p := NewPalette(colorful.Color{})

	tests := []struct {
		name string
		hue  float64
		want color.RGBA
	}{
		{"red", 0.0001, color.RGBA{255, 0, 0, 255}},
		{"yellow", 60, color.RGBA{255, 255, 0, 255}},
		{"green", 120, color.RGBA{0, 255, 0, 255}},
		{"wrapped red", 360, color.RGBA{255, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Color(tt.hue); got != tt.want {
				t.Errorf("Color(%v) = %v, want %v", tt.hue, got, tt.want)
			}
		})
	}
}

func TestPaletteRedToYellowBand(t *testing.T) {
	p := NewPalette(colorful.Color{})

	// The default hue band stays warm: strong red, no blue.
	for hue := 1.0; hue < 66; hue += 0.5 {
		c := p.Color(hue)
		if c.R < 0xE0 || c.B != 0 {
			t.Fatalf("hue %v gave %v, outside red-yellow band", hue, c)
		}
	}
}

func TestPaletteCellBackground(t *testing.T) {
	bg, err := ParseBackground("#102030")
	if err != nil {
		t.Fatal(err)
	}
	p := NewPalette(bg)

	if got := p.Cell(0); got != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("empty cell = %v, want background", got)
	}
	if got := p.Cell(60); got != p.Color(60) {
		t.Errorf("occupied cell = %v, want grain color", got)
	}
}

func TestParseBackgroundInvalid(t *testing.T) {
	if _, err := ParseBackground("black"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestRasterizeRowMajor(t *testing.T) {
	p := NewPalette(colorful.Color{})
	g := grid.New(3, 2)
	g.Set(2, 0, 120) // top-right
	g.Set(0, 1, 60)  // bottom-left

	pixels := make([]color.RGBA, 6)
	Rasterize(g, p, pixels)

	want := map[int]color.RGBA{
		2: p.Color(120),
		3: p.Color(60),
	}
	for i, px := range pixels {
		expected, ok := want[i]
		if !ok {
			expected = p.Background
		}
		if px != expected {
			t.Errorf("pixel %d = %v, want %v", i, px, expected)
		}
	}
}
