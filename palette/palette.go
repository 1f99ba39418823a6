// Package palette maps grain hues to display colors.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/sandfall/grid"
)

// hueBuckets is the palette resolution per degree of hue.
const hueBuckets = 8

// Palette maps grain hues to fully saturated mid-lightness colors.
// Conversions are cached per hue bucket, so a grain's color may differ from
// the exact HSL value by less than 1/hueBuckets of a degree.
type Palette struct {
	cache      map[int]color.RGBA
	Background color.RGBA
}

// NewPalette creates a palette drawing empty cells in the given background.
func NewPalette(background colorful.Color) *Palette {
	return &Palette{
		cache:      make(map[int]color.RGBA),
		Background: toRGBA(background),
	}
}

// ParseBackground parses a hex color such as "#000000".
func ParseBackground(hex string) (colorful.Color, error) {
	return colorful.Hex(hex)
}

// Color returns the display color for a hue in degrees.
func (p *Palette) Color(hue float64) color.RGBA {
	bucket := int(math.Floor(hue * hueBuckets))
	if c, ok := p.cache[bucket]; ok {
		return c
	}
	h := math.Mod(float64(bucket)/hueBuckets, 360)
	if h < 0 {
		h += 360
	}
	c := toRGBA(colorful.Hsl(h, 1, 0.5))
	p.cache[bucket] = c
	return c
}

// Cell returns the display color for a grid cell value.
func (p *Palette) Cell(v float64) color.RGBA {
	if v == 0 {
		return p.Background
	}
	return p.Color(v)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Rasterize converts the column-major grid into row-major pixels.
// pixels must hold at least W*H entries.
func Rasterize(g *grid.Grid, p *Palette, pixels []color.RGBA) {
	cells := g.Cells()
	for x := 0; x < g.W; x++ {
		col := cells[x*g.H : (x+1)*g.H]
		for y, v := range col {
			pixels[y*g.W+x] = p.Cell(v)
		}
	}
}
