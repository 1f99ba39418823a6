package systems

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pthm-cable/sandfall/grid"
)

// ErrUnknownPolicy is returned when a shape policy name is not recognized.
var ErrUnknownPolicy = errors.New("unknown shape policy")

// ShapePolicy selects which offsets around the pointer are eligible for spawning.
type ShapePolicy uint8

const (
	// PolicyEuclidean clamps offsets to the grid and keeps those within
	// Euclidean distance R of the pointer cell.
	PolicyEuclidean ShapePolicy = iota
	// PolicyDiamond skips out-of-grid offsets and keeps those with
	// |i|+|j| <= 1.5R.
	PolicyDiamond
)

// diamondSpread scales the Manhattan cutoff of the diamond policy.
const diamondSpread = 1.5

// String returns the config name of the policy.
func (p ShapePolicy) String() string {
	switch p {
	case PolicyEuclidean:
		return "euclidean"
	case PolicyDiamond:
		return "diamond"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// Next cycles to the other policy.
func (p ShapePolicy) Next() ShapePolicy {
	if p == PolicyEuclidean {
		return PolicyDiamond
	}
	return PolicyEuclidean
}

// ParsePolicy maps a config name to a ShapePolicy.
func ParsePolicy(name string) (ShapePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euclidean", "circle":
		return PolicyEuclidean, nil
	case "diamond", "manhattan":
		return PolicyDiamond, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// SpawnParams configures the spawn spray.
type SpawnParams struct {
	Radius      int
	Probability float64 // chance an eligible empty cell is filled
	Policy      ShapePolicy
	HueStep     float64 // hue advance per scanline
	HueWrap     float64 // hue modulus
}

// AdvanceHue steps the hue and wraps it into [0, wrap).
func AdvanceHue(hue, step, wrap float64) float64 {
	h := math.Mod(hue+step, wrap)
	if h < 0 {
		h += wrap
	}
	return h
}

// Spawn sprays grains of the current hue around cell (cx, cy), which may lie
// outside the grid. Only empty cells are filled. The hue advances after every
// scanline of the offset scan, so a single call paints a small gradient.
// Returns the hue for the next call and the number of cells filled.
func Spawn(g *grid.Grid, cx, cy int, hue float64, p SpawnParams, rng Rand) (float64, int) {
	r := p.Radius
	if r < 0 {
		r = 0
	}

	filled := 0
	for i := -r; i <= r; i++ {
		for j := -r; j <= r; j++ {
			x, y, ok := p.Policy.target(g, cx, cy, i, j, r)
			if !ok || !g.IsEmpty(x, y) {
				continue
			}
			if rng.Float64() < p.Probability {
				g.Set(x, y, hue)
				if hue != grid.Empty {
					filled++
				}
			}
		}
		hue = AdvanceHue(hue, p.HueStep, p.HueWrap)
	}

	return hue, filled
}

// target resolves offset (i, j) to an in-bounds cell, or reports that the
// offset is not eligible under the policy.
func (p ShapePolicy) target(g *grid.Grid, cx, cy, i, j, r int) (int, int, bool) {
	switch p {
	case PolicyDiamond:
		x, y := cx+i, cy+j
		if !g.Exists(x, y) {
			return 0, 0, false
		}
		if float64(absInt(i)+absInt(j)) > float64(r)*diamondSpread {
			return 0, 0, false
		}
		return x, y, true
	default:
		x := clampInt(cx+i, 0, g.W-1)
		y := clampInt(cy+j, 0, g.H-1)
		dx := float64(x - cx)
		dy := float64(y - cy)
		if math.Sqrt(dx*dx+dy*dy) > float64(r) {
			return 0, 0, false
		}
		return x, y, true
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
