package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandfall/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Grains   int
	GridW    int
	GridH    int
	CellSize int
	Hue      float64
	HueColor rl.Color
	Tick     int32
	Speed    int
	FPS      int32
	Paused   bool
	Policy   string
	Radius   int
	Zoom     float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	// Grid summary
	rl.DrawText(
		fmt.Sprintf("Grains: %d | Grid: %dx%d @ %dpx", data.Grains, data.GridW, data.GridH, data.CellSize),
		10, 35, 16, rl.LightGray,
	)

	// Simulation info
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Zoom: %.1fx", data.Tick, data.Speed, data.FPS, data.Zoom),
		10, 55, 16, rl.LightGray,
	)

	// Brush
	rl.DrawText(fmt.Sprintf("Brush: %s r=%d | Hue: %.2f", data.Policy, data.Radius, data.Hue), 10, 75, 16, rl.LightGray)
	rl.DrawRectangle(330, 77, 12, 12, data.HueColor)

	// Status
	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 95, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsPanel renders the most recent telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the stats panel. saturation is the fill fraction at which the
// fill bar changes color.
func (s *StatsPanel) Draw(stats telemetry.WindowStats, saturation float64) {
	r := s.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	panelHeight := lineHeight*11 + padding*2
	r.DrawPanel(s.x, s.y, s.width, panelHeight)

	x := s.x + padding
	y := s.y + padding
	inner := s.width - padding*2

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Window %d-%d", stats.WindowStartTick, stats.WindowEndTick))
	y = r.DrawLabelValue(x, y, "Grains", fmt.Sprintf("%d", stats.Occupied))
	y = r.DrawBar(x, y, "Fill", float32(stats.FillFraction), float32(saturation), inner)
	y = r.DrawLabelValue(x, y, "Spawned", fmt.Sprintf("%d in %d", stats.Spawned, stats.Spawns))
	y = r.DrawLabelValue(x, y, "Moves D/L/R", fmt.Sprintf("%d / %d / %d", stats.MovesDown, stats.MovesLeft, stats.MovesRight))
	y = r.DrawBar(x, y, "Settled", float32(stats.Settled), 2, inner)
	y = r.DrawLabelValue(x, y, "Hue", fmt.Sprintf("%.1f ± %.1f", stats.HueMean, stats.HueStd))
	y = r.DrawLabelValue(x, y, "Height p50", fmt.Sprintf("%.0f", stats.HeightP50))
	y = r.DrawLabelValue(x, y, "Height p90", fmt.Sprintf("%.0f", stats.HeightP90))
	r.DrawLabelValue(x, y, "Height max", fmt.Sprintf("%d", stats.HeightMax))
}

// PerfPanel renders the tick phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s | Max: %s | %.0f ticks/s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond),
		stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("Moved/tick: %.0f | Active: %.0f%% | %.1f ns/grain",
		stats.MovedPerTick, stats.Activity*100, stats.NsPerGrain), x, y, 12, rl.LightGray)
	y += 16

	for phase := telemetry.Phase(0); phase < telemetry.NumPhases; phase++ {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
