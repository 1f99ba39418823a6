package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sandfall/grid"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Grid occupancy at window end
	Occupied     int     `csv:"occupied"`
	FillFraction float64 `csv:"fill_fraction"`

	// Events during window
	Spawns  int `csv:"spawns"`
	Spawned int `csv:"spawned"`

	// Movement during window
	MovesDown  int     `csv:"moves_down"`
	MovesLeft  int     `csv:"moves_left"`
	MovesRight int     `csv:"moves_right"`
	Settled    float64 `csv:"settled_fraction"` // stays over grain-steps

	// Hue distribution (sampled at window end)
	HueMean float64 `csv:"hue_mean"`
	HueStd  float64 `csv:"hue_std"`

	// Pile shape (sampled at window end)
	HeightP50 float64 `csv:"height_p50"`
	HeightP90 float64 `csv:"height_p90"`
	HeightMax int     `csv:"height_max"`
}

// Moves returns the number of grain moves in the window.
func (s WindowStats) Moves() int {
	return s.MovesDown + s.MovesLeft + s.MovesRight
}

// AtRest reports whether the grid holds grains and none of them moved
// during the window.
func (s WindowStats) AtRest() bool {
	return s.Occupied > 0 && s.Moves() == 0
}

// GridSample is the end-of-window view of the grid used by Flush.
type GridSample struct {
	Occupied     int
	FillFraction float64
	HueMean      float64
	HueStd       float64
	HeightP50    float64
	HeightP90    float64
	HeightMax    int
}

// SampleGrid computes occupancy, hue and column-height statistics.
func SampleGrid(g *grid.Grid) GridSample {
	var s GridSample

	hues := make([]float64, 0, g.Occupied())
	for _, v := range g.Cells() {
		if v != grid.Empty {
			hues = append(hues, v)
		}
	}
	s.Occupied = len(hues)
	s.FillFraction = float64(s.Occupied) / float64(g.W*g.H)
	s.HueMean, s.HueStd = ComputeHueStats(hues)

	heights := make([]float64, g.W)
	for x := 0; x < g.W; x++ {
		h := g.ColumnHeight(x)
		heights[x] = float64(h)
		if h > s.HeightMax {
			s.HeightMax = h
		}
	}
	s.HeightP50, s.HeightP90 = ComputeHeightQuantiles(heights)

	return s
}

// ComputeHueStats returns the mean and standard deviation of hue values.
// Fewer than two values give a zero deviation.
func ComputeHueStats(hues []float64) (mean, std float64) {
	switch len(hues) {
	case 0:
		return 0, 0
	case 1:
		return hues[0], 0
	}
	return stat.MeanStdDev(hues, nil)
}

// ComputeHeightQuantiles returns the empirical median and 90th percentile.
// The input is not modified.
func ComputeHeightQuantiles(heights []float64) (p50, p90 float64) {
	if len(heights) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(heights))
	copy(sorted, heights)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return p50, p90
}

// TotalHue sums all occupied hue values. Stepping must not change it.
func TotalHue(g *grid.Grid) float64 {
	return floats.Sum(g.Cells())
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("occupied", s.Occupied),
		slog.Float64("fill_fraction", s.FillFraction),
		slog.Int("spawns", s.Spawns),
		slog.Int("spawned", s.Spawned),
		slog.Int("moves", s.Moves()),
		slog.Float64("settled_fraction", s.Settled),
		slog.Float64("hue_mean", s.HueMean),
		slog.Float64("hue_std", s.HueStd),
		slog.Float64("height_p50", s.HeightP50),
		slog.Float64("height_p90", s.HeightP90),
		slog.Int("height_max", s.HeightMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"occupied", s.Occupied,
		"fill_fraction", s.FillFraction,
		"spawns", s.Spawns,
		"spawned", s.Spawned,
		"moves_down", s.MovesDown,
		"moves_left", s.MovesLeft,
		"moves_right", s.MovesRight,
		"settled_fraction", s.Settled,
		"hue_mean", s.HueMean,
		"hue_std", s.HueStd,
		"height_p50", s.HeightP50,
		"height_p90", s.HeightP90,
		"height_max", s.HeightMax,
	)
}
