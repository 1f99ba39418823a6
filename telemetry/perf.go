package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/sandfall/systems"
)

// Phase identifies a timed part of a host update.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseSpawn
	PhaseStep
	PhaseTelemetry

	// NumPhases is the number of phases tracked per tick.
	NumPhases
)

var phaseNames = [NumPhases]string{"input", "spawn", "step", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= NumPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// tickSample is one tick's timing and grain activity.
type tickSample struct {
	total     time.Duration
	phases    [NumPhases]time.Duration
	moved     int
	processed int
}

// PerfCollector keeps a rolling window of tick timings alongside how many
// grains each tick moved, so the cost of a step can be read against the
// amount of sand that was actually falling.
type PerfCollector struct {
	ring []tickSample
	next int
	n    int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]tickSample, windowSize)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing ph.
// A phase entered several times in one tick accumulates.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < NumPhases {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// RecordMoves adds one step's grain tally to the current tick.
func (p *PerfCollector) RecordMoves(m systems.MoveCounts) {
	p.cur.moved += m.Moved()
	p.cur.processed += m.Total()
}

// EndTick closes the running phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.n < len(p.ring) {
		p.n++
	}
}

// RecordFrame marks a rendered frame. Graphical host only.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats aggregates the current window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // share of the average tick

	// MovedPerTick is the mean number of grains that changed cell per tick.
	MovedPerTick float64
	// Activity is moved grains over processed grains; 0 when nothing is on the grid.
	Activity float64
	// NsPerGrain is the average step phase time per processed grain.
	NsPerGrain float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.n == 0 {
		return s
	}

	var total time.Duration
	var phases [NumPhases]time.Duration
	var moved, processed int
	for _, t := range p.ring[:p.n] {
		total += t.total
		if t.total > s.MaxTickDuration {
			s.MaxTickDuration = t.total
		}
		for i, d := range t.phases {
			phases[i] += d
		}
		moved += t.moved
		processed += t.processed
	}

	count := time.Duration(p.n)
	s.AvgTickDuration = total / count
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	for i := range phases {
		s.PhaseAvg[i] = phases[i] / count
		if s.AvgTickDuration > 0 {
			s.PhasePct[i] = float64(s.PhaseAvg[i]) / float64(s.AvgTickDuration) * 100
		}
	}

	s.MovedPerTick = float64(moved) / float64(p.n)
	if processed > 0 {
		s.Activity = float64(moved) / float64(processed)
		s.NsPerGrain = float64(phases[PhaseStep]) / float64(processed)
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Float64("moved_per_tick", s.MovedPerTick),
		slog.Float64("activity", s.Activity),
		slog.Float64("ns_per_grain", s.NsPerGrain),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	MovedPerTick float64 `csv:"moved_per_tick"`
	Activity     float64 `csv:"activity"`
	NsPerGrain   float64 `csv:"ns_per_grain"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	SpawnPct     float64 `csv:"spawn_pct"`
	StepPct      float64 `csv:"step_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for perf.csv.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		MovedPerTick: s.MovedPerTick,
		Activity:     s.Activity,
		NsPerGrain:   s.NsPerGrain,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		SpawnPct:     s.PhasePct[PhaseSpawn],
		StepPct:      s.PhasePct[PhaseStep],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
