package main

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sandfall/config"
	"github.com/pthm-cable/sandfall/systems"
	"github.com/pthm-cable/sandfall/telemetry"
)

// Targets for a tuned run.
type Targets struct {
	Fill   float64 // fill fraction at the end of the run
	Spread float64 // (p90 - p50) column height as a fraction of grid height
}

// Cost component weights.
const (
	costWeightFill    = 1.0
	costWeightSpread  = 0.5
	costWeightSettled = 0.25
)

// FitnessEvaluator runs headless simulations and computes cost.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	targets     Targets
	statsWindow int

	mu       sync.Mutex
	lastFill float64 // mean final fill from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		targets:     targets,
		statsWindow: baseCfg.Telemetry.StatsWindow,
	}
}

// LastFill returns the mean final fill fraction from the most recent evaluation.
func (fe *FitnessEvaluator) LastFill() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastFill
}

// runResult holds the results from a single simulation run.
type runResult struct {
	final       telemetry.WindowStats // last flushed window
	windowStats []telemetry.WindowStats
	gridH       int
}

// Evaluate computes the cost for a parameter vector (lower = better),
// averaged over all seeds. Seeds run in parallel.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	costs := make([]float64, len(fe.seeds))
	fills := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(cfg, s)
			costs[idx] = fe.computeCost(result)
			fills[idx] = result.final.FillFraction
		}(i, seed)
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastFill = stat.Mean(fills, nil)
	fe.mu.Unlock()

	return stat.Mean(costs, nil)
}

// runSimulation executes a single headless run driven by the emitter.
// cfg is shared between goroutines and only read.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	rng := rand.New(rand.NewSource(seed))
	sim := systems.NewSimulation(cfg.Screen.Width, cfg.Screen.Height, cfg.SimParams(), rng)
	collector := telemetry.NewCollector(fe.statsWindow)
	emitter := systems.Emitter{
		X:           cfg.Emitter.X,
		Y:           cfg.Emitter.Y,
		Sweep:       cfg.Emitter.Sweep,
		PeriodTicks: cfg.Emitter.PeriodTicks,
		EveryTicks:  cfg.Emitter.EveryTicks,
		StopAfter:   cfg.Emitter.StopAfter,
	}
	layout := sim.Layout()

	result := &runResult{gridH: layout.H}
	for tick := int32(0); tick < fe.maxTicks; {
		if px, py, fire := emitter.Position(int(tick), layout.ViewW, layout.ViewH); fire {
			collector.RecordSpawn(sim.SpawnAt(px, py))
		}
		collector.RecordStep(sim.Step())
		tick++

		if collector.ShouldFlush(tick) {
			result.windowStats = append(result.windowStats, collector.Flush(tick, sim.Grid()))
		}
	}

	// Flush a final partial window unless the run ended on a boundary
	if n := len(result.windowStats); n > 0 && result.windowStats[n-1].WindowEndTick == fe.maxTicks {
		result.final = result.windowStats[n-1]
		return result
	}
	result.final = collector.Flush(fe.maxTicks, sim.Grid())
	result.windowStats = append(result.windowStats, result.final)
	return result
}

// copyConfig creates a copy of the base config. Config holds only value
// fields, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeCost scores the end state of a run against the targets.
func (fe *FitnessEvaluator) computeCost(r *runResult) float64 {
	return runCost(r.final, r.gridH, fe.targets)
}

// runCost combines relative fill error, pile spread error and unsettled
// grains into one scalar.
func runCost(final telemetry.WindowStats, gridH int, targets Targets) float64 {
	fillErr := 0.0
	if targets.Fill > 0 {
		fillErr = (final.FillFraction - targets.Fill) / targets.Fill
	}

	spread := 0.0
	if gridH > 0 {
		spread = (final.HeightP90 - final.HeightP50) / float64(gridH)
	}
	spreadErr := spread - targets.Spread

	unsettled := 1 - final.Settled
	if final.Occupied == 0 {
		unsettled = 1
	}

	return costWeightFill*fillErr*fillErr +
		costWeightSpread*spreadErr*spreadErr +
		costWeightSettled*clamp01(unsettled)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
