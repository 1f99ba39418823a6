// Package main provides CMA-ES tuning of pour parameters for headless runs.
package main

import (
	"math"

	"github.com/pthm-cable/sandfall/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Brush
			{Name: "fill_probability", Path: "sand.fill_probability", Min: 0.02, Max: 1.0, Default: 0.2},
			{Name: "spawn_radius", Path: "sand.spawn_radius", Min: 0, Max: 20, Default: 7},
			// Emitter
			{Name: "every_ticks", Path: "emitter.every_ticks", Min: 1, Max: 20, Default: 2},
			{Name: "sweep", Path: "emitter.sweep", Min: 0, Max: 0.45, Default: 0.35},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Integer parameters are rounded. The emitter is always enabled since
// tuning runs are driven by it.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Order must match Specs order
	clamped := pv.Clamp(values)

	cfg.Sand.FillProbability = clamped[0]
	cfg.Sand.SpawnRadius = int(math.Round(clamped[1]))
	cfg.Emitter.EveryTicks = int(math.Round(clamped[2]))
	cfg.Emitter.Sweep = clamped[3]
	cfg.Emitter.Enabled = true
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Sand.FillProbability,
		float64(cfg.Sand.SpawnRadius),
		float64(cfg.Emitter.EveryTicks),
		cfg.Emitter.Sweep,
	}
}
