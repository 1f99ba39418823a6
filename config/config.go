// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/sandfall/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sand      SandConfig      `yaml:"sand"`
	Emitter   EmitterConfig   `yaml:"emitter"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Background string `yaml:"background"` // hex color, e.g. "#000000"
}

// SandConfig holds the grid and spawn parameters.
type SandConfig struct {
	Resolution      int     `yaml:"resolution"`       // cells across the shorter viewport side
	SpawnRadius     int     `yaml:"spawn_radius"`     // offset scan half-width in cells
	FillProbability float64 `yaml:"fill_probability"` // chance an eligible empty cell is filled
	ShapePolicy     string  `yaml:"shape_policy"`     // "euclidean" or "diamond"
	HueStep         float64 `yaml:"hue_step"`         // hue advance per spawn scanline
	HueWrap         float64 `yaml:"hue_wrap"`         // hue modulus (66 keeps red to yellow)
	InitialHue      float64 `yaml:"initial_hue"`
}

// EmitterConfig drives the scripted pointer used in headless runs.
type EmitterConfig struct {
	Enabled     bool    `yaml:"enabled"`
	X           float64 `yaml:"x"`            // horizontal center as a fraction of the viewport
	Y           float64 `yaml:"y"`            // vertical position as a fraction of the viewport
	Sweep       float64 `yaml:"sweep"`        // horizontal amplitude as a fraction of the viewport
	PeriodTicks int     `yaml:"period_ticks"` // ticks per full sweep
	EveryTicks  int     `yaml:"every_ticks"`  // spawn once every N ticks
	StopAfter   int     `yaml:"stop_after"`   // stop emitting after N ticks (0 = never)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int     `yaml:"stats_window"` // ticks per stats window
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	SaturationThreshold float64 `yaml:"saturation_threshold"` // fill fraction that triggers a saturated bookmark
	BurstMultiplier     float64 `yaml:"burst_multiplier"`     // spawned vs rolling mean that triggers a burst bookmark
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Policy     systems.ShapePolicy
	Background colorful.Color
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse overlays YAML data on the embedded defaults, then validates.
// Only fields present in data are overwritten.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks parameters that would make the simulation meaningless.
// A viewport smaller than the resolution is not an error: the cell size
// clamps to one pixel.
func (c *Config) Validate() error {
	var problems []string

	if c.Sand.Resolution <= 0 {
		problems = append(problems, fmt.Sprintf("sand.resolution must be positive, got %d", c.Sand.Resolution))
	}
	if c.Sand.SpawnRadius < 0 {
		problems = append(problems, fmt.Sprintf("sand.spawn_radius must not be negative, got %d", c.Sand.SpawnRadius))
	}
	if c.Sand.FillProbability < 0 || c.Sand.FillProbability > 1 {
		problems = append(problems, fmt.Sprintf("sand.fill_probability must be in [0, 1], got %v", c.Sand.FillProbability))
	}
	if c.Sand.HueWrap <= 0 {
		problems = append(problems, fmt.Sprintf("sand.hue_wrap must be positive, got %v", c.Sand.HueWrap))
	}
	if c.Sand.InitialHue < 0 || (c.Sand.HueWrap > 0 && c.Sand.InitialHue >= c.Sand.HueWrap) {
		problems = append(problems, fmt.Sprintf("sand.initial_hue must be in [0, hue_wrap), got %v", c.Sand.InitialHue))
	}
	if _, err := systems.ParsePolicy(c.Sand.ShapePolicy); err != nil {
		problems = append(problems, fmt.Sprintf("sand.shape_policy: %v", err))
	}
	if _, err := colorful.Hex(c.Screen.Background); err != nil {
		problems = append(problems, fmt.Sprintf("screen.background: %v", err))
	}
	if c.Emitter.Enabled && c.Emitter.EveryTicks <= 0 {
		problems = append(problems, fmt.Sprintf("emitter.every_ticks must be positive, got %d", c.Emitter.EveryTicks))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Both already validated
	c.Derived.Policy, _ = systems.ParsePolicy(c.Sand.ShapePolicy)
	c.Derived.Background, _ = colorful.Hex(c.Screen.Background)

	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 1
	}
	if c.Emitter.PeriodTicks < 1 {
		c.Emitter.PeriodTicks = 1
	}
}

// SimParams converts the sand section into simulation parameters.
func (c *Config) SimParams() systems.Params {
	return systems.Params{
		Resolution: c.Sand.Resolution,
		InitialHue: c.Sand.InitialHue,
		Spawn: systems.SpawnParams{
			Radius:      c.Sand.SpawnRadius,
			Probability: c.Sand.FillProbability,
			Policy:      c.Derived.Policy,
			HueStep:     c.Sand.HueStep,
			HueWrap:     c.Sand.HueWrap,
		},
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
