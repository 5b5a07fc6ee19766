// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Click modes for the graphical driver.
const (
	ClickModeSeed  = "seed"  // add a new stain at the cursor
	ClickModeReset = "reset" // restart with a single stain at the cursor
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Growth    GrowthConfig    `yaml:"growth"`
	Engine    EngineConfig    `yaml:"engine"`
	Layout    LayoutConfig    `yaml:"layout"`
	Input     InputConfig     `yaml:"input"`
	Presenter PresenterConfig `yaml:"presenter"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // Control panel to the right of the field, in pixels
}

// GridConfig holds field dimensions.
type GridConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	CoverThreshold float64 `yaml:"cover_threshold"` // A cell at or above this counts as covered
}

// GrowthConfig holds the stochastic growth rule.
type GrowthConfig struct {
	DeltaMin        float64 `yaml:"delta_min"`        // Lower bound of the per-step intensity increment
	DeltaMax        float64 `yaml:"delta_max"`        // Upper bound of the per-step intensity increment
	SaturationLevel float64 `yaml:"saturation_level"` // Above this a candidate is "near saturation"
	SaturatedProb   float64 `yaml:"saturated_prob"`   // Admission probability near saturation
	PartialProb     float64 `yaml:"partial_prob"`     // Admission probability for partially grown cells
	MaxFrontier     int     `yaml:"max_frontier"`     // Cap on active points per stain
	RestartBudget   int     `yaml:"restart_budget"`   // Iterations granted on replenishment
	InjectCount     int     `yaml:"inject_count"`     // Fresh points injected on replenishment
	InjectBelow     float64 `yaml:"inject_below"`     // Injection candidates must be below this intensity
}

// EngineConfig holds engine pacing.
type EngineConfig struct {
	MaxTicks int `yaml:"max_ticks"` // Visual horizon (0 = unlimited)
	SubSteps int `yaml:"sub_steps"` // Growth rounds per tick
}

// LayoutConfig holds the initial seeding configuration.
type LayoutConfig struct {
	EdgeSources     bool `yaml:"edge_sources"`     // One stain per edge midpoint
	InteriorSources int  `yaml:"interior_sources"` // Random interior stains
	InitialBudget   int  `yaml:"initial_budget"`   // Iteration budget of layout stains
	ClickBudget     int  `yaml:"click_budget"`     // Iteration budget of user seeds
}

// InputConfig holds interaction settings.
type InputConfig struct {
	ClickMode string `yaml:"click_mode"` // "seed" or "reset"
}

// PresenterConfig holds rendering parameters.
type PresenterConfig struct {
	Scale               int     `yaml:"scale"`                 // Screen pixels per cell
	FullRepaintFraction float64 `yaml:"full_repaint_fraction"` // Changed fraction above which the whole buffer is repainted
	Grain               float64 `yaml:"grain"`                 // Strength of the static noise grain (0 disables)
	GrainScale          float64 `yaml:"grain_scale"`           // Noise frequency in cells
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks         int `yaml:"window_ticks"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells          int     // Grid.Width * Grid.Height
	CoverThreshold float32 // Grid.CoverThreshold as float32
	DeltaMin32     float32
	DeltaMax32     float32
	InjectBelow32  float32
	ScreenW        int32 // Field width on screen plus panel
	ScreenH        int32 // Field height on screen
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

// computeDerived sanitizes loaded values and calculates derived ones.
func (c *Config) computeDerived() {
	if c.Grid.Width < 1 {
		c.Grid.Width = 1
	}
	if c.Grid.Height < 1 {
		c.Grid.Height = 1
	}
	if c.Grid.CoverThreshold <= 0 || c.Grid.CoverThreshold > 1 {
		c.Grid.CoverThreshold = 0.9
	}

	g := &c.Growth
	if g.DeltaMin < 0 {
		g.DeltaMin = 0
	}
	if g.DeltaMax < g.DeltaMin {
		g.DeltaMax = g.DeltaMin
	}
	g.SaturatedProb = clamp01(g.SaturatedProb)
	g.PartialProb = clamp01(g.PartialProb)
	if g.MaxFrontier < 1 {
		g.MaxFrontier = 1
	}
	if g.RestartBudget < 1 {
		g.RestartBudget = 1
	}
	if g.InjectCount < 0 {
		g.InjectCount = 0
	}

	if c.Engine.SubSteps < 1 {
		c.Engine.SubSteps = 1
	}
	if c.Engine.MaxTicks < 0 {
		c.Engine.MaxTicks = 0
	}
	if c.Layout.InteriorSources < 0 {
		c.Layout.InteriorSources = 0
	}
	if c.Layout.InitialBudget < 0 {
		c.Layout.InitialBudget = 0
	}
	if c.Layout.ClickBudget < 0 {
		c.Layout.ClickBudget = 0
	}
	if c.Input.ClickMode != ClickModeReset {
		c.Input.ClickMode = ClickModeSeed
	}
	if c.Presenter.Scale < 1 {
		c.Presenter.Scale = 1
	}
	c.Presenter.FullRepaintFraction = clamp01(c.Presenter.FullRepaintFraction)
	if c.Telemetry.WindowTicks < 1 {
		c.Telemetry.WindowTicks = 1
	}

	c.Derived.Cells = c.Grid.Width * c.Grid.Height
	c.Derived.CoverThreshold = float32(c.Grid.CoverThreshold)
	c.Derived.DeltaMin32 = float32(g.DeltaMin)
	c.Derived.DeltaMax32 = float32(g.DeltaMax)
	c.Derived.InjectBelow32 = float32(g.InjectBelow)
	c.Derived.ScreenW = int32(c.Grid.Width*c.Presenter.Scale + c.Screen.PanelWidth)
	c.Derived.ScreenH = int32(c.Grid.Height * c.Presenter.Scale)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
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
