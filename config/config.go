// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/snakevo/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Neural     NeuralConfig     `yaml:"neural"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Agent      AgentConfig      `yaml:"agent"`
	Food       FoodConfig       `yaml:"food"`
	Fitness    FitnessConfig    `yaml:"fitness"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	TargetFPS      int `yaml:"target_fps"`
	TicksPerSecond int `yaml:"ticks_per_second"` // Simulation ticks per second while visualizing
	PanelWidth     int `yaml:"panel_width"`      // Width of the side control panel
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	CellNB int `yaml:"cell_nb"` // Side length of the square grid
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Size    int `yaml:"size"`
	Workers int `yaml:"workers"` // Per-tick worker goroutines (0 = GOMAXPROCS)
}

// NeuralConfig holds network topology. Inputs are always cell_nb^2 and
// outputs must equal the number of headings.
type NeuralConfig struct {
	Hidden  int `yaml:"hidden"`
	Outputs int `yaml:"outputs"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate float64 `yaml:"rate"` // Per-element reset probability
}

// AgentConfig holds snake body and lifetime parameters.
type AgentConfig struct {
	TickCap       int `yaml:"tick_cap"`       // Ticks before a forced timeout (0 = unlimited)
	InitialLength int `yaml:"initial_length"` // Body length at generation start
	StartOffsetX  int `yaml:"start_offset_x"` // Head offset from grid center
	StartOffsetY  int `yaml:"start_offset_y"`
}

// FoodConfig holds food placement parameters.
type FoodConfig struct {
	AvoidSnake bool `yaml:"avoid_snake"` // Resample food cells covered by the body
}

// Fitness policies.
const (
	FitnessTimeAlive = "time_alive"
	FitnessScore     = "score"
	FitnessCombined  = "combined"
)

// FitnessConfig selects the value fed to parent selection.
type FitnessConfig struct {
	Policy      string  `yaml:"policy"`       // time_alive, score, or combined
	ScoreWeight float64 `yaml:"score_weight"` // combined = time_alive + score_weight*score
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEvery   int `yaml:"log_every"`   // Log stats every N generations
	PerfWindow int `yaml:"perf_window"` // Ticks averaged per perf.csv row (0 = disabled)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	NumInputs int // World.CellNB squared
	StartX    int // Head cell at generation start
	StartY    int
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

// Default returns the embedded defaults.
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate checks that the configuration describes a runnable simulation.
func (c *Config) Validate() error {
	var errs []error
	if c.World.CellNB < 1 {
		errs = append(errs, fmt.Errorf("world.cell_nb must be positive, got %d", c.World.CellNB))
	}
	if c.Population.Size < 1 {
		errs = append(errs, fmt.Errorf("population.size must be positive, got %d", c.Population.Size))
	}
	if c.Population.Workers < 0 {
		errs = append(errs, fmt.Errorf("population.workers must not be negative, got %d", c.Population.Workers))
	}
	if c.Neural.Hidden < 1 {
		errs = append(errs, fmt.Errorf("neural.hidden must be positive, got %d", c.Neural.Hidden))
	}
	if c.Neural.Outputs != systems.NumOutputs {
		errs = append(errs, fmt.Errorf("neural.outputs must be %d (one per heading), got %d", systems.NumOutputs, c.Neural.Outputs))
	}
	if c.Mutation.Rate < 0 || c.Mutation.Rate > 1 {
		errs = append(errs, fmt.Errorf("mutation.rate must be in [0, 1], got %g", c.Mutation.Rate))
	}
	if c.Telemetry.PerfWindow < 0 {
		errs = append(errs, fmt.Errorf("telemetry.perf_window must not be negative, got %d", c.Telemetry.PerfWindow))
	}
	if c.Agent.TickCap < 0 {
		errs = append(errs, fmt.Errorf("agent.tick_cap must not be negative, got %d", c.Agent.TickCap))
	}
	if c.Agent.InitialLength < 1 {
		errs = append(errs, fmt.Errorf("agent.initial_length must be positive, got %d", c.Agent.InitialLength))
	}
	if c.Fitness.ScoreWeight < 0 {
		errs = append(errs, fmt.Errorf("fitness.score_weight must not be negative, got %g", c.Fitness.ScoreWeight))
	}
	switch c.Fitness.Policy {
	case FitnessTimeAlive, FitnessScore, FitnessCombined:
	default:
		errs = append(errs, fmt.Errorf("fitness.policy %q is not one of %s, %s, %s",
			c.Fitness.Policy, FitnessTimeAlive, FitnessScore, FitnessCombined))
	}

	if c.World.CellNB >= 1 && c.Agent.InitialLength >= 1 {
		x, y := c.startHead()
		if x < 0 || y < 0 || y >= c.World.CellNB || x+c.Agent.InitialLength > c.World.CellNB {
			errs = append(errs, fmt.Errorf("initial body of length %d at (%d, %d) does not fit a %dx%d grid",
				c.Agent.InitialLength, x, y, c.World.CellNB, c.World.CellNB))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) startHead() (x, y int) {
	return c.World.CellNB/2 + c.Agent.StartOffsetX, c.World.CellNB/2 + c.Agent.StartOffsetY
}

// ComputeDerived calculates values derived from loaded config.
// Callers that edit a loaded config in place must call it again.
func (c *Config) ComputeDerived() {
	c.Derived.NumInputs = c.World.CellNB * c.World.CellNB
	c.Derived.StartX, c.Derived.StartY = c.startHead()
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
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
