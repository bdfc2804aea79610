package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.World.CellNB != 20 {
		t.Errorf("cell_nb = %d, want 20", cfg.World.CellNB)
	}
	if cfg.Mutation.Rate != 0.1 {
		t.Errorf("mutation rate = %g, want 0.1", cfg.Mutation.Rate)
	}
	if cfg.Agent.TickCap != 50 {
		t.Errorf("tick cap = %d, want 50", cfg.Agent.TickCap)
	}
	if cfg.Neural.Outputs != 4 {
		t.Errorf("outputs = %d, want 4", cfg.Neural.Outputs)
	}
	if cfg.Fitness.Policy != FitnessTimeAlive {
		t.Errorf("fitness policy = %q, want %q", cfg.Fitness.Policy, FitnessTimeAlive)
	}
	if cfg.Derived.NumInputs != 400 {
		t.Errorf("derived inputs = %d, want 400", cfg.Derived.NumInputs)
	}
	if cfg.Derived.StartX != 10 || cfg.Derived.StartY != 10 {
		t.Errorf("derived start = (%d, %d), want (10, 10)", cfg.Derived.StartX, cfg.Derived.StartY)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "world:\n  cell_nb: 25\npopulation:\n  size: 8\nagent:\n  start_offset_x: 1\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.World.CellNB != 25 || cfg.Population.Size != 8 {
		t.Errorf("overlay not applied: cell_nb=%d size=%d", cfg.World.CellNB, cfg.Population.Size)
	}
	// Untouched fields keep their defaults.
	if cfg.Neural.Hidden != 16 {
		t.Errorf("hidden = %d, want default 16", cfg.Neural.Hidden)
	}
	if cfg.Derived.StartX != 13 || cfg.Derived.StartY != 12 {
		t.Errorf("derived start = (%d, %d), want (13, 12)", cfg.Derived.StartX, cfg.Derived.StartY)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero grid", func(c *Config) { c.World.CellNB = 0 }, "world.cell_nb"},
		{"zero population", func(c *Config) { c.Population.Size = 0 }, "population.size"},
		{"negative workers", func(c *Config) { c.Population.Workers = -1 }, "population.workers"},
		{"zero hidden", func(c *Config) { c.Neural.Hidden = 0 }, "neural.hidden"},
		{"two outputs", func(c *Config) { c.Neural.Outputs = 2 }, "neural.outputs"},
		{"six outputs", func(c *Config) { c.Neural.Outputs = 6 }, "neural.outputs"},
		{"negative score weight", func(c *Config) { c.Fitness.ScoreWeight = -100; c.Fitness.Policy = FitnessCombined }, "fitness.score_weight"},
		{"rate above one", func(c *Config) { c.Mutation.Rate = 1.5 }, "mutation.rate"},
		{"negative cap", func(c *Config) { c.Agent.TickCap = -1 }, "agent.tick_cap"},
		{"negative perf window", func(c *Config) { c.Telemetry.PerfWindow = -1 }, "telemetry.perf_window"},
		{"unknown policy", func(c *Config) { c.Fitness.Policy = "kills" }, "fitness.policy"},
		{"body off grid", func(c *Config) { c.Agent.StartOffsetX = 9 }, "does not fit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Size = 33

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Population.Size != 33 {
		t.Errorf("size = %d, want 33", loaded.Population.Size)
	}
}
