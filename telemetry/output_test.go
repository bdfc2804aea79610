package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/snakevo/config"
)

func TestNewOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager methods are no-ops.
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Errorf("nil WriteGeneration error: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("nil WritePerf error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close error: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir = %q", om.Dir())
	}
}

func TestOutputManagerWritesGenerations(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager error: %v", err)
	}

	for gen := 0; gen < 3; gen++ {
		stats := GenerationStats{RunID: "abc", Generation: gen, BestFitness: float64(10 * gen)}
		if err := om.WriteGeneration(stats); err != nil {
			t.Fatalf("WriteGeneration error: %v", err)
		}
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	path := filepath.Join(dir, "generations.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "run_id"); n != 1 {
		t.Errorf("header written %d times, want 1", n)
	}

	records, err := ReadGenerations(path)
	if err != nil {
		t.Fatalf("ReadGenerations error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[2].Generation != 2 || records[2].BestFitness != 20 || records[2].RunID != "abc" {
		t.Errorf("last record = %+v", records[2])
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not load: %v", err)
	}
}

func TestOutputManagerWritesPerf(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager error: %v", err)
	}

	stats := PerfStats{PhasePct: map[string]float64{PhaseSlots: 75}}
	for _, end := range []int64{600, 1200} {
		if err := om.WritePerf(stats, end); err != nil {
			t.Fatalf("WritePerf error: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1200,") {
		t.Errorf("last row = %q", lines[2])
	}
}
