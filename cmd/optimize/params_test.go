package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/snakevo/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{0.1, 16}

	got := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(got[i]-raw[i]) > 1e-9 {
			t.Errorf("param %s = %v, want %v", pv.Specs[i].Name, got[i], raw[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()

	got := pv.Clamp([]float64{-1, 7.6})
	if got[0] != pv.Specs[0].Min {
		t.Errorf("rate = %v, want %v", got[0], pv.Specs[0].Min)
	}
	if got[1] != 8 {
		t.Errorf("hidden = %v, want 8", got[1])
	}

	got = pv.Clamp([]float64{2, 500})
	if got[0] != pv.Specs[0].Max || got[1] != pv.Specs[1].Max {
		t.Errorf("upper clamp = %v", got)
	}
}

func TestApplyToConfig(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{0.25, 31.4})

	if cfg.Mutation.Rate != 0.25 || cfg.Neural.Hidden != 31 {
		t.Errorf("rate/hidden = %v/%d, want 0.25/31", cfg.Mutation.Rate, cfg.Neural.Hidden)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}

	back := pv.ExtractFromConfig(cfg)
	if back[0] != 0.25 || back[1] != 31 {
		t.Errorf("ExtractFromConfig = %v", back)
	}
}
