package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	results := []SlotResult{
		{Fitness: 10, TimeAlive: 10, Score: 0, Length: 3},
		{Fitness: 51, TimeAlive: 51, Score: 2, Length: 5},
		{Fitness: 4, TimeAlive: 4, Score: 1, Length: 4},
		{Fitness: 15, TimeAlive: 15, Score: 0, Length: 3},
	}

	s := Summarize(7, results)

	if s.Generation != 7 || s.Population != 4 {
		t.Errorf("generation/population = %d/%d, want 7/4", s.Generation, s.Population)
	}
	if s.TotalFitness != 80 {
		t.Errorf("total = %v, want 80", s.TotalFitness)
	}
	if s.BestFitness != 51 || s.BestSlot != 1 {
		t.Errorf("best = %v at slot %d, want 51 at slot 1", s.BestFitness, s.BestSlot)
	}
	if s.MeanFitness != 20 {
		t.Errorf("mean = %v, want 20", s.MeanFitness)
	}
	// Population std of {10, 51, 4, 15}: sqrt(((-10)^2 + 31^2 + (-16)^2 + (-5)^2) / 4)
	wantStd := math.Sqrt((100 + 961 + 256 + 25) / 4.0)
	if math.Abs(s.StdFitness-wantStd) > 1e-9 {
		t.Errorf("std = %v, want %v", s.StdFitness, wantStd)
	}
	if s.BestScore != 2 || s.MeanScore != 0.75 {
		t.Errorf("scores best/mean = %d/%v, want 2/0.75", s.BestScore, s.MeanScore)
	}
	if s.MaxLength != 5 || s.Ticks != 51 {
		t.Errorf("max length/ticks = %d/%d, want 5/51", s.MaxLength, s.Ticks)
	}
	if s.Degenerate {
		t.Error("non-zero generation flagged degenerate")
	}
}

func TestSummarizeDegenerate(t *testing.T) {
	s := Summarize(0, make([]SlotResult, 4))

	if !s.Degenerate {
		t.Error("zero fitness generation not flagged degenerate")
	}
	if s.TotalFitness != 0 || s.MeanFitness != 0 || s.StdFitness != 0 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestSummarizeNegativeTotalIsDegenerate(t *testing.T) {
	results := []SlotResult{{Fitness: -5}, {Fitness: 2}}
	if s := Summarize(0, results); !s.Degenerate {
		t.Errorf("total fitness %v not flagged degenerate", s.TotalFitness)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(3, nil)
	if s.Population != 0 || s.BestSlot != -1 {
		t.Errorf("empty summary = %+v", s)
	}
}
