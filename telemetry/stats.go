// Package telemetry aggregates per-generation statistics and writes them out.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one finished generation.
type GenerationStats struct {
	RunID      string `csv:"run_id"`
	Generation int    `csv:"generation"`
	Population int    `csv:"population"`

	// Selection fitness
	TotalFitness  float64 `csv:"total_fitness"`
	BestFitness   float64 `csv:"best_fitness"`
	MeanFitness   float64 `csv:"mean_fitness"`
	StdFitness    float64 `csv:"std_fitness"`
	MedianFitness float64 `csv:"median_fitness"`

	// Food eaten
	BestScore int     `csv:"best_score"`
	MeanScore float64 `csv:"mean_score"`

	MaxLength  int  `csv:"max_length"`
	BestSlot   int  `csv:"best_slot"`
	Degenerate bool `csv:"degenerate"` // total fitness was not positive and selection fell back to uniform
	Ticks      int  `csv:"ticks"`      // ticks the generation ran for
}

// SlotResult is the final state of one slot at a generation boundary.
type SlotResult struct {
	Fitness   float64
	TimeAlive int
	Score     int
	Length    int
}

// Summarize computes generation statistics from per-slot results.
func Summarize(generation int, results []SlotResult) GenerationStats {
	s := GenerationStats{
		Generation: generation,
		Population: len(results),
		BestSlot:   -1,
	}
	if len(results) == 0 {
		return s
	}

	fitness := make([]float64, len(results))
	scores := make([]float64, len(results))
	for i, r := range results {
		fitness[i] = r.Fitness
		scores[i] = float64(r.Score)
		if r.Score > s.BestScore {
			s.BestScore = r.Score
		}
		if r.Length > s.MaxLength {
			s.MaxLength = r.Length
		}
		if r.TimeAlive > s.Ticks {
			s.Ticks = r.TimeAlive
		}
	}

	s.TotalFitness = floats.Sum(fitness)
	s.BestSlot = floats.MaxIdx(fitness)
	s.BestFitness = fitness[s.BestSlot]
	s.MeanFitness, s.StdFitness = stat.PopMeanStdDev(fitness, nil)
	s.MeanScore = stat.Mean(scores, nil)
	s.Degenerate = s.TotalFitness <= 0

	sorted := make([]float64, len(fitness))
	copy(sorted, fitness)
	sort.Float64s(sorted)
	s.MedianFitness = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Float64("total_fitness", s.TotalFitness),
		slog.Float64("best_fitness", s.BestFitness),
		slog.Float64("mean_fitness", s.MeanFitness),
		slog.Float64("std_fitness", s.StdFitness),
		slog.Float64("median_fitness", s.MedianFitness),
		slog.Int("best_score", s.BestScore),
		slog.Float64("mean_score", s.MeanScore),
		slog.Int("max_length", s.MaxLength),
		slog.Int("best_slot", s.BestSlot),
		slog.Bool("degenerate", s.Degenerate),
		slog.Int("ticks", s.Ticks),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}
