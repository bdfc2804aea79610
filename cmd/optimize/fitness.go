package main

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/snakevo/config"
	"github.com/pthm-cable/snakevo/game"
	"github.com/pthm-cable/snakevo/telemetry"
)

// FitnessEvaluator runs headless evolutions and scores parameter vectors.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	window      int // trailing generations averaged into the score
	seeds       []int64
	baseConfig  *config.Config

	mu        sync.Mutex
	lastScore float64 // mean best score of the most recent evaluation
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations, window int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	if window < 1 || window > generations {
		window = generations
	}
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		window:      window,
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// LastScore returns the mean best food score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	score   float64
	err     error
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the negated mean best fitness over the trailing window of
// generations, averaged across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	// Seeds already run in parallel.
	cfg.Population.Workers = 1
	cfg.Telemetry.PerfWindow = 0
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runEvolution(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	fitness := make([]float64, len(results))
	scores := make([]float64, len(results))
	for i, r := range results {
		if r.err != nil {
			return 0, fmt.Errorf("seed %d: %w", fe.seeds[i], r.err)
		}
		fitness[i] = r.fitness
		scores[i] = r.score
	}

	fe.mu.Lock()
	fe.lastScore = stat.Mean(scores, nil)
	fe.mu.Unlock()

	return -stat.Mean(fitness, nil), nil
}

// runEvolution executes one headless run and summarizes its trailing window.
func (fe *FitnessEvaluator) runEvolution(cfg *config.Config, seed int64) seedResult {
	var history []telemetry.GenerationStats

	g, err := game.NewGame(cfg, game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 64,
		MaxGenerations: fe.generations,
		StatsCallback: func(s telemetry.GenerationStats) {
			history = append(history, s)
		},
	})
	if err != nil {
		return seedResult{err: err}
	}
	defer g.Close()

	for !g.Done() {
		if err := g.Update(); err != nil {
			return seedResult{err: err}
		}
	}

	tail := history[len(history)-fe.window:]
	best := make([]float64, len(tail))
	scores := make([]float64, len(tail))
	for i, s := range tail {
		best[i] = s.BestFitness
		scores[i] = float64(s.BestScore)
	}
	return seedResult{
		fitness: stat.Mean(best, nil),
		score:   stat.Mean(scores, nil),
	}
}
