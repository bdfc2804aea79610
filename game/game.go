package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pthm-cable/snakevo/config"
	"github.com/pthm-cable/snakevo/systems"
	"github.com/pthm-cable/snakevo/telemetry"
)

// Options configures a game run.
type Options struct {
	Seed           int64
	LogStats       bool   // emit generation stats via slog
	OutputDir      string // CSV logs and config snapshot (empty = disabled)
	Headless       bool
	StepsPerUpdate int  // ticks per Update call
	Manual         bool // single keyboard-driven snake instead of a population
	MaxGenerations int  // stop after N generations (0 = unlimited)

	// StatsCallback is invoked with every finished generation's stats.
	StatsCallback func(telemetry.GenerationStats)
}

// Game drives either an evolving population or a single manual snake.
type Game struct {
	cfg   *config.Config
	opts  Options
	rng   *rand.Rand
	runID string

	pop    *Population
	manual *Environment

	output *telemetry.OutputManager
	perf   *telemetry.PerfCollector
	ticks  int64

	visualize bool
	paused    bool

	lastStats telemetry.GenerationStats
	hasStats  bool
	done      bool
}

// NewGame creates a game from cfg. The population or manual environment is
// created immediately.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		runID:     uuid.NewString(),
		visualize: !opts.Headless,
	}

	if opts.Manual {
		envCfg := ParamsFromConfig(cfg).Env
		envCfg.TickCap = 0
		g.manual = NewEnvironment(envCfg, rand.New(rand.NewSource(g.rng.Int63())))
		return g, nil
	}

	pop, err := NewPopulation(ParamsFromConfig(cfg), g.rng)
	if err != nil {
		return nil, fmt.Errorf("creating population: %w", err)
	}
	g.pop = pop

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		pop.Close()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		pop.Close()
		return nil, err
	}
	g.output = output

	if window := cfg.Telemetry.PerfWindow; window > 0 {
		g.perf = telemetry.NewPerfCollector(window)
		pop.SetPerf(g.perf)
	}

	slog.Info("population created",
		"run_id", g.runID,
		"seed", opts.Seed,
		"size", pop.Size(),
		"grid", cfg.World.CellNB,
		"hidden", cfg.Neural.Hidden,
		"mutation_rate", cfg.Mutation.Rate,
		"fitness_policy", cfg.Fitness.Policy,
	)

	return g, nil
}

// Update advances the simulation by StepsPerUpdate ticks.
func (g *Game) Update() error {
	if g.paused || g.done {
		return nil
	}
	for i := 0; i < g.opts.StepsPerUpdate; i++ {
		if err := g.step(); err != nil {
			return err
		}
		if g.done {
			break
		}
	}
	return nil
}

// step advances one tick.
func (g *Game) step() error {
	if g.manual != nil {
		if !g.manual.Done {
			g.manual.Advance(g.manual.Snake.Heading)
		}
		return nil
	}

	if g.perf != nil {
		g.perf.StartTick()
	}
	stats, ended, err := g.pop.Step()
	if err != nil {
		return err
	}
	if ended {
		if g.perf != nil {
			g.perf.StartPhase(telemetry.PhaseTelemetry)
		}
		if err := g.finishGeneration(stats); err != nil {
			return err
		}
	}
	if g.perf != nil {
		g.perf.EndTick()
		return g.flushPerf()
	}
	return nil
}

// flushPerf emits a perf record once every full window of ticks.
func (g *Game) flushPerf() error {
	g.ticks++
	if g.ticks%int64(g.perf.WindowSize()) != 0 {
		return nil
	}
	stats := g.perf.Stats()
	if g.opts.LogStats {
		stats.LogStats()
	}
	return g.output.WritePerf(stats, g.ticks)
}

// finishGeneration records stats for a completed generation.
func (g *Game) finishGeneration(stats telemetry.GenerationStats) error {
	stats.RunID = g.runID
	g.lastStats = stats
	g.hasStats = true

	if g.opts.LogStats && g.cfg.Telemetry.LogEvery > 0 && stats.Generation%g.cfg.Telemetry.LogEvery == 0 {
		stats.LogStats()
	}
	if err := g.output.WriteGeneration(stats); err != nil {
		return err
	}
	if g.opts.StatsCallback != nil {
		g.opts.StatsCallback(stats)
	}

	if g.opts.MaxGenerations > 0 && g.pop.Generation() >= g.opts.MaxGenerations {
		slog.Info("max generations reached", "generation", g.pop.Generation())
		g.done = true
	}
	return nil
}

// Steer applies a keyboard heading to the manual snake. Reversals and
// same-axis turns are ignored.
func (g *Game) Steer(dir systems.Direction) bool {
	if g.manual == nil || g.manual.Done {
		return false
	}
	return g.manual.Snake.Steer(dir)
}

// Restart resets the manual environment after a game over.
func (g *Game) Restart() {
	if g.manual != nil && g.manual.Done {
		g.manual.Reset()
	}
}

// Close stops workers and flushes output files.
func (g *Game) Close() error {
	if g.pop != nil {
		g.pop.Close()
	}
	return g.output.Close()
}

// Done reports whether MaxGenerations has been reached.
func (g *Game) Done() bool {
	return g.done
}

// Manual reports whether the game runs a single keyboard-driven snake.
func (g *Game) Manual() bool {
	return g.manual != nil
}

// Visualize reports whether slots should be drawn.
func (g *Game) Visualize() bool {
	return g.visualize
}

// SetVisualize toggles slot drawing.
func (g *Game) SetVisualize(on bool) {
	g.visualize = on
}

// Paused reports whether updates are suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// TogglePause suspends or resumes updates.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// StepsPerUpdate returns ticks advanced per Update call.
func (g *Game) StepsPerUpdate() int {
	return g.opts.StepsPerUpdate
}

// SetStepsPerUpdate changes ticks advanced per Update call.
func (g *Game) SetStepsPerUpdate(n int) {
	if n < 1 {
		n = 1
	}
	g.opts.StepsPerUpdate = n
}

// RunID returns the unique id stamped on this run's telemetry.
func (g *Game) RunID() string {
	return g.runID
}

// Generation returns the running generation index (0 in manual mode).
func (g *Game) Generation() int {
	if g.pop == nil {
		return 0
	}
	return g.pop.Generation()
}

// Alive returns how many slots are still running.
func (g *Game) Alive() int {
	if g.pop == nil {
		if g.manual.Done {
			return 0
		}
		return 1
	}
	return g.pop.Alive()
}

// Size returns the number of slots.
func (g *Game) Size() int {
	if g.pop == nil {
		return 1
	}
	return g.pop.Size()
}

// Tick returns ticks elapsed in the current generation or manual game.
func (g *Game) Tick() int {
	if g.pop == nil {
		return g.manual.TimeAlive
	}
	return g.pop.Tick()
}

// Views returns a read-only copy of every slot.
func (g *Game) Views() []View {
	if g.pop == nil {
		return []View{g.manual.View()}
	}
	return g.pop.Views()
}

// Best returns the slot index currently leading the generation.
func (g *Game) Best() int {
	if g.pop == nil {
		return 0
	}
	return g.pop.Leader()
}

// LastStats returns the most recently finished generation's stats.
func (g *Game) LastStats() (telemetry.GenerationStats, bool) {
	return g.lastStats, g.hasStats
}
