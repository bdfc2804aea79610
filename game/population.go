package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/snakevo/config"
	"github.com/pthm-cable/snakevo/neural"
	"github.com/pthm-cable/snakevo/systems"
	"github.com/pthm-cable/snakevo/telemetry"
)

// Params configures a population. It is fixed for the population's lifetime.
type Params struct {
	Size         int
	Hidden       int
	Outputs      int
	MutationRate float64

	Env EnvConfig

	FitnessPolicy string
	ScoreWeight   float64

	Workers int // 0 = GOMAXPROCS
}

// ParamsFromConfig builds population parameters from a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Size:         cfg.Population.Size,
		Hidden:       cfg.Neural.Hidden,
		Outputs:      cfg.Neural.Outputs,
		MutationRate: cfg.Mutation.Rate,
		Env: EnvConfig{
			GridSize:      cfg.World.CellNB,
			TickCap:       cfg.Agent.TickCap,
			InitialLength: cfg.Agent.InitialLength,
			Start:         systems.Point{X: cfg.Derived.StartX, Y: cfg.Derived.StartY},
			AvoidSnake:    cfg.Food.AvoidSnake,
		},
		FitnessPolicy: cfg.Fitness.Policy,
		ScoreWeight:   cfg.Fitness.ScoreWeight,
		Workers:       cfg.Population.Workers,
	}
}

func (p Params) validate() error {
	switch {
	case p.Size < 1:
		return fmt.Errorf("population size must be positive, got %d", p.Size)
	case p.Env.GridSize < 1:
		return fmt.Errorf("grid size must be positive, got %d", p.Env.GridSize)
	case p.Hidden < 1 || p.Outputs != systems.NumOutputs:
		return fmt.Errorf("invalid topology hidden=%d outputs=%d", p.Hidden, p.Outputs)
	case p.ScoreWeight < 0:
		return fmt.Errorf("score weight must not be negative, got %g", p.ScoreWeight)
	case p.MutationRate < 0 || p.MutationRate > 1:
		return fmt.Errorf("mutation rate must be in [0, 1], got %g", p.MutationRate)
	case p.Env.InitialLength < 1:
		return errors.New("initial length must be positive")
	}
	return nil
}

// Slot pairs a genome with the environment that evaluates it.
type Slot struct {
	Genome *neural.Genome
	Env    *Environment
}

// Population runs a fixed number of slots through generations of evaluation,
// selection and mutation.
type Population struct {
	params Params
	rng    *rand.Rand

	slots      []Slot
	generation int
	alive      int
	tick       int

	parallel *parallelState
	perf     *telemetry.PerfCollector
}

// NewPopulation creates generation zero with freshly initialized genomes.
func NewPopulation(params Params, rng *rand.Rand) (*Population, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	p := &Population{
		params:   params,
		rng:      rng,
		parallel: newParallelState(params.Workers),
	}

	inputs := params.Env.GridSize * params.Env.GridSize
	slots := make([]Slot, params.Size)
	for i := range slots {
		g := neural.NewGenome(rng, inputs, params.Hidden, params.Outputs)
		slots[i] = p.newSlot(g)
	}
	p.slots = slots
	p.alive = len(slots)

	return p, nil
}

// newSlot pairs g with a fresh environment. Each environment gets its own
// generator seeded from the population generator so that results do not
// depend on how slots are scheduled across workers.
func (p *Population) newSlot(g *neural.Genome) Slot {
	envRNG := rand.New(rand.NewSource(p.rng.Int63()))
	return Slot{Genome: g, Env: NewEnvironment(p.params.Env, envRNG)}
}

// Step advances every live slot by one tick. When the last slot terminates the
// generation transition runs and its statistics are returned with ended=true.
func (p *Population) Step() (stats telemetry.GenerationStats, ended bool, err error) {
	p.startPhase(telemetry.PhaseSlots)
	terminated, err := p.tickSlots()
	if err != nil {
		return stats, false, fmt.Errorf("generation %d tick %d: %w", p.generation, p.tick, err)
	}
	p.tick++
	p.alive -= terminated

	if p.alive > 0 {
		return stats, false, nil
	}
	p.startPhase(telemetry.PhaseGeneration)
	return p.nextGeneration(), true, nil
}

// SetPerf attaches a collector that receives per-phase timings. The caller
// owns StartTick and EndTick.
func (p *Population) SetPerf(perf *telemetry.PerfCollector) {
	p.perf = perf
}

func (p *Population) startPhase(name string) {
	if p.perf != nil {
		p.perf.StartPhase(name)
	}
}

// RunGeneration steps until the current generation ends.
func (p *Population) RunGeneration() (telemetry.GenerationStats, error) {
	for {
		stats, ended, err := p.Step()
		if err != nil {
			return stats, err
		}
		if ended {
			return stats, nil
		}
	}
}

// fitnessOf returns the selection fitness of a finished environment.
func (p *Population) fitnessOf(e *Environment) float64 {
	switch p.params.FitnessPolicy {
	case config.FitnessScore:
		return float64(e.Score)
	case config.FitnessCombined:
		return float64(e.TimeAlive) + p.params.ScoreWeight*float64(e.Score)
	default:
		return float64(e.TimeAlive)
	}
}

// nextGeneration aggregates the finished generation, selects and mutates
// parents into a new slot collection, and swaps it in.
// All slots must be terminal.
func (p *Population) nextGeneration() telemetry.GenerationStats {
	n := len(p.slots)
	fitness := make([]float64, n)
	results := make([]telemetry.SlotResult, n)
	for i := range p.slots {
		env := p.slots[i].Env
		fitness[i] = p.fitnessOf(env)
		results[i] = telemetry.SlotResult{
			Fitness:   fitness[i],
			TimeAlive: env.TimeAlive,
			Score:     env.Score,
			Length:    env.Snake.Len(),
		}
	}
	stats := telemetry.Summarize(p.generation, results)

	parents, degenerate := SelectParents(p.rng, fitness, n)
	if degenerate {
		slog.Warn("degenerate generation fitness, selecting parents uniformly",
			"generation", p.generation,
			"population", n,
		)
	}

	next := make([]Slot, n)
	for i, idx := range parents {
		child := p.slots[idx].Genome.Mutate(p.rng, p.params.MutationRate)
		next[i] = p.newSlot(child)
	}

	p.slots = next
	p.alive = n
	p.generation++
	p.tick = 0

	return stats
}

// Close stops any worker goroutines.
func (p *Population) Close() {
	p.parallel.stopWorkers()
}

// Generation returns the index of the running generation.
func (p *Population) Generation() int {
	return p.generation
}

// Alive returns the number of slots still running in this generation.
func (p *Population) Alive() int {
	return p.alive
}

// Size returns the slot count.
func (p *Population) Size() int {
	return len(p.slots)
}

// Tick returns ticks elapsed in the running generation.
func (p *Population) Tick() int {
	return p.tick
}

// GridSize returns the grid side length shared by all slots.
func (p *Population) GridSize() int {
	return p.params.Env.GridSize
}

// View returns a read-only copy of slot i.
func (p *Population) View(i int) View {
	return p.slots[i].Env.View()
}

// Views returns read-only copies of every slot.
func (p *Population) Views() []View {
	views := make([]View, len(p.slots))
	for i := range p.slots {
		views[i] = p.slots[i].Env.View()
	}
	return views
}

// Leader returns the slot with the longest running live snake, or the longest
// lived slot when all are terminal.
func (p *Population) Leader() int {
	best, bestAlive := 0, false
	for i := range p.slots {
		env := p.slots[i].Env
		alive := !env.Done
		cur := p.slots[best].Env
		switch {
		case alive && !bestAlive:
			best, bestAlive = i, true
		case alive == bestAlive && env.TimeAlive > cur.TimeAlive:
			best = i
		}
	}
	return best
}

// Genome returns the genome evaluated in slot i.
func (p *Population) Genome(i int) *neural.Genome {
	return p.slots[i].Genome
}
