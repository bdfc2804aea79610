package game

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/snakevo/neural"
	"github.com/pthm-cable/snakevo/systems"
)

// maxFoodAttempts bounds rejection sampling when food avoids the snake.
const maxFoodAttempts = 64

// EnvConfig holds the per-environment rules.
type EnvConfig struct {
	GridSize      int
	TickCap       int // 0 disables the timeout
	InitialLength int
	Start         systems.Point // head cell at reset
	AvoidSnake    bool
}

// Environment is one grid game hosting a single snake.
type Environment struct {
	cfg EnvConfig
	rng *rand.Rand

	Snake     *systems.Snake
	Food      systems.Point
	Score     int
	TimeAlive int
	Done      bool

	input []float64 // encode scratch
}

// NewEnvironment creates an environment and resets it. rng is owned by the
// environment and used for food placement.
func NewEnvironment(cfg EnvConfig, rng *rand.Rand) *Environment {
	e := &Environment{cfg: cfg, rng: rng}
	e.Reset()
	return e
}

// Reset places a fresh snake, new food, and clears counters.
func (e *Environment) Reset() {
	e.Snake = systems.NewSnake(e.cfg.Start, e.cfg.InitialLength)
	e.Score = 0
	e.TimeAlive = 0
	e.Done = false
	e.relocateFood()
}

// GridSize returns the grid side length.
func (e *Environment) GridSize() int {
	return e.cfg.GridSize
}

// Encode returns the flattened grid state. The slice is reused across calls.
func (e *Environment) Encode() []float64 {
	e.input = systems.EncodeGrid(e.input, e.cfg.GridSize, e.Snake, e.Food)
	return e.input
}

// Decide runs the genome on the current state and maps its output to a heading.
func (e *Environment) Decide(g *neural.Genome) (systems.Direction, error) {
	out, err := g.Forward(e.Encode())
	if err != nil {
		return systems.Undecided, fmt.Errorf("deciding direction: %w", err)
	}
	return systems.DecideDirection(out), nil
}

// Tick advances one genome-driven step. Returns true when this tick made the
// environment terminal. Terminal environments are not advanced.
func (e *Environment) Tick(g *neural.Genome) (bool, error) {
	if e.Done {
		return false, nil
	}
	dir, err := e.Decide(g)
	if err != nil {
		return false, err
	}
	return e.Advance(dir), nil
}

// Advance moves the snake in dir and applies the timeout and food rules.
// Returns true when this call made the environment terminal.
func (e *Environment) Advance(dir systems.Direction) bool {
	if e.Done {
		return false
	}

	e.TimeAlive++

	status := e.Snake.Step(dir, e.cfg.GridSize)
	if status == systems.Dead {
		e.Done = true
	}
	if e.cfg.TickCap > 0 && e.TimeAlive > e.cfg.TickCap {
		e.Done = true
	}

	if status == systems.Alive && dir != systems.Undecided && e.Snake.Head() == e.Food {
		e.Snake.Grow()
		e.relocateFood()
		e.Score++
	}

	return e.Done
}

// relocateFood draws a new food cell uniformly over the grid. With AvoidSnake
// set, covered cells are resampled a bounded number of times.
func (e *Environment) relocateFood() {
	n := e.cfg.GridSize
	e.Food = systems.Point{X: e.rng.Intn(n), Y: e.rng.Intn(n)}
	if !e.cfg.AvoidSnake {
		return
	}
	for i := 0; i < maxFoodAttempts && e.Snake.Occupies(e.Food); i++ {
		e.Food = systems.Point{X: e.rng.Intn(n), Y: e.rng.Intn(n)}
	}
}

// View is a read-only copy of an environment's state for renderers.
type View struct {
	GridSize  int
	Food      systems.Point
	Body      []systems.Point
	Heading   systems.Direction
	Score     int
	TimeAlive int
	Done      bool
}

// View returns a copy of the current state.
func (e *Environment) View() View {
	return View{
		GridSize:  e.cfg.GridSize,
		Food:      e.Food,
		Body:      e.Snake.CopyBody(),
		Heading:   e.Snake.Heading,
		Score:     e.Score,
		TimeAlive: e.TimeAlive,
		Done:      e.Done,
	}
}
