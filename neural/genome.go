// Package neural provides the fixed-topology feedforward genomes that drive snakes.
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch is returned when an input vector does not match the genome's input count.
var ErrShapeMismatch = errors.New("neural: input shape mismatch")

// DefaultLearningRate is carried on every genome for parity with the trainable
// network layout. The evolutionary loop never reads it.
const DefaultLearningRate = 0.1

// Genome is a one-hidden-layer feedforward network.
// Shapes are fixed at construction; children are produced only through Mutate.
type Genome struct {
	inputs, hidden, outputs int

	wIH *mat.Dense    // hidden x inputs
	bH  *mat.VecDense // hidden
	wHO *mat.Dense    // outputs x hidden
	bO  *mat.VecDense // outputs

	LearningRate float64
}

// NewGenome creates a genome with every weight and bias drawn uniformly from [-1, 1].
func NewGenome(rng *rand.Rand, inputs, hidden, outputs int) *Genome {
	g := &Genome{
		inputs:       inputs,
		hidden:       hidden,
		outputs:      outputs,
		wIH:          mat.NewDense(hidden, inputs, uniform(rng, hidden*inputs)),
		bH:           mat.NewVecDense(hidden, uniform(rng, hidden)),
		wHO:          mat.NewDense(outputs, hidden, uniform(rng, outputs*hidden)),
		bO:           mat.NewVecDense(outputs, uniform(rng, outputs)),
		LearningRate: DefaultLearningRate,
	}
	return g
}

func uniform(rng *rand.Rand, n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	return data
}

// Shape returns the input, hidden and output counts.
func (g *Genome) Shape() (inputs, hidden, outputs int) {
	return g.inputs, g.hidden, g.outputs
}

// NumParams returns the total number of weights and biases.
func (g *Genome) NumParams() int {
	return g.hidden*g.inputs + g.hidden + g.outputs*g.hidden + g.outputs
}

// Forward computes sigmoid(W_ho * sigmoid(W_ih * x + B_h) + B_o).
// The returned slice is freshly allocated and has length equal to the output count.
func (g *Genome) Forward(input []float64) ([]float64, error) {
	if len(input) != g.inputs {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrShapeMismatch, len(input), g.inputs)
	}

	x := mat.NewVecDense(g.inputs, input)

	hidden := mat.NewVecDense(g.hidden, nil)
	hidden.MulVec(g.wIH, x)
	hidden.AddVec(hidden, g.bH)
	applySigmoid(hidden)

	out := mat.NewVecDense(g.outputs, nil)
	out.MulVec(g.wHO, hidden)
	out.AddVec(out, g.bO)
	applySigmoid(out)

	return out.RawVector().Data, nil
}

func applySigmoid(v *mat.VecDense) {
	raw := v.RawVector()
	for i := 0; i < raw.N; i++ {
		idx := i * raw.Inc
		raw.Data[idx] = Sigmoid(raw.Data[idx])
	}
}

// Sigmoid is the logistic function 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Mutate returns a child genome. Each element is independently replaced with a
// fresh uniform draw in [-1, 1] with probability rate, otherwise copied.
// The receiver is never modified.
func (g *Genome) Mutate(rng *rand.Rand, rate float64) *Genome {
	child := g.Clone()
	for _, data := range child.buffers() {
		for i := range data {
			if rng.Float64() < rate {
				data[i] = rng.Float64()*2 - 1
			}
		}
	}
	return child
}

// Clone creates a deep copy of the genome.
func (g *Genome) Clone() *Genome {
	return &Genome{
		inputs:       g.inputs,
		hidden:       g.hidden,
		outputs:      g.outputs,
		wIH:          mat.DenseCopyOf(g.wIH),
		bH:           mat.VecDenseCopyOf(g.bH),
		wHO:          mat.DenseCopyOf(g.wHO),
		bO:           mat.VecDenseCopyOf(g.bO),
		LearningRate: g.LearningRate,
	}
}

// buffers returns the backing storage of every parameter block in a fixed order:
// W_ih, B_h, W_ho, B_o. Freshly built or copied blocks are contiguous.
func (g *Genome) buffers() [][]float64 {
	return [][]float64{
		g.wIH.RawMatrix().Data,
		g.bH.RawVector().Data,
		g.wHO.RawMatrix().Data,
		g.bO.RawVector().Data,
	}
}

// Params returns a flattened copy of all weights and biases (W_ih, B_h, W_ho, B_o).
func (g *Genome) Params() []float64 {
	params := make([]float64, 0, g.NumParams())
	for _, data := range g.buffers() {
		params = append(params, data...)
	}
	return params
}
