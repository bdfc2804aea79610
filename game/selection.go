package game

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// SelectParent picks a slot index by fitness-proportionate (roulette) selection.
// A draw r in [0, total) walks the slots in order, subtracting each fitness
// until it falls inside one. Returning the first slot with r < f is the same
// walk as subtracting until r <= 0, stepped one slot earlier.
// Slots with zero fitness are never picked unless
// every slot is zero, in which case the pick is uniform over all slots.
// fitness must be non-empty and non-negative.
func SelectParent(rng *rand.Rand, fitness []float64, total float64) int {
	if total <= 0 {
		return rng.Intn(len(fitness))
	}

	r := rng.Float64() * total
	last := -1
	for i, f := range fitness {
		if f <= 0 {
			continue
		}
		if r < f {
			return i
		}
		r -= f
		last = i
	}
	// Rounding can leave r just above zero after the final slot.
	return last
}

// SelectParents draws n parent indices. It reports whether the uniform fallback was used.
func SelectParents(rng *rand.Rand, fitness []float64, n int) (parents []int, degenerate bool) {
	total := floats.Sum(fitness)
	parents = make([]int, n)
	for i := range parents {
		parents[i] = SelectParent(rng, fitness, total)
	}
	return parents, total <= 0
}
