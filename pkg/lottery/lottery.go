// Package lottery draws from uniform and weighted pools.
//
// Both draws take the random source from the caller, so a seeded
// *rand.Rand makes every draw reproducible.
package lottery

import (
	"errors"
	"fmt"
	"math"
)

// Rand is the subset of *math/rand.Rand the draws need.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

var (
	// ErrEmpty is returned when there is nothing to draw from.
	ErrEmpty = errors.New("lottery: empty pool")
	// ErrBadWeight is returned for a weight that is not strictly positive
	// and finite.
	ErrBadWeight = errors.New("lottery: weight must be positive and finite")
)

// Choose returns a uniformly drawn index in [0, n).
func Choose(rng Rand, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmpty
	}
	return rng.Intn(n), nil
}

// ChooseWeighted returns index i with probability weights[i] / sum(weights).
// Weights are scaled by their maximum before summing, so finite weights
// whose sum overflows still draw correctly.
func ChooseWeighted(rng Rand, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, ErrEmpty
	}

	peak := 0.0
	for i, w := range weights {
		if !(w > 0) || math.IsInf(w, 1) {
			return 0, fmt.Errorf("%w: index %d has %g", ErrBadWeight, i, w)
		}
		peak = max(peak, w)
	}

	total := 0.0
	for _, w := range weights {
		total += w / peak
	}

	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w / peak
		if r < cumulative {
			return i, nil
		}
	}

	// Float rounding can leave r at the very top of the range.
	return len(weights) - 1, nil
}
