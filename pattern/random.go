package pattern

import (
	"fmt"
	"math"
)

// Source supplies randomness to the stochastic transforms. A *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// UniformInt returns an integer in [min, max], inclusive on both ends.
// Ranges too wide to count in an int are rejected.
func UniformInt(r Source, min, max int) (int, error) {
	if max < min {
		return 0, fmt.Errorf("%w: %d-%d", ErrInvalidRange, min, max)
	}
	span := max - min
	if span < 0 || span == math.MaxInt {
		return 0, fmt.Errorf("%w: %d-%d is too wide", ErrInvalidRange, min, max)
	}
	return min + r.IntN(span+1), nil
}

// WeightedSample draws one of values with probability weights[i]/sum(weights).
// Zero weights are never drawn.
func WeightedSample[T any](r Source, values []T, weights []float64) (T, error) {
	var zero T
	total, err := totalWeight(len(values), weights)
	if err != nil {
		return zero, err
	}
	return draw(r, values, weights, total), nil
}

// WeightedSampleMany makes k independent draws with replacement.
func WeightedSampleMany[T any](r Source, values []T, weights []float64, k int) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: cannot draw %d values", ErrInvalidArgument, k)
	}
	total, err := totalWeight(len(values), weights)
	if err != nil {
		return nil, err
	}
	out := make([]T, k)
	for i := range out {
		out[i] = draw(r, values, weights, total)
	}
	return out, nil
}

func totalWeight(n int, weights []float64) (float64, error) {
	if n != len(weights) {
		return 0, fmt.Errorf("%w: %d values, %d weights", ErrLengthMismatch, n, len(weights))
	}
	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("%w: weight %d is %v", ErrInvalidArgument, i, w)
		}
		total += w
	}
	if total <= 0 {
		return 0, ErrZeroTotalWeight
	}
	return total, nil
}

func draw[T any](r Source, values []T, weights []float64, total float64) T {
	x := r.Float64() * total
	last := -1
	for i, w := range weights {
		if w == 0 {
			continue
		}
		last = i
		if x -= w; x < 0 {
			return values[i]
		}
	}
	// float rounding can leave x at a hair above zero
	return values[last]
}

// Shuffle returns a uniformly random permutation of s (Fisher-Yates).
func Shuffle[T any](r Source, s []T) []T {
	out := append([]T(nil), s...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func checkProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	return nil
}

func chance(r Source, p float64) bool {
	return r.Float64() < p
}
