package dataprocessing

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ShannonEntropy returns the entropy in bits of the distribution formed by
// the positive values, renormalized to sum to one. Fewer than two positive
// values give exactly zero.
func ShannonEntropy(values []float64) float64 {
	positive := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) < 2 {
		return 0.0
	}

	floats.Scale(1/floats.Sum(positive), positive)

	h := 0.0
	for _, p := range positive {
		h -= p * math.Log2(p)
	}
	return h
}
