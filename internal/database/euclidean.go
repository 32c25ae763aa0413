package database

import "math"

// EuclideanDistance computes the L2 distance between two embeddings.
// Accumulation happens in float64 regardless of the storage precision.
// Comparing embeddings of different lengths returns ErrDimensionMismatch;
// it is never papered over by truncation or padding.
func EuclideanDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}

	return math.Sqrt(sum), nil
}
