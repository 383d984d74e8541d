// Package vector provides the in-memory record store and similarity helpers.
package vector

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensionMismatch is reported when two compared vectors differ in length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrDegenerateVector is reported when a compared vector has zero magnitude.
	ErrDegenerateVector = errors.New("zero-magnitude vector")
)

// Dot returns the inner product of two vectors of equal length.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// L2Norm returns the Euclidean norm of a vector. Components are scaled by the largest
// magnitude first so very large or very small values neither overflow nor underflow.
func L2Norm(x []float64) float64 {
	m := maxAbs(x)
	if m == 0 || math.IsInf(m, 0) || math.IsNaN(m) {
		return m
	}
	var sum float64
	for _, v := range x {
		sum += (v / m) * (v / m)
	}
	return m * math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b.
//
// It never fails hard: vectors of different length score 0 with ErrDimensionMismatch,
// and a zero-magnitude (or non-finite) comparison scores 0 with ErrDegenerateVector.
// Callers keep ranking the remaining records in both cases.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	ma, mb := maxAbs(a), maxAbs(b)
	if ma == 0 || mb == 0 || !finite(ma) || !finite(mb) {
		return 0, ErrDegenerateVector
	}
	// cosine is scale invariant, so compare the unit-max rescaled vectors
	var dot, na, nb float64
	for i := range a {
		x, y := a[i]/ma, b[i]/mb
		dot += x * y
		na += x * x
		nb += y * y
	}
	s := dot / math.Sqrt(na*nb)
	if !finite(s) {
		return 0, ErrDegenerateVector
	}
	return s, nil
}

func maxAbs(x []float64) float64 {
	var m float64
	for _, v := range x {
		if math.IsNaN(v) {
			return v
		}
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
