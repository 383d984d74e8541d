package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	x := []float64{3, 4}
	NormalizeL2(x)
	if math.Abs(x[0]-0.6) > 1e-12 || math.Abs(x[1]-0.8) > 1e-12 {
		t.Errorf("got %v", x)
	}
	zero := []float64{0, 0}
	NormalizeL2(zero)
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector changed: %v", zero)
	}
}

func TestIsZeroVector(t *testing.T) {
	if !IsZeroVector([]float64{0, 0}) {
		t.Error("expected zero vector")
	}
	if IsZeroVector([]float64{0, 1e-9}) {
		t.Error("expected non-zero vector")
	}
	if !IsZeroVector(nil) {
		t.Error("empty vector has no non-zero component")
	}
}
