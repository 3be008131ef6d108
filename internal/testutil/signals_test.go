package testutil

import "testing"

func TestLinspace(t *testing.T) {
	x := Linspace(0, 10, 11)
	if len(x) != 11 {
		t.Fatalf("length %d want 11", len(x))
	}
	if x[0] != 0 || x[10] != 10 {
		t.Fatalf("endpoints %v, %v", x[0], x[10])
	}
	RequireNearlyEqual(t, x[5], 5, 1e-12)
}

func TestExpDecayEndpoints(t *testing.T) {
	x := Linspace(0, 1, 2)
	y := ExpDecay(x, 2, 0, 1)
	RequireSliceNearlyEqual(t, y, []float64{3, 3}, 1e-12)
}

func TestGaussianPeakCentered(t *testing.T) {
	x := Linspace(-5, 5, 11)
	y := make([]float64, len(x))
	GaussianPeak(x, y, 4, 0, 1)
	if y[5] != 4 {
		t.Fatalf("peak center %v want 4", y[5])
	}
	if y[0] >= y[5] || y[10] >= y[5] {
		t.Fatal("tails should be below peak")
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1, 64)
	b := DeterministicNoise(42, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)
}
