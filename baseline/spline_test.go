package baseline

import (
	"testing"

	"github.com/cwbudde/algo-baseline/internal/testutil"
)

func TestInterpolateLinear(t *testing.T) {
	px := []float64{0, 2, 4}
	py := []float64{0, 2, 0}

	got, err := Interpolate(Linear, px, py, []float64{0, 1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 1, 2, 1, 0}, 1e-12)
}

func TestInterpolateReproducesKnots(t *testing.T) {
	px := []float64{0, 1, 2.5, 4, 6}
	py := []float64{1, 3, 2, 5, 4}

	for _, kind := range []Kind{Linear, Quadratic, Cubic} {
		got, err := Interpolate(kind, px, py, px)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		testutil.RequireSliceNearlyEqual(t, got, py, 1e-9)
	}
}

func TestInterpolateQuadraticFirstSegment(t *testing.T) {
	// With the starting slope pinned to zero the first segment is
	// s(x) = dx^2 for knots (0,0), (1,1), (2,0).
	px := []float64{0, 1, 2}
	py := []float64{0, 1, 0}

	got, err := Interpolate(Quadratic, px, py, []float64{0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireNearlyEqual(t, got[0], 0.25, 1e-12)
}

func TestInterpolateCubicReproducesLine(t *testing.T) {
	px := []float64{0, 1, 2, 3, 4}
	py := []float64{1, 3, 5, 7, 9}

	xs := testutil.Linspace(0, 4, 41)
	got, err := Interpolate(Cubic, px, py, xs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := make([]float64, len(xs))
	for i, x := range xs {
		want[i] = 1 + 2*x
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func TestInterpolateCubicSmooth(t *testing.T) {
	px := []float64{0, 1, 2, 3}
	py := []float64{0, 1, 0, 1}

	got, err := Interpolate(Cubic, px, py, []float64{1.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Symmetric knots around x=1.5 give the midpoint value.
	testutil.RequireNearlyEqual(t, got[0], 0.5, 1e-12)
}

func TestInterpolateErrors(t *testing.T) {
	if _, err := Interpolate(Linear, []float64{0}, []float64{0}, nil); err == nil {
		t.Fatal("expected error for too few points")
	}
	if _, err := Interpolate(Cubic, []float64{0, 1, 2}, []float64{0, 1, 2}, nil); err == nil {
		t.Fatal("expected error for too few cubic points")
	}
	if _, err := Interpolate(Linear, []float64{0, 0}, []float64{1, 2}, nil); err == nil {
		t.Fatal("expected error for non-increasing knots")
	}
	if _, err := Interpolate(Linear, []float64{0, 1}, []float64{0, 1}, []float64{2}); err == nil {
		t.Fatal("expected error for out-of-range evaluation")
	}
	if _, err := Interpolate(Linear, []float64{0, 1}, []float64{0}, nil); err == nil {
		t.Fatal("expected error for knot length mismatch")
	}
}
