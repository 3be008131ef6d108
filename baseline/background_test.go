package baseline

import (
	"testing"

	"github.com/cwbudde/algo-baseline/dataset"
	"github.com/cwbudde/algo-baseline/internal/testutil"
)

func rampWithPeak() dataset.XY {
	x := testutil.Linspace(0, 10, 11)
	y := make([]float64, len(x))
	for i := range y {
		y[i] = 2 // flat background
	}
	y[5] += 7 // peak at x=5
	return dataset.XY{X: x, Y: y}
}

func TestComputeCurveFullRange(t *testing.T) {
	data := rampWithPeak()

	bg := Background{Kind: Linear}
	bg.Points.Add(0, 2)
	bg.Points.Add(10, 2)

	if err := bg.ComputeCurve(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bg.Curve.Len() != data.Len() {
		t.Fatalf("curve length %d want %d", bg.Curve.Len(), data.Len())
	}
	for i, y := range bg.Curve.Y {
		if y != 2 {
			t.Fatalf("curve[%d] = %v want 2", i, y)
		}
	}
}

func TestComputeCurveTooFewPoints(t *testing.T) {
	data := rampWithPeak()

	bg := Background{Kind: Cubic}
	bg.Points.Add(0, 2)
	bg.Points.Add(10, 2)

	if err := bg.ComputeCurve(data); err == nil {
		t.Fatal("expected error for too few cubic points")
	}
}

func TestCorrectSubtractsBackground(t *testing.T) {
	data := rampWithPeak()

	bg := Background{Kind: Linear}
	bg.Points.Add(0, 2)
	bg.Points.Add(10, 2)

	res, err := bg.Correct(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := make([]float64, data.Len())
	want[5] = 7
	testutil.RequireSliceNearlyEqual(t, res.Net, want, 1e-12)
	testutil.RequireNonNegative(t, res.Net)
}

func TestCorrectZeroOutsideAnchorRange(t *testing.T) {
	data := rampWithPeak()

	bg := Background{Kind: Linear}
	bg.Points.Add(3, 2)
	bg.Points.Add(7, 2)

	res, err := bg.Correct(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, x := range res.X {
		outside := x < 3 || x > 7
		if outside && (res.Bkg[i] != 0 || res.Net[i] != 0) {
			t.Fatalf("x=%v: bkg=%v net=%v, want zeros outside anchors", x, res.Bkg[i], res.Net[i])
		}
	}
	// The peak at x=5 is inside the range and survives subtraction.
	testutil.RequireNearlyEqual(t, res.Net[5], 7, 1e-12)
}

func TestCorrectClampsNegatives(t *testing.T) {
	x := testutil.Linspace(0, 4, 5)
	y := []float64{1, 1, 1, 1, 1}
	data := dataset.XY{X: x, Y: y}

	bg := Background{Kind: Linear}
	bg.Points.Add(0, 2) // background above the signal
	bg.Points.Add(4, 2)

	res, err := bg.Correct(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireNonNegative(t, res.Net)
	for i, v := range res.Net {
		if v != 0 {
			t.Fatalf("net[%d] = %v want 0", i, v)
		}
	}
}

func TestCorrectAnchorsOutsideData(t *testing.T) {
	data := rampWithPeak()

	bg := Background{Kind: Linear}
	bg.Points.Add(100, 1)
	bg.Points.Add(200, 1)

	if _, err := bg.Correct(data); err == nil {
		t.Fatal("expected error when no samples fall inside the anchor range")
	}
}
