package stats

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-baseline/internal/testutil"
)

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)
	if s.Length != 0 {
		t.Fatalf("length %d want 0", s.Length)
	}
}

func TestDescribeConstant(t *testing.T) {
	s := Describe([]float64{3, 3, 3, 3})
	testutil.RequireNearlyEqual(t, s.Mean, 3, 1e-12)
	testutil.RequireNearlyEqual(t, s.Variance, 0, 1e-12)
	testutil.RequireNearlyEqual(t, s.RMS, 3, 1e-12)
	if s.Range != 0 {
		t.Fatalf("range %v want 0", s.Range)
	}
}

func TestDescribeKnownValues(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5}
	s := Describe(signal)

	testutil.RequireNearlyEqual(t, s.Mean, 3, 1e-12)
	testutil.RequireNearlyEqual(t, s.Variance, 2, 1e-12)
	testutil.RequireNearlyEqual(t, s.RMS, math.Sqrt(11), 1e-12)

	if s.Min != 1 || s.MinPos != 0 {
		t.Fatalf("min %v at %d", s.Min, s.MinPos)
	}
	if s.Max != 5 || s.MaxPos != 4 {
		t.Fatalf("max %v at %d", s.Max, s.MaxPos)
	}
	// Symmetric distribution has zero skewness.
	testutil.RequireNearlyEqual(t, s.Skewness, 0, 1e-12)
}

func TestMeanMatchesDescribe(t *testing.T) {
	signal := testutil.DeterministicNoise(7, 2, 512)
	s := Describe(signal)
	testutil.RequireNearlyEqual(t, Mean(signal), s.Mean, 1e-12)
	testutil.RequireNearlyEqual(t, RMS(signal), s.RMS, 1e-12)
}

func TestPercentile(t *testing.T) {
	signal := []float64{5, 1, 3, 2, 4}

	for _, tc := range []struct {
		p    float64
		want float64
	}{
		{p: 0, want: 1},
		{p: 25, want: 2},
		{p: 50, want: 3},
		{p: 75, want: 4},
		{p: 100, want: 5},
		{p: 95, want: 4.8},
	} {
		got := Percentile(signal, tc.p)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("p=%v: got %v want %v", tc.p, got, tc.want)
		}
	}
}

func TestPercentileDoesNotMutate(t *testing.T) {
	signal := []float64{3, 1, 2}
	Percentile(signal, 50)
	if signal[0] != 3 || signal[1] != 1 || signal[2] != 2 {
		t.Fatalf("input mutated: %v", signal)
	}
}

func TestPercentileDegenerate(t *testing.T) {
	if got := Percentile(nil, 50); got != 0 {
		t.Fatalf("empty: got %v want 0", got)
	}
	if got := Percentile([]float64{7}, 95); got != 7 {
		t.Fatalf("single: got %v want 7", got)
	}
}
