package testutil

import (
	"math"
	"math/rand"
)

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// ExpDecay evaluates a*exp(-b*x)+c over the given x values.
func ExpDecay(x []float64, a, b, c float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = a*math.Exp(-b*v) + c
	}
	return out
}

// GaussianPeak adds a Gaussian peak of the given amplitude, center and
// width to y in place and returns y.
func GaussianPeak(x, y []float64, amp, center, width float64) []float64 {
	for i, v := range x {
		d := (v - center) / width
		y[i] += amp * math.Exp(-0.5*d*d)
	}
	return y
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
