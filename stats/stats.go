package stats

import (
	"math"
	"sort"
)

// Summary holds single-pass descriptive statistics of a signal column.
type Summary struct {
	Length   int
	Mean     float64
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	RMS      float64
	Range    float64 // max - min
	Variance float64
	Skewness float64
	Kurtosis float64
}

// Describe computes all statistics in a single pass using Welford's online
// algorithm for numerical stability on higher-order moments.
func Describe(signal []float64) Summary {
	n := len(signal)
	if n == 0 {
		return Summary{}
	}

	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	var (
		sumSq  float64
		maxVal = signal[0]
		maxPos int
		minVal = signal[0]
		minPos int
	)

	for i, x := range signal {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Summary{
		Length:   n,
		Mean:     mean,
		Min:      minVal,
		MinPos:   minPos,
		Max:      maxVal,
		MaxPos:   maxPos,
		RMS:      math.Sqrt(sumSq / nf),
		Range:    maxVal - minVal,
		Variance: variance,
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}

// Mean returns the arithmetic mean of the signal.
// Uses Kahan summation for numerical stability.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Percentile returns the p-th percentile (0..100) of the signal using
// linear interpolation between the two nearest ranks. The input is not
// modified. Returns 0 for an empty signal.
func Percentile(signal []float64, p float64) float64 {
	n := len(signal)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return signal[0]
	}

	sorted := make([]float64, n)
	copy(sorted, signal)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	frac := rank - float64(lo)

	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
