// Package wavelet estimates a background curve in the frequency domain:
// the signal is repeatedly low-pass filtered with a shrinking Gaussian
// cutoff and clipped to the raw signal, so peaks are progressively
// excluded while the slowly varying background remains.
//
// The approach follows the transform-based background removal family
// described in [Cotret 2017].
//
// [Cotret 2017]: https://doi.org/10.1063/1.4972518
package wavelet

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-baseline/dataset"
)

const (
	defaultIterations = 10
	defaultCutoff     = 0.05
	defaultShrink     = 0.8
)

type config struct {
	iterations int
	cutoff     float64
	shrink     float64
}

// Option adjusts the background estimation.
type Option func(*config)

// WithIterations sets the number of filter-and-clip rounds.
func WithIterations(n int) Option {
	return func(c *config) { c.iterations = n }
}

// WithCutoff sets the initial Gaussian low-pass cutoff as a fraction of
// the transform length.
func WithCutoff(frac float64) Option {
	return func(c *config) { c.cutoff = frac }
}

// WithShrink sets the factor by which the cutoff shrinks every round.
func WithShrink(f float64) Option {
	return func(c *config) { c.shrink = f }
}

// Result holds the estimated background and the corrected signal.
type Result struct {
	Baseline []float64
	Net      []float64
}

// Estimate computes the background of data and subtracts it.
//
// Per round the current estimate is reflect-padded to a power of two,
// edge-tapered, transformed, attenuated by a Gaussian low-pass, and
// transformed back; the smoothed curve is then clipped to
// min(estimate, signal) so peaks cannot pull the background up.
func Estimate(data dataset.XY, opts ...Option) (Result, error) {
	cfg := config{
		iterations: defaultIterations,
		cutoff:     defaultCutoff,
		shrink:     defaultShrink,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := data.Validate(); err != nil {
		return Result{}, err
	}
	if cfg.iterations < 1 {
		return Result{}, fmt.Errorf("wavelet: iterations must be positive, got %d", cfg.iterations)
	}
	if cfg.cutoff <= 0 || cfg.shrink <= 0 || cfg.shrink > 1 {
		return Result{}, fmt.Errorf("wavelet: cutoff %g and shrink %g out of range", cfg.cutoff, cfg.shrink)
	}

	n := data.Len()
	if n < 4 {
		return Result{}, fmt.Errorf("wavelet: need at least 4 samples, got %d", n)
	}

	m := nextPow2(2 * n)
	pad := (m - n) / 2

	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return Result{}, fmt.Errorf("wavelet: %w", err)
	}

	taper := taperCoeffs(m, pad/2)

	y := data.Y
	estimate := append([]float64(nil), y...)

	padded := make([]float64, m)
	freq := make([]complex128, m)
	time := make([]complex128, m)

	cutoff := cfg.cutoff * float64(m)

	for iter := 0; iter < cfg.iterations; iter++ {
		for j := 0; j < m; j++ {
			padded[j] = estimate[reflectIndex(j-pad, n)]
		}
		vecmath.MulBlockInPlace(padded, taper)

		for j := range padded {
			time[j] = complex(padded[j], 0)
		}
		if err := plan.Forward(freq, time); err != nil {
			return Result{}, fmt.Errorf("wavelet: %w", err)
		}

		applyGaussianLowPass(freq, cutoff)

		if err := plan.Inverse(time, freq); err != nil {
			return Result{}, fmt.Errorf("wavelet: %w", err)
		}

		for i := 0; i < n; i++ {
			s := real(time[pad+i])
			if s > y[i] {
				s = y[i]
			}
			estimate[i] = s
		}

		cutoff *= cfg.shrink
	}

	net := make([]float64, n)
	for i := range net {
		if d := y[i] - estimate[i]; d > 0 {
			net[i] = d
		}
	}

	return Result{Baseline: estimate, Net: net}, nil
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// reflectIndex maps an arbitrary index into [0, n) by mirroring at the
// boundaries without repeating the edge samples.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

// taperCoeffs builds per-sample gains of length m: a raised-cosine ramp
// over the outer width samples on both sides, unity in between.
func taperCoeffs(m, width int) []float64 {
	coeffs := make([]float64, m)
	for i := range coeffs {
		coeffs[i] = 1
	}
	for i := 0; i < width && i < m; i++ {
		g := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(width)))
		coeffs[i] = g
		coeffs[m-1-i] = g
	}
	return coeffs
}

// applyGaussianLowPass attenuates spectrum bins by a Gaussian centered
// on DC with the given cutoff in bins.
func applyGaussianLowPass(spectrum []complex128, cutoff float64) {
	if cutoff < 1 {
		cutoff = 1
	}
	m := len(spectrum)
	for k := range spectrum {
		kf := k
		if k > m/2 {
			kf = m - k
		}
		g := math.Exp(-0.5 * float64(kf) * float64(kf) / (cutoff * cutoff))
		spectrum[k] *= complex(g, 0)
	}
}
