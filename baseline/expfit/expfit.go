// Package expfit estimates a background curve automatically by fitting
// an exponential decay a*exp(-b*x)+c to the signal, iteratively masking
// peaks so that only baseline samples drive the fit.
//
// The method targets decaying 1D profiles such as radially averaged
// diffraction patterns: the fit is anchored after the initial sharp
// drop, clamped so it never exceeds the raw signal, and forced to be
// monotonically non-increasing.
package expfit

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"

	"github.com/cwbudde/algo-baseline/dataset"
)

const (
	defaultMaxIter         = 20
	defaultThresholdFactor = 1.2
	defaultCheckWindow     = 30
	defaultStableWindow    = 10
	defaultMargin          = 1e-6
)

type config struct {
	maxIter         int
	thresholdFactor float64
	checkWindow     int
	stableWindow    int
	margin          float64
}

// Option adjusts the fitting procedure.
type Option func(*config)

// WithMaxIterations sets the number of mask-and-refit rounds.
func WithMaxIterations(n int) Option {
	return func(c *config) { c.maxIter = n }
}

// WithThresholdFactor sets the factor above the current baseline at
// which a sample counts as a peak and gets masked.
func WithThresholdFactor(f float64) Option {
	return func(c *config) { c.thresholdFactor = f }
}

// WithCheckWindow sets how many leading samples are searched for the
// initial sharp drop that anchors the fit.
func WithCheckWindow(n int) Option {
	return func(c *config) { c.checkWindow = n }
}

// WithStableWindow sets the number of consecutive above-baseline
// samples that mark the first real peak during post-processing.
func WithStableWindow(n int) Option {
	return func(c *config) { c.stableWindow = n }
}

// WithMargin sets the offset added to the baseline when testing for
// above-baseline samples.
func WithMargin(m float64) Option {
	return func(c *config) { c.margin = m }
}

// Result holds the fitted background and the corrected signal.
type Result struct {
	// A, B, C are the parameters of the final fit a*exp(-b*x)+c.
	A, B, C float64

	// Anchor is the index of the first sample used for fitting, right
	// after the steepest initial drop.
	Anchor int

	// Baseline is the fitted background, clamped to the raw signal and
	// monotonically non-increasing.
	Baseline []float64

	// Net is the corrected signal, zeroed before the first stable peak
	// and after the last sample above the baseline.
	Net []float64
}

// Model evaluates the exponential decay a*exp(-b*x)+c.
func Model(x, a, b, c float64) float64 {
	return a*math.Exp(-b*x) + c
}

// Fit estimates the background of data and subtracts it.
//
// Each round fits the decay through the currently unmasked samples,
// clamps the curve to min(baseline, signal), forces it monotonically
// non-increasing, and masks samples rising above
// baseline*thresholdFactor so peaks stop attracting the next fit.
func Fit(data dataset.XY, opts ...Option) (Result, error) {
	cfg := config{
		maxIter:         defaultMaxIter,
		thresholdFactor: defaultThresholdFactor,
		checkWindow:     defaultCheckWindow,
		stableWindow:    defaultStableWindow,
		margin:          defaultMargin,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := data.Validate(); err != nil {
		return Result{}, err
	}
	n := data.Len()

	anchor := anchorIndex(data.Y, cfg.checkWindow)
	if n-anchor < 3 {
		return Result{}, fmt.Errorf("expfit: %d samples after anchor %d, need at least 3", n-anchor, anchor)
	}

	x, y := data.X, data.Y
	masked := append([]float64(nil), y...)
	baseline := make([]float64, n)

	params := [3]float64{y[anchor] - y[n-1], 0.01, y[n-1]}

	for iter := 0; iter < cfg.maxIter; iter++ {
		fitted, err := fitExp(x[anchor:], masked[anchor:], params)
		if err != nil {
			return Result{}, fmt.Errorf("expfit: iteration %d: %w", iter, err)
		}
		params = fitted

		for i := range baseline {
			baseline[i] = Model(x[i], params[0], params[1], params[2])
			if baseline[i] > y[i] {
				baseline[i] = y[i]
			}
		}
		for i := 1; i < n; i++ {
			if baseline[i] > baseline[i-1] {
				baseline[i] = baseline[i-1]
			}
		}

		for i := range y {
			if y[i] > baseline[i]*cfg.thresholdFactor {
				masked[i] = baseline[i]
			}
		}
	}

	net := make([]float64, n)
	for i := range net {
		net[i] = y[i] - baseline[i]
	}
	zeroLeadingNoise(y, baseline, net, cfg.stableWindow, cfg.margin)
	zeroLeadingPlateau(y, baseline, net, cfg.stableWindow, cfg.margin)
	zeroTrailingPlateau(net, cfg.margin)

	return Result{
		A:        params[0],
		B:        params[1],
		C:        params[2],
		Anchor:   anchor,
		Baseline: baseline,
		Net:      net,
	}, nil
}

// anchorIndex returns the index right after the steepest drop within
// the first checkWindow samples.
func anchorIndex(y []float64, checkWindow int) int {
	limit := checkWindow
	if limit > len(y) {
		limit = len(y)
	}

	anchor := 0
	minDiff := math.Inf(1)
	for i := 1; i < limit; i++ {
		if d := y[i] - y[i-1]; d < minDiff {
			minDiff = d
			anchor = i
		}
	}
	return anchor
}

// stableRun reports whether window consecutive samples starting at i
// all sit clearly above the baseline.
func stableRun(y, baseline []float64, i, window int, margin float64) bool {
	for j := 0; j < window && i+j < len(y); j++ {
		if y[i+j] <= baseline[i+j]+margin {
			return false
		}
	}
	return true
}

// zeroLeadingNoise zeroes the corrected signal up to the first run of
// window consecutive samples that sit clearly above the baseline.
func zeroLeadingNoise(y, baseline, net []float64, window int, margin float64) {
	for i := 0; i < len(y)-window; i++ {
		if stableRun(y, baseline, i, window, margin) {
			break
		}
		net[i] = 0
	}
}

// zeroLeadingPlateau zeroes the first samples when the signal already
// sits stably above the baseline at the start, so a peak covering the
// leading edge still begins the corrected signal at zero.
func zeroLeadingPlateau(y, baseline, net []float64, window int, margin float64) {
	for i := 4; i >= 0; i-- {
		if i >= len(y) {
			continue
		}
		if stableRun(y, baseline, i, window, margin) {
			for j := 0; j <= i; j++ {
				net[j] = 0
			}
			return
		}
	}
}

// zeroTrailingPlateau zeroes the corrected signal after its last sample
// above margin, flattening fit residue in the tail.
func zeroTrailingPlateau(net []float64, margin float64) {
	last := -1
	for i, v := range net {
		if v > margin {
			last = i
		}
	}
	for i := last + 1; i < len(net); i++ {
		net[i] = 0
	}
}

// fitExp fits a*exp(-b*x)+c through (xs, ys) by Levenberg-Marquardt
// starting from p0.
func fitExp(xs, ys []float64, p0 [3]float64) ([3]float64, error) {
	f := func(dst, p []float64) {
		a, b, c := p[0], p[1], p[2]
		for i := range xs {
			dst[i] = Model(xs[i], a, b, c) - ys[i]
		}
	}

	jacobian := lm.NumJac{Func: f}

	problem := lm.LMProblem{
		Dim:        3,
		Size:       len(xs),
		Func:       f,
		Jac:        jacobian.Jac,
		InitParams: []float64{p0[0], p0[1], p0[2]},
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	results, err := lm.LM(problem, &lm.Settings{Iterations: 100, ObjectiveTol: 1e-16})
	if err != nil {
		return p0, err
	}

	return [3]float64{results.X[0], results.X[1], results.X[2]}, nil
}
