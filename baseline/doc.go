// Package baseline computes and subtracts background curves from XY
// measurement data.
//
// The semi-automatic workflow anchors the background on a handful of
// user-marked points, interpolates a curve through them (linear,
// quadratic, or cubic spline), and subtracts it from the raw signal.
// Anchor points can be saved to and restored from a sidecar ".bkg" file,
// so a background definition can be re-applied without re-marking.
//
// Fully automatic methods live in the subpackages:
//
//   - [expfit]:  iterative exponential-decay fit
//   - [wavelet]: iterative FFT low-pass estimation
package baseline
