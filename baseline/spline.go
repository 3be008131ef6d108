package baseline

import (
	"fmt"
	"sort"
)

// Interpolate evaluates the curve of the given kind through the knots
// (px, py) at every position in xs. px must be strictly increasing and
// all xs must lie inside [px[0], px[len-1]].
func Interpolate(kind Kind, px, py, xs []float64) ([]float64, error) {
	if len(px) != len(py) {
		return nil, fmt.Errorf("baseline: knot length mismatch: %d vs %d", len(px), len(py))
	}
	if len(px) < kind.MinPoints() {
		return nil, fmt.Errorf("baseline: %s interpolation needs at least %d points, have %d",
			kind, kind.MinPoints(), len(px))
	}
	for i := 1; i < len(px); i++ {
		if px[i] <= px[i-1] {
			return nil, fmt.Errorf("baseline: knot X values must be strictly increasing")
		}
	}
	for _, x := range xs {
		if x < px[0] || x > px[len(px)-1] {
			return nil, fmt.Errorf("baseline: evaluation point %g outside knot range [%g, %g]",
				x, px[0], px[len(px)-1])
		}
	}

	switch kind {
	case Quadratic:
		return evalQuadratic(px, py, xs), nil
	case Cubic:
		return evalCubic(px, py, xs), nil
	default:
		return evalLinear(px, py, xs), nil
	}
}

// interval returns the index i such that xs lies in [px[i], px[i+1]].
func interval(px []float64, x float64) int {
	i := sort.SearchFloat64s(px, x)
	if i > 0 {
		i--
	}
	if i > len(px)-2 {
		i = len(px) - 2
	}
	return i
}

func evalLinear(px, py, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for j, x := range xs {
		i := interval(px, x)
		t := (x - px[i]) / (px[i+1] - px[i])
		out[j] = py[i] + t*(py[i+1]-py[i])
	}
	return out
}

// evalQuadratic evaluates a C1 quadratic spline. Segment slopes follow
// the recurrence z[i+1] = 2*(y[i+1]-y[i])/h[i] - z[i] with z[0] = 0.
func evalQuadratic(px, py, xs []float64) []float64 {
	n := len(px)

	z := make([]float64, n)
	for i := 0; i < n-1; i++ {
		h := px[i+1] - px[i]
		z[i+1] = 2*(py[i+1]-py[i])/h - z[i]
	}

	out := make([]float64, len(xs))
	for j, x := range xs {
		i := interval(px, x)
		h := px[i+1] - px[i]
		dx := x - px[i]
		out[j] = py[i] + z[i]*dx + (z[i+1]-z[i])/(2*h)*dx*dx
	}
	return out
}

// evalCubic evaluates a natural cubic spline. Second derivatives come
// from the standard tridiagonal system solved with the Thomas algorithm.
func evalCubic(px, py, xs []float64) []float64 {
	n := len(px)

	h := make([]float64, n-1)
	for i := range h {
		h[i] = px[i+1] - px[i]
	}

	// Natural boundary: m[0] = m[n-1] = 0.
	m := make([]float64, n)
	if n > 2 {
		diag := make([]float64, n-2)
		upper := make([]float64, n-2)
		rhs := make([]float64, n-2)

		for i := 1; i < n-1; i++ {
			diag[i-1] = 2 * (h[i-1] + h[i])
			if i < n-2 {
				upper[i-1] = h[i]
			}
			rhs[i-1] = 6 * ((py[i+1]-py[i])/h[i] - (py[i]-py[i-1])/h[i-1])
		}

		// Forward sweep. The lower diagonal equals the upper one shifted.
		for i := 1; i < n-2; i++ {
			w := h[i] / diag[i-1]
			diag[i] -= w * upper[i-1]
			rhs[i] -= w * rhs[i-1]
		}

		// Back substitution.
		m[n-2] = rhs[n-3] / diag[n-3]
		for i := n - 3; i >= 1; i-- {
			m[i] = (rhs[i-1] - upper[i-1]*m[i+1]) / diag[i-1]
		}
	}

	out := make([]float64, len(xs))
	for j, x := range xs {
		i := interval(px, x)
		dx := x - px[i]
		dx1 := px[i+1] - x
		out[j] = m[i]*dx1*dx1*dx1/(6*h[i]) +
			m[i+1]*dx*dx*dx/(6*h[i]) +
			(py[i]/h[i]-m[i]*h[i]/6)*dx1 +
			(py[i+1]/h[i]-m[i+1]*h[i]/6)*dx
	}
	return out
}
