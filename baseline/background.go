package baseline

import (
	"fmt"

	"github.com/cwbudde/algo-baseline/dataset"
)

// Background bundles the anchor points, the interpolation kind, and the
// most recently computed background curve.
type Background struct {
	Kind   Kind
	Points PointSet

	// Curve holds the background evaluated on the data X positions
	// inside the anchored range. Valid after ComputeCurve.
	Curve dataset.XY
}

// Result holds the outcome of a background subtraction: the raw signal,
// the background, and the net (corrected) signal on the same X axis.
type Result struct {
	X   []float64
	Raw []float64
	Bkg []float64
	Net []float64
}

// ComputeCurve interpolates the background through the anchor points,
// evaluated on the data X values inside [min anchor X, max anchor X].
// Data X must be sorted ascending.
func (b *Background) ComputeCurve(data dataset.XY) error {
	if err := data.Validate(); err != nil {
		return err
	}

	px, py := b.Points.knots()
	if len(px) < b.Kind.MinPoints() {
		return fmt.Errorf("baseline: %s interpolation needs at least %d points, have %d",
			b.Kind, b.Kind.MinPoints(), len(px))
	}

	window := data.Window(px[0], px[len(px)-1])
	if window.Len() == 0 {
		return fmt.Errorf("baseline: no data samples inside anchor range [%g, %g]", px[0], px[len(px)-1])
	}

	ys, err := Interpolate(b.Kind, px, py, window.X)
	if err != nil {
		return err
	}

	b.Curve = dataset.XY{X: window.X, Y: ys}
	return nil
}

// Correct recomputes the background curve and subtracts it from the data.
// Outside the anchored X range both the background and the net signal are
// zero; inside it, net values below zero clamp to zero.
func (b *Background) Correct(data dataset.XY) (Result, error) {
	if err := b.ComputeCurve(data); err != nil {
		return Result{}, err
	}

	n := data.Len()
	res := Result{
		X:   data.X,
		Raw: data.Y,
		Bkg: make([]float64, n),
		Net: make([]float64, n),
	}

	xmin := b.Curve.X[0]
	xmax := b.Curve.X[b.Curve.Len()-1]

	ci := 0
	for i := 0; i < n; i++ {
		x := data.X[i]
		if x < xmin || x > xmax {
			continue
		}

		bkg := b.Curve.Y[ci]
		ci++

		res.Bkg[i] = bkg

		net := data.Y[i] - bkg
		if net < 0 {
			net = 0
		}
		res.Net[i] = net
	}

	return res, nil
}
