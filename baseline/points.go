package baseline

import (
	"fmt"
	"math"
	"sort"
)

// PointSet holds the background anchor points as paired X/Y slices.
// The zero value is an empty, usable set.
type PointSet struct {
	X []float64
	Y []float64
}

// Len returns the number of anchor points.
func (p *PointSet) Len() int {
	return len(p.X)
}

// Add appends an anchor point.
func (p *PointSet) Add(x, y float64) {
	p.X = append(p.X, x)
	p.Y = append(p.Y, y)
}

// Clear removes all anchor points.
func (p *PointSet) Clear() {
	p.X = p.X[:0]
	p.Y = p.Y[:0]
}

// Sort orders the points in place by ascending X. Points sharing an X
// coordinate keep their insertion order.
func (p *PointSet) Sort() {
	sort.Stable(pointsByX{p})
}

type pointsByX struct{ p *PointSet }

func (s pointsByX) Len() int           { return len(s.p.X) }
func (s pointsByX) Less(i, j int) bool { return s.p.X[i] < s.p.X[j] }
func (s pointsByX) Swap(i, j int) {
	s.p.X[i], s.p.X[j] = s.p.X[j], s.p.X[i]
	s.p.Y[i], s.p.Y[j] = s.p.Y[j], s.p.Y[i]
}

// RemoveNearest removes the point whose X coordinate is closest to x and
// returns its coordinates. The set is sorted as a side effect.
func (p *PointSet) RemoveNearest(x float64) (rx, ry float64, err error) {
	if p.Len() == 0 {
		return 0, 0, fmt.Errorf("baseline: no points to remove")
	}

	p.Sort()

	idx := sort.SearchFloat64s(p.X, x)
	if idx == p.Len() {
		idx = p.Len() - 1
	} else if idx > 0 && math.Abs(x-p.X[idx-1]) < math.Abs(x-p.X[idx]) {
		idx--
	}

	rx, ry = p.X[idx], p.Y[idx]
	p.X = append(p.X[:idx], p.X[idx+1:]...)
	p.Y = append(p.Y[:idx], p.Y[idx+1:]...)

	return rx, ry, nil
}

// XRange returns the lowest and highest anchor X. The set is sorted as a
// side effect.
func (p *PointSet) XRange() (xmin, xmax float64, err error) {
	if p.Len() == 0 {
		return 0, 0, fmt.Errorf("baseline: no points")
	}
	p.Sort()
	return p.X[0], p.X[p.Len()-1], nil
}

// knots returns sorted points with duplicate X coordinates collapsed
// (keeping the last Y for each X). Spline solves need strictly
// increasing knot positions.
func (p *PointSet) knots() (xs, ys []float64) {
	p.Sort()

	for i := range p.X {
		if len(xs) > 0 && p.X[i] == xs[len(xs)-1] {
			ys[len(ys)-1] = p.Y[i]
			continue
		}
		xs = append(xs, p.X[i])
		ys = append(ys, p.Y[i])
	}
	return xs, ys
}
