package dataset

import (
	"fmt"
	"math"
	"sort"
)

// XY holds paired X and Y columns of equal length.
type XY struct {
	X []float64
	Y []float64
}

// Len returns the number of samples.
func (d XY) Len() int {
	return len(d.X)
}

// Validate reports whether the dataset is non-empty and consistent.
func (d XY) Validate() error {
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("dataset: column length mismatch: %d vs %d", len(d.X), len(d.Y))
	}
	if len(d.X) == 0 {
		return fmt.Errorf("dataset: empty")
	}
	return nil
}

// Clone returns a deep copy of the dataset.
func (d XY) Clone() XY {
	out := XY{
		X: make([]float64, len(d.X)),
		Y: make([]float64, len(d.Y)),
	}
	copy(out.X, d.X)
	copy(out.Y, d.Y)
	return out
}

// SortByX sorts both columns in place by ascending X.
func (d XY) SortByX() {
	sort.Sort(byX(d))
}

type byX XY

func (s byX) Len() int           { return len(s.X) }
func (s byX) Less(i, j int) bool { return s.X[i] < s.X[j] }
func (s byX) Swap(i, j int) {
	s.X[i], s.X[j] = s.X[j], s.X[i]
	s.Y[i], s.Y[j] = s.Y[j], s.Y[i]
}

// NearestIndex returns the index of the sample whose X value is closest
// to x. X must be sorted ascending. Returns -1 for an empty dataset.
func (d XY) NearestIndex(x float64) int {
	n := len(d.X)
	if n == 0 {
		return -1
	}

	idx := sort.SearchFloat64s(d.X, x)
	if idx == n {
		return n - 1
	}
	if idx > 0 && math.Abs(x-d.X[idx-1]) < math.Abs(x-d.X[idx]) {
		return idx - 1
	}
	return idx
}

// Window returns the sub-range of samples with xmin <= X <= xmax.
// The returned dataset shares backing storage with d.
func (d XY) Window(xmin, xmax float64) XY {
	lo := sort.SearchFloat64s(d.X, xmin)
	hi := sort.Search(len(d.X), func(i int) bool { return d.X[i] > xmax })
	if lo > hi {
		lo, hi = hi, lo
	}
	return XY{X: d.X[lo:hi], Y: d.Y[lo:hi]}
}
