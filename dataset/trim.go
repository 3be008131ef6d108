package dataset

import (
	"fmt"

	"github.com/cwbudde/algo-baseline/stats"
)

// TrimLevel identifies how aggressively AutoTrim cut the data.
type TrimLevel string

// Trim levels, from mildest to hardest.
const (
	TrimLow    TrimLevel = "low"
	TrimMedium TrimLevel = "medium"
	TrimHard   TrimLevel = "hard"
)

type trimStage struct {
	level   TrimLevel
	minLen  int
	percent float64
}

// Stages are tried in order; each scales the 95th percentile of Y to get
// a threshold and requires a minimum number of samples above it.
var trimStages = []trimStage{
	{level: TrimLow, minLen: 12, percent: 10},
	{level: TrimMedium, minLen: 8, percent: 30},
	{level: TrimHard, minLen: 4, percent: 50},
}

type trimConfig struct {
	tolerance int
	leftCut   bool
}

// TrimOption configures AutoTrim.
type TrimOption func(*trimConfig)

// WithTolerance sets how many samples to keep before and after the
// detected signal region. Default is 10.
func WithTolerance(n int) TrimOption {
	return func(cfg *trimConfig) {
		if n >= 0 {
			cfg.tolerance = n
		}
	}
}

// WithoutLeftCut disables the initial cut at the global Y maximum.
// The left cut suits diffraction patterns that start with a dominant
// central beam peak.
func WithoutLeftCut() TrimOption {
	return func(cfg *trimConfig) {
		cfg.leftCut = false
	}
}

// Trim returns the samples with xmin <= X <= xmax. Errors if the range
// selects nothing.
func Trim(d XY, xmin, xmax float64) (XY, error) {
	out := d.Window(xmin, xmax)
	if out.Len() == 0 {
		return XY{}, fmt.Errorf("dataset: trim range [%g, %g] selects no samples", xmin, xmax)
	}
	return out, nil
}

// AutoTrim cuts away uninteresting edge regions. It first cuts everything
// left of the global Y maximum, then tries staged thresholds until one
// captures a long enough signal region. Errors if every stage fails.
func AutoTrim(d XY, opts ...TrimOption) (XY, TrimLevel, error) {
	if err := d.Validate(); err != nil {
		return XY{}, "", err
	}

	cfg := trimConfig{tolerance: 10, leftCut: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.leftCut {
		imax := 0
		for i, y := range d.Y {
			if y > d.Y[imax] {
				imax = i
			}
		}
		d = XY{X: d.X[imax:], Y: d.Y[imax:]}
	}

	p95 := stats.Percentile(d.Y, 95)

	for _, stage := range trimStages {
		threshold := p95 * stage.percent / 100

		first, last, count := -1, -1, 0
		for i, y := range d.Y {
			if y > threshold {
				if first < 0 {
					first = i
				}
				last = i
				count++
			}
		}

		if count < stage.minLen {
			continue
		}

		start := first - cfg.tolerance
		if start < 0 {
			start = 0
		}
		end := last + cfg.tolerance
		if end > d.Len()-1 {
			end = d.Len() - 1
		}

		return XY{X: d.X[start : end+1], Y: d.Y[start : end+1]}, stage.level, nil
	}

	return XY{}, "", fmt.Errorf("dataset: trimming failed, no stage matched")
}
