// Package render draws XY datasets, background anchor points, and
// background-corrected curves into image files.
package render

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-baseline/baseline"
	"github.com/cwbudde/algo-baseline/dataset"
)

var (
	colorData      = color.RGBA{B: 160, A: 255}
	colorAnchors   = color.RGBA{R: 200, A: 255}
	colorBaseline  = color.RGBA{R: 200, A: 255}
	colorCorrected = color.RGBA{G: 140, A: 255}
)

type config struct {
	title  string
	xlabel string
	ylabel string

	xlim *[2]float64
	ylim *[2]float64

	width  vg.Length
	height vg.Length
}

// Option adjusts figure appearance.
type Option func(*config)

// WithTitle sets the figure title.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithLabels sets the axis labels.
func WithLabels(xlabel, ylabel string) Option {
	return func(c *config) { c.xlabel, c.ylabel = xlabel, ylabel }
}

// WithXLim fixes the X axis range instead of auto-scaling.
func WithXLim(min, max float64) Option {
	return func(c *config) { c.xlim = &[2]float64{min, max} }
}

// WithYLim fixes the Y axis range instead of auto-scaling.
func WithYLim(min, max float64) Option {
	return func(c *config) { c.ylim = &[2]float64{min, max} }
}

// WithSize sets the saved image dimensions.
func WithSize(width, height vg.Length) Option {
	return func(c *config) { c.width, c.height = width, height }
}

// Figure is a plot under construction.
type Figure struct {
	p      *plot.Plot
	width  vg.Length
	height vg.Length
}

// New creates an empty figure.
func New(opts ...Option) *Figure {
	cfg := config{
		xlabel: "X",
		ylabel: "Intensity",
		width:  8 * vg.Inch,
		height: 4 * vg.Inch,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = cfg.xlabel
	p.Y.Label.Text = cfg.ylabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if cfg.xlim != nil {
		p.X.Min, p.X.Max = cfg.xlim[0], cfg.xlim[1]
	}
	if cfg.ylim != nil {
		p.Y.Min, p.Y.Max = cfg.ylim[0], cfg.ylim[1]
	}

	return &Figure{p: p, width: cfg.width, height: cfg.height}
}

// AddLine adds a solid line through (x, y).
func (f *Figure) AddLine(name string, x, y []float64, c color.Color) error {
	line, err := plotter.NewLine(xys(x, y))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1)

	f.p.Add(line)
	f.p.Legend.Add(name, line)
	return nil
}

// AddDashedLine adds a dashed line through (x, y).
func (f *Figure) AddDashedLine(name string, x, y []float64, c color.Color) error {
	line, err := plotter.NewLine(xys(x, y))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}

	f.p.Add(line)
	f.p.Legend.Add(name, line)
	return nil
}

// AddPoints adds cross-glyph markers at (x, y).
func (f *Figure) AddPoints(name string, x, y []float64, c color.Color) error {
	scatter, err := plotter.NewScatter(xys(x, y))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.Shape = draw.CrossGlyph{}

	f.p.Add(scatter)
	f.p.Legend.Add(name, scatter)
	return nil
}

// Save renders the figure to path. The image format follows the file
// extension; png and svg are supported.
func (f *Figure) Save(path string) error {
	switch ext := filepath.Ext(path); ext {
	case ".png", ".svg":
	default:
		return fmt.Errorf("render: unsupported image format %q", ext)
	}
	if err := f.p.Save(f.width, f.height, path); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Preview renders the standard working view: the raw data, the anchor
// points, and, once computed, the background and corrected curves.
// bg and res may be nil.
func Preview(path string, data dataset.XY, bg *baseline.Background, res *baseline.Result, opts ...Option) error {
	fig := New(opts...)

	if err := fig.AddLine("data", data.X, data.Y, colorData); err != nil {
		return err
	}

	if bg != nil && bg.Points.Len() > 0 {
		if err := fig.AddPoints("background points", bg.Points.X, bg.Points.Y, colorAnchors); err != nil {
			return err
		}
	}
	if bg != nil && bg.Curve.Len() > 0 {
		if err := fig.AddDashedLine("background", bg.Curve.X, bg.Curve.Y, colorBaseline); err != nil {
			return err
		}
	}
	if res != nil {
		if err := fig.AddLine("corrected", res.X, res.Net, colorCorrected); err != nil {
			return err
		}
	}

	return fig.Save(path)
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
