// Command bgsub subtracts the background from XY data such as powder
// diffraction or spectroscopy profiles.
//
// Usage:
//
//	bgsub [flags]
//
// Examples:
//
//	bgsub -in raw.txt -out corrected.txt
//	bgsub -in raw.txt -out corrected.txt -method expfit -plot preview.png
//	bgsub -in raw.csv -out corrected.txt -comma -xcol 0 -ycol 2 -trim auto
//	bgsub -in raw.txt -describe
//	bgsub -config bgsub.toml
//
// The default method opens an interactive session: background points
// are placed on the data from the terminal, previewed in the plot
// file, and the corrected data is written on 'subtract'. The fully
// automatic methods (expfit, wavelet) estimate the background without
// user input. The restore method reuses points saved in a previous
// session from the .bkg sidecar of the output file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-baseline/baseline"
	"github.com/cwbudde/algo-baseline/baseline/expfit"
	"github.com/cwbudde/algo-baseline/baseline/wavelet"
	"github.com/cwbudde/algo-baseline/dataset"
	"github.com/cwbudde/algo-baseline/render"
	"github.com/cwbudde/algo-baseline/session"
	"github.com/cwbudde/algo-baseline/stats"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "bgsub").Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("background subtraction failed")
	}
}

func run(logger zerolog.Logger) error {
	defaults := defaultOptions()

	configPath := flag.String("config", "", "TOML config file; flags override its values")
	input := flag.String("in", defaults.input, "input file with XY data")
	output := flag.String("out", defaults.output, "output file for corrected data")
	xcol := flag.Int("xcol", defaults.xcol, "zero-based column index of X values")
	ycol := flag.Int("ycol", defaults.ycol, "zero-based column index of Y values")
	comma := flag.Bool("comma", defaults.comma, "input columns are comma-separated")
	comment := flag.String("comment", defaults.comment, "comment line prefix in the input")
	skip := flag.Int("skip", defaults.skip, "number of header lines to skip")
	method := flag.String("method", defaults.method, "interactive, restore, expfit or wavelet")
	trim := flag.String("trim", defaults.trim, "off, auto or manual trimming of the input")
	xmin := flag.Float64("xmin", defaults.xmin, "lower X bound for manual trimming")
	xmax := flag.Float64("xmax", defaults.xmax, "upper X bound for manual trimming")
	plotPath := flag.String("plot", defaults.plot, "preview image path (.png or .svg); empty disables plotting")
	xlabel := flag.String("xlabel", defaults.xlabel, "X axis label")
	ylabel := flag.String("ylabel", defaults.ylabel, "Y axis label")
	xlim := flag.String("xlim", defaults.xlim, "plot X axis range as min:max; empty auto-scales")
	ylim := flag.String("ylim", defaults.ylim, "plot Y axis range as min:max; empty auto-scales")
	kind := flag.String("kind", defaults.kind, "interpolation kind (linear, quadratic, cubic); overrides the sidecar for restore")
	describe := flag.Bool("describe", false, "print signal statistics of the (trimmed) input and exit")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	opts := defaults
	if *configPath != "" {
		var err error
		opts, err = loadConfig(*configPath, opts)
		if err != nil {
			return err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			opts.input = *input
		case "out":
			opts.output = *output
		case "xcol":
			opts.xcol = *xcol
		case "ycol":
			opts.ycol = *ycol
		case "comma":
			opts.comma = *comma
		case "comment":
			opts.comment = *comment
		case "skip":
			opts.skip = *skip
		case "method":
			opts.method = *method
		case "trim":
			opts.trim = *trim
		case "xmin":
			opts.xmin = *xmin
		case "xmax":
			opts.xmax = *xmax
		case "plot":
			opts.plot = *plotPath
		case "xlabel":
			opts.xlabel = *xlabel
		case "ylabel":
			opts.ylabel = *ylabel
		case "xlim":
			opts.xlim = *xlim
		case "ylim":
			opts.ylim = *ylim
		case "kind":
			opts.kind = *kind
		}
	})

	if *describe {
		if err := opts.validateData(); err != nil {
			return err
		}
		data, err := readData(opts)
		if err != nil {
			return err
		}
		data, err = trimData(data, opts, logger)
		if err != nil {
			return err
		}
		return describeData(os.Stdout, data)
	}

	if err := opts.validate(); err != nil {
		return err
	}
	logger.Debug().Str("method", opts.method).Str("trim", opts.trim).
		Int("xcol", opts.xcol).Int("ycol", opts.ycol).Msg("options resolved")

	data, err := readData(opts)
	if err != nil {
		return err
	}
	logger.Info().Str("file", opts.input).Int("samples", data.Len()).Msg("data loaded")

	data, err = trimData(data, opts, logger)
	if err != nil {
		return err
	}

	switch opts.method {
	case "interactive":
		return runInteractive(data, opts)
	case "restore":
		return runRestore(data, opts, logger)
	case "expfit":
		return runExpFit(data, opts, logger)
	case "wavelet":
		return runWavelet(data, opts, logger)
	}
	return fmt.Errorf("unknown method %q", opts.method)
}

func describeData(w io.Writer, data dataset.XY) error {
	s := stats.Describe(data.Y)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "samples\t%d\n", s.Length)
	fmt.Fprintf(tw, "x-range\t%g .. %g\n", data.X[0], data.X[data.Len()-1])
	fmt.Fprintf(tw, "mean\t%g\n", s.Mean)
	fmt.Fprintf(tw, "min\t%g (index %d)\n", s.Min, s.MinPos)
	fmt.Fprintf(tw, "max\t%g (index %d)\n", s.Max, s.MaxPos)
	fmt.Fprintf(tw, "rms\t%g\n", s.RMS)
	fmt.Fprintf(tw, "variance\t%g\n", s.Variance)
	fmt.Fprintf(tw, "skewness\t%g\n", s.Skewness)
	fmt.Fprintf(tw, "kurtosis\t%g\n", s.Kurtosis)
	return tw.Flush()
}

func readData(opts options) (dataset.XY, error) {
	readOpts := []dataset.ReadOption{
		dataset.WithColumns(opts.xcol, opts.ycol),
		dataset.WithComment(opts.comment),
	}
	if opts.comma {
		readOpts = append(readOpts, dataset.WithComma())
	}
	if opts.skip > 0 {
		readOpts = append(readOpts, dataset.WithSkipHeader(opts.skip))
	}
	return dataset.ReadFile(opts.input, readOpts...)
}

func trimData(data dataset.XY, opts options, logger zerolog.Logger) (dataset.XY, error) {
	switch opts.trim {
	case "off":
		return data, nil
	case "manual":
		trimmed, err := dataset.Trim(data, opts.xmin, opts.xmax)
		if err != nil {
			return dataset.XY{}, err
		}
		logger.Info().Float64("xmin", opts.xmin).Float64("xmax", opts.xmax).
			Int("samples", trimmed.Len()).Msg("data trimmed")
		return trimmed, nil
	case "auto":
		trimmed, level, err := dataset.AutoTrim(data)
		if err != nil {
			return dataset.XY{}, err
		}
		logger.Info().Str("level", string(level)).Int("samples", trimmed.Len()).
			Msg("data auto-trimmed")
		return trimmed, nil
	}
	return dataset.XY{}, fmt.Errorf("unknown trim mode %q", opts.trim)
}

func runInteractive(data dataset.XY, opts options) error {
	s, err := session.New(data, session.Config{
		OutputPath: opts.output,
		PlotPath:   opts.plot,
		XLabel:     opts.xlabel,
		YLabel:     opts.ylabel,
		Render:     axisOptions(opts),
	})
	if err != nil {
		return err
	}
	if opts.kind != "" {
		k, err := baseline.ParseKind(opts.kind)
		if err != nil {
			return err
		}
		s.Background().Kind = k
	}
	return s.Run(os.Stdin, os.Stdout)
}

// runRestore replays points saved by a previous interactive session.
func runRestore(data dataset.XY, opts options, logger zerolog.Logger) error {
	var bg baseline.Background
	if err := bg.LoadPointsFile(baseline.SidecarPath(opts.output)); err != nil {
		return err
	}
	if opts.kind != "" {
		k, err := baseline.ParseKind(opts.kind)
		if err != nil {
			return err
		}
		bg.Kind = k
	}
	logger.Info().Int("points", bg.Points.Len()).Stringer("kind", bg.Kind).
		Msg("background points restored")

	res, err := bg.Correct(data)
	if err != nil {
		return err
	}

	err = dataset.WriteCorrectedFile(opts.output, res.X, res.Raw, res.Net,
		opts.xlabel, opts.ylabel, bg.Kind.String())
	if err != nil {
		return err
	}
	logger.Info().Str("file", opts.output).Msg("corrected data written")

	return plotResult(opts, data, &bg, &res)
}

func runExpFit(data dataset.XY, opts options, logger zerolog.Logger) error {
	res, err := expfit.Fit(data)
	if err != nil {
		return err
	}
	logger.Info().
		Float64("a", res.A).Float64("b", res.B).Float64("c", res.C).
		Int("anchor", res.Anchor).Msg("exponential baseline fitted")

	return writeAutoResult(opts, data, res.Baseline, res.Net, "exponential-fit", logger)
}

func runWavelet(data dataset.XY, opts options, logger zerolog.Logger) error {
	res, err := wavelet.Estimate(data)
	if err != nil {
		return err
	}
	logger.Info().Msg("wavelet baseline estimated")

	return writeAutoResult(opts, data, res.Baseline, res.Net, "wavelet", logger)
}

// writeAutoResult stores the four-column report of an automatic method
// and renders the preview if requested.
func writeAutoResult(opts options, data dataset.XY, bkg, net []float64, kind string, logger zerolog.Logger) error {
	err := dataset.WriteReportFile(opts.output, data.X, data.Y, bkg, net, kind)
	if err != nil {
		return err
	}
	logger.Info().Str("file", opts.output).Msg("corrected data written")

	bg := &baseline.Background{Curve: dataset.XY{X: data.X, Y: bkg}}
	res := &baseline.Result{X: data.X, Raw: data.Y, Bkg: bkg, Net: net}
	return plotResult(opts, data, bg, res)
}

func plotResult(opts options, data dataset.XY, bg *baseline.Background, res *baseline.Result) error {
	if opts.plot == "" {
		return nil
	}
	renderOpts := append([]render.Option{
		render.WithLabels(opts.xlabel, opts.ylabel),
	}, axisOptions(opts)...)
	return render.Preview(opts.plot, data, bg, res, renderOpts...)
}

// axisOptions turns the validated xlim/ylim strings into render options.
func axisOptions(opts options) []render.Option {
	var out []render.Option
	if lim, err := parseRange(opts.xlim); err == nil && lim != nil {
		out = append(out, render.WithXLim(lim[0], lim[1]))
	}
	if lim, err := parseRange(opts.ylim); err == nil && lim != nil {
		out = append(out, render.WithYLim(lim[0], lim[1]))
	}
	return out
}
