package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cwbudde/algo-baseline/baseline"
)

// bgsub config.toml key mapping to run options.
type fileConfig struct {
	Input         string  `toml:"input"`
	Output        string  `toml:"output"`
	XColumn       int     `toml:"x_column"`
	YColumn       int     `toml:"y_column"`
	Comma         bool    `toml:"comma"`
	CommentPrefix string  `toml:"comment_prefix"`
	SkipHeader    int     `toml:"skip_header"`
	Method        string  `toml:"method"`
	Trim          string  `toml:"trim"`
	TrimXMin      float64 `toml:"trim_xmin"`
	TrimXMax      float64 `toml:"trim_xmax"`
	Plot          string  `toml:"plot"`
	XLabel        string  `toml:"xlabel"`
	YLabel        string  `toml:"ylabel"`
	XLim          string  `toml:"xlim"`
	YLim          string  `toml:"ylim"`
	Kind          string  `toml:"kind"`
}

type options struct {
	input   string
	output  string
	xcol    int
	ycol    int
	comma   bool
	comment string
	skip    int
	method  string
	trim    string
	xmin    float64
	xmax    float64
	plot    string
	xlabel  string
	ylabel  string
	xlim    string
	ylim    string
	kind    string
}

func defaultOptions() options {
	return options{
		xcol:    0,
		ycol:    1,
		comment: "#",
		method:  "interactive",
		trim:    "off",
		xlabel:  "X",
		ylabel:  "Intensity",
	}
}

// loadConfig overlays keys defined in the TOML file onto opts.
func loadConfig(path string, opts options) (options, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return options{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("input") {
		opts.input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("output") {
		opts.output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("x_column") {
		opts.xcol = raw.XColumn
	}
	if meta.IsDefined("y_column") {
		opts.ycol = raw.YColumn
	}
	if meta.IsDefined("comma") {
		opts.comma = raw.Comma
	}
	if meta.IsDefined("comment_prefix") {
		opts.comment = raw.CommentPrefix
	}
	if meta.IsDefined("skip_header") {
		opts.skip = raw.SkipHeader
	}
	if meta.IsDefined("method") {
		opts.method = strings.TrimSpace(raw.Method)
	}
	if meta.IsDefined("trim") {
		opts.trim = strings.TrimSpace(raw.Trim)
	}
	if meta.IsDefined("trim_xmin") {
		opts.xmin = raw.TrimXMin
	}
	if meta.IsDefined("trim_xmax") {
		opts.xmax = raw.TrimXMax
	}
	if meta.IsDefined("plot") {
		opts.plot = strings.TrimSpace(raw.Plot)
	}
	if meta.IsDefined("xlabel") {
		opts.xlabel = raw.XLabel
	}
	if meta.IsDefined("ylabel") {
		opts.ylabel = raw.YLabel
	}
	if meta.IsDefined("xlim") {
		opts.xlim = strings.TrimSpace(raw.XLim)
	}
	if meta.IsDefined("ylim") {
		opts.ylim = strings.TrimSpace(raw.YLim)
	}
	if meta.IsDefined("kind") {
		opts.kind = strings.TrimSpace(raw.Kind)
	}

	return opts, nil
}

// parseRange parses an axis range given as "min:max". An empty string
// means auto-scaling.
func parseRange(s string) (*[2]float64, error) {
	if s == "" {
		return nil, nil
	}

	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("bad range %q, want min:max", s)
	}

	min, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return nil, fmt.Errorf("bad range minimum %q", lo)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return nil, fmt.Errorf("bad range maximum %q", hi)
	}
	if min >= max {
		return nil, fmt.Errorf("range %q has min >= max", s)
	}

	return &[2]float64{min, max}, nil
}

// validateData checks the subset of options that reading and trimming
// the input depend on.
func (o options) validateData() error {
	if o.input == "" {
		return fmt.Errorf("input file required")
	}
	switch o.trim {
	case "off", "auto", "manual":
	default:
		return fmt.Errorf("unknown trim mode %q", o.trim)
	}
	if o.xcol == o.ycol {
		return fmt.Errorf("x and y columns must differ")
	}
	return nil
}

func (o options) validate() error {
	if err := o.validateData(); err != nil {
		return err
	}
	if o.output == "" {
		return fmt.Errorf("output file required")
	}
	switch o.method {
	case "interactive", "restore", "expfit", "wavelet":
	default:
		return fmt.Errorf("unknown method %q", o.method)
	}
	if o.kind != "" {
		if _, err := baseline.ParseKind(o.kind); err != nil {
			return err
		}
	}
	if _, err := parseRange(o.xlim); err != nil {
		return err
	}
	if _, err := parseRange(o.ylim); err != nil {
		return err
	}
	return nil
}
