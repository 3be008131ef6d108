// Package session runs the interactive part of a background removal:
// a line-oriented command loop for marking background points on a
// dataset, previewing the interpolated background, and writing the
// corrected data.
//
// After every command that changes the background definition the
// preview image is re-rendered, so the plot file always shows the
// current state.
package session

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-baseline/baseline"
	"github.com/cwbudde/algo-baseline/dataset"
	"github.com/cwbudde/algo-baseline/render"
)

const helpText = `==========================================================
Interactive background removal :: brief help
----------------------------------------------------------
help                   print this help
add <x>                add background point nearest to x
del <x>                delete background point nearest to x
points                 list current background points
fit <kind>             interpolate background through the points;
                       kind is linear, quadratic or cubic
save                   save background points to the BKG-file
load                   load background points from the BKG-file
subtract               subtract current background, write output
quit                   leave the session
==========================================================`

// Config holds the fixed parameters of a session.
type Config struct {
	// OutputPath is where subtract writes the corrected data. The
	// background points travel in a sidecar next to it.
	OutputPath string

	// PlotPath is the preview image re-rendered after every change.
	// Empty disables rendering.
	PlotPath string

	XLabel string
	YLabel string

	// Render holds extra figure options, e.g. fixed axis limits.
	Render []render.Option
}

// Session holds the mutable state of one background definition.
type Session struct {
	cfg  Config
	data dataset.XY
	bg   baseline.Background
}

// New creates a session over data. The background starts empty with
// linear interpolation, matching the original workflow.
func New(data dataset.XY, cfg Config) (*Session, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("session: output path required")
	}
	if cfg.XLabel == "" {
		cfg.XLabel = "X"
	}
	if cfg.YLabel == "" {
		cfg.YLabel = "Intensity"
	}

	return &Session{cfg: cfg, data: data}, nil
}

// Background exposes the current background definition.
func (s *Session) Background() *baseline.Background {
	return &s.bg
}

// Run reads commands from r until quit or EOF, writing responses to w.
// Command errors are reported to w and never terminate the loop.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	if err := s.renderPreview(); err != nil {
		fmt.Fprintf(w, "plot: %v\n", err)
	}
	fmt.Fprintf(w, "type 'help' for the command list\n")

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprintf(w, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		quit, err := s.Execute(line, w)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
		if quit {
			break
		}
	}

	return scanner.Err()
}

// Execute runs a single command line and reports whether the session
// should end.
func (s *Session) Execute(line string, w io.Writer) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(w, helpText)
		fmt.Fprintf(w, "BKG-file: %s\n", baseline.SidecarPath(s.cfg.OutputPath))
		fmt.Fprintf(w, "output:   %s\n", s.cfg.OutputPath)
		return false, nil

	case "add":
		return false, s.add(args, w)

	case "del":
		return false, s.del(args, w)

	case "points":
		s.listPoints(w)
		return false, nil

	case "fit":
		return false, s.fit(args, w)

	case "save":
		path := baseline.SidecarPath(s.cfg.OutputPath)
		if err := s.bg.SavePointsFile(path); err != nil {
			return false, err
		}
		fmt.Fprintf(w, "background points saved to %s\n", path)
		return false, nil

	case "load":
		path := baseline.SidecarPath(s.cfg.OutputPath)
		if err := s.bg.LoadPointsFile(path); err != nil {
			return false, err
		}
		fmt.Fprintf(w, "background points loaded from %s\n", path)
		s.replot(w)
		return false, nil

	case "subtract":
		return false, s.subtract(w)

	case "quit", "exit":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
}

// add marks the data sample nearest to the given X as background.
func (s *Session) add(args []string, w io.Writer) error {
	x, err := parseCoord(args)
	if err != nil {
		return err
	}

	idx := s.data.NearestIndex(x)
	px, py := s.data.X[idx], s.data.Y[idx]
	s.bg.Points.Add(px, py)

	fmt.Fprintf(w, "background point added at (%.3f, %.3f)\n", px, py)
	s.replot(w)
	return nil
}

func (s *Session) del(args []string, w io.Writer) error {
	x, err := parseCoord(args)
	if err != nil {
		return err
	}

	rx, ry, err := s.bg.Points.RemoveNearest(x)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "background point deleted at (%.3f, %.3f)\n", rx, ry)
	s.replot(w)
	return nil
}

func (s *Session) listPoints(w io.Writer) {
	if s.bg.Points.Len() == 0 {
		fmt.Fprintln(w, "no background points")
		return
	}

	s.bg.Points.Sort()
	fmt.Fprintf(w, "%10s%12s\n", "X", "Y")
	for i := range s.bg.Points.X {
		fmt.Fprintf(w, "%10.3f%12.3f\n", s.bg.Points.X[i], s.bg.Points.Y[i])
	}
}

func (s *Session) fit(args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fit linear|quadratic|cubic")
	}

	kind, err := baseline.ParseKind(args[0])
	if err != nil {
		return err
	}

	s.bg.Kind = kind
	if err := s.bg.ComputeCurve(s.data); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s background computed\n", kind)
	s.replot(w)
	return nil
}

// subtract recomputes the background, writes the corrected data, and
// keeps the session open for further adjustments.
func (s *Session) subtract(w io.Writer) error {
	res, err := s.bg.Correct(s.data)
	if err != nil {
		return err
	}

	err = dataset.WriteCorrectedFile(s.cfg.OutputPath, res.X, res.Raw, res.Net,
		s.cfg.XLabel, s.cfg.YLabel, s.bg.Kind.String())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "background-corrected data saved to %s\n", s.cfg.OutputPath)
	s.replotResult(w, &res)
	return nil
}

// replot re-renders the preview; rendering problems are reported but do
// not fail the triggering command.
func (s *Session) replot(w io.Writer) {
	if err := s.renderPreview(); err != nil {
		fmt.Fprintf(w, "plot: %v\n", err)
	}
}

func (s *Session) replotResult(w io.Writer, res *baseline.Result) {
	if s.cfg.PlotPath == "" {
		return
	}
	if err := render.Preview(s.cfg.PlotPath, s.data, &s.bg, res, s.renderOptions()...); err != nil {
		fmt.Fprintf(w, "plot: %v\n", err)
	}
}

func (s *Session) renderPreview() error {
	if s.cfg.PlotPath == "" {
		return nil
	}
	return render.Preview(s.cfg.PlotPath, s.data, &s.bg, nil, s.renderOptions()...)
}

func (s *Session) renderOptions() []render.Option {
	opts := []render.Option{render.WithLabels(s.cfg.XLabel, s.cfg.YLabel)}
	return append(opts, s.cfg.Render...)
}

func parseCoord(args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one X coordinate")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("bad X coordinate %q", args[0])
	}
	return x, nil
}
