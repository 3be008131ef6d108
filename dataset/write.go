package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteCorrected writes the three-column corrected output: X, raw Y, and
// background-corrected Y. Header lines carry the column meaning and the
// background correction kind.
func WriteCorrected(w io.Writer, x, raw, net []float64, xlabel, ylabel, kind string) error {
	if len(x) != len(raw) || len(x) != len(net) {
		return fmt.Errorf("dataset: column length mismatch: %d/%d/%d", len(x), len(raw), len(net))
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Columns: %s, %s, background-corrected-%s\n", xlabel, ylabel, ylabel)
	fmt.Fprintf(bw, "# Background correction type: %s\n", kind)

	for i := range x {
		fmt.Fprintf(bw, "%8.3f %11.3e %11.3e\n", x[i], raw[i], net[i])
	}

	return bw.Flush()
}

// WriteReport writes the four-column report: X, Y=Iraw, Ibkg, I=(Iraw-Ibkg).
func WriteReport(w io.Writer, x, raw, bkg, net []float64, kind string) error {
	if len(x) != len(raw) || len(x) != len(bkg) || len(x) != len(net) {
		return fmt.Errorf("dataset: column length mismatch: %d/%d/%d/%d", len(x), len(raw), len(bkg), len(net))
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# XY-data with background subtraction\n")
	fmt.Fprintf(bw, "# 4 columns: [X, Y=Iraw, Ibkg, I=(Iraw-Ibkg)]\n")
	fmt.Fprintf(bw, "# Background correction type: %s\n", kind)

	for i := range x {
		fmt.Fprintf(bw, "%8.3f %11.3e %11.3e %11.3e\n", x[i], raw[i], bkg[i], net[i])
	}

	return bw.Flush()
}

// WriteCorrectedFile writes the corrected output to path.
func WriteCorrectedFile(path string, x, raw, net []float64, xlabel, ylabel, kind string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	if err := WriteCorrected(f, x, raw, net, xlabel, ylabel, kind); err != nil {
		return err
	}
	return f.Close()
}

// WriteReportFile writes the four-column report to path.
func WriteReportFile(path string, x, raw, bkg, net []float64, kind string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	if err := WriteReport(f, x, raw, bkg, net, kind); err != nil {
		return err
	}
	return f.Close()
}
