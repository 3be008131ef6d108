package baseline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const kindHeader = "# Background correction type:"

// SidecarPath returns the path of the anchor point file belonging to an
// output file: the output path with ".bkg" appended.
func SidecarPath(outputPath string) string {
	return outputPath + ".bkg"
}

// SavePoints writes the anchor points and interpolation kind of b to w.
// Points are sorted by X first.
func (b *Background) SavePoints(w io.Writer) error {
	b.Points.Sort()

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Background points\n")
	fmt.Fprintf(bw, "# 2 columns: [X-coords, Y-coords]\n")
	fmt.Fprintf(bw, "%s %s\n", kindHeader, b.Kind)

	for i := range b.Points.X {
		fmt.Fprintf(bw, "%10.1f%10.1f\n", b.Points.X[i], b.Points.Y[i])
	}

	return bw.Flush()
}

// LoadPoints replaces the anchor points of b with those read from r and
// restores the interpolation kind if the header carries one.
//
// Besides the current two-column format, two legacy layouts are
// tolerated: rows with a leading index column, and a bare "X Y" header
// row.
func (b *Background) LoadPoints(r io.Reader) error {
	var points PointSet
	kind := b.Kind

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, kindHeader) {
				name := strings.TrimSpace(strings.TrimPrefix(line, kindHeader))
				k, err := ParseKind(name)
				if err != nil {
					return fmt.Errorf("baseline: line %d: %w", lineNo, err)
				}
				kind = k
			}
			continue
		}

		parts := strings.Fields(line)
		// Legacy format: leading index column.
		if len(parts) == 3 {
			parts = parts[1:]
		}
		// Legacy format: bare column header.
		if len(parts) == 2 && parts[0] == "X" && parts[1] == "Y" {
			continue
		}
		if len(parts) != 2 {
			return fmt.Errorf("baseline: line %d: expected 2 columns, got %d", lineNo, len(parts))
		}

		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return fmt.Errorf("baseline: line %d: bad X value %q", lineNo, parts[0])
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return fmt.Errorf("baseline: line %d: bad Y value %q", lineNo, parts[1])
		}

		points.Add(x, y)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("baseline: read points: %w", err)
	}

	points.Sort()
	b.Points = points
	b.Kind = kind

	return nil
}

// SavePointsFile writes the anchor points to path.
func (b *Background) SavePointsFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	defer f.Close()

	if err := b.SavePoints(f); err != nil {
		return err
	}
	return f.Close()
}

// LoadPointsFile reads the anchor points from path.
func (b *Background) LoadPointsFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	defer f.Close()

	return b.LoadPoints(f)
}
