package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type readConfig struct {
	xCol       int
	yCol       int
	comment    string
	comma      bool
	skipHeader int
}

// ReadOption configures the text reader.
type ReadOption func(*readConfig)

// WithColumns selects the zero-based X and Y columns. Defaults are 0 and 1.
func WithColumns(x, y int) ReadOption {
	return func(cfg *readConfig) {
		if x >= 0 {
			cfg.xCol = x
		}
		if y >= 0 {
			cfg.yCol = y
		}
	}
}

// WithComment sets the comment prefix. Default is "#".
func WithComment(prefix string) ReadOption {
	return func(cfg *readConfig) {
		cfg.comment = prefix
	}
}

// WithComma switches field splitting from whitespace to commas.
func WithComma() ReadOption {
	return func(cfg *readConfig) {
		cfg.comma = true
	}
}

// WithSkipHeader skips the first n non-comment lines, e.g. a column header.
func WithSkipHeader(n int) ReadOption {
	return func(cfg *readConfig) {
		if n > 0 {
			cfg.skipHeader = n
		}
	}
}

// Read parses delimited numeric text from r and extracts the configured
// X and Y columns. Empty lines and comment lines are skipped. The
// samples are sorted by ascending X, which nearest-sample lookups and
// windowing rely on.
func Read(r io.Reader, opts ...ReadOption) (XY, error) {
	cfg := readConfig{xCol: 0, yCol: 1, comment: "#"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	need := cfg.xCol
	if cfg.yCol > need {
		need = cfg.yCol
	}

	var out XY

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	skipped := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if cfg.comment != "" && strings.HasPrefix(line, cfg.comment) {
			continue
		}
		if skipped < cfg.skipHeader {
			skipped++
			continue
		}

		fields := splitFields(line, cfg.comma)
		if len(fields) <= need {
			return XY{}, fmt.Errorf("dataset: line %d: %d columns, need at least %d", lineNo, len(fields), need+1)
		}

		x, err := strconv.ParseFloat(fields[cfg.xCol], 64)
		if err != nil {
			return XY{}, fmt.Errorf("dataset: line %d: bad X value %q", lineNo, fields[cfg.xCol])
		}

		y, err := strconv.ParseFloat(fields[cfg.yCol], 64)
		if err != nil {
			return XY{}, fmt.Errorf("dataset: line %d: bad Y value %q", lineNo, fields[cfg.yCol])
		}

		out.X = append(out.X, x)
		out.Y = append(out.Y, y)
	}

	if err := scanner.Err(); err != nil {
		return XY{}, fmt.Errorf("dataset: read: %w", err)
	}

	if err := out.Validate(); err != nil {
		return XY{}, err
	}
	out.SortByX()

	return out, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, opts ...ReadOption) (XY, error) {
	f, err := os.Open(path)
	if err != nil {
		return XY{}, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	out, err := Read(f, opts...)
	if err != nil {
		return XY{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return out, nil
}

func splitFields(line string, comma bool) []string {
	if !comma {
		return strings.Fields(line)
	}

	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
