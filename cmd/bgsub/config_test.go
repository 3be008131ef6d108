package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bgsub.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
input = "raw.txt"
output = "corrected.txt"
method = "expfit"
trim = "auto"
y_column = 2
`)

	opts, err := loadConfig(path, defaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if opts.input != "raw.txt" || opts.output != "corrected.txt" {
		t.Fatalf("paths not applied: %+v", opts)
	}
	if opts.method != "expfit" || opts.trim != "auto" {
		t.Fatalf("method/trim not applied: %+v", opts)
	}
	if opts.ycol != 2 {
		t.Fatalf("ycol %d want 2", opts.ycol)
	}

	// Keys absent from the file keep their defaults.
	if opts.xcol != 0 || opts.comment != "#" || opts.xlabel != "X" {
		t.Fatalf("defaults lost: %+v", opts)
	}
}

func TestParseRange(t *testing.T) {
	lim, err := parseRange("0:200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lim == nil || lim[0] != 0 || lim[1] != 200 {
		t.Fatalf("got %v want [0, 200]", lim)
	}

	lim, err = parseRange("")
	if err != nil || lim != nil {
		t.Fatalf("empty range: got %v, %v", lim, err)
	}

	for _, bad := range []string{"10", "a:b", "5:5", "9:1"} {
		if _, err := parseRange(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"), defaultOptions()); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateData(t *testing.T) {
	// The data subset needs no output file, e.g. for -describe.
	opts := defaultOptions()
	opts.input = "in.txt"
	if err := opts.validateData(); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}

	for name, mutate := range map[string]func(*options){
		"missing input":   func(o *options) { o.input = "" },
		"bad trim":        func(o *options) { o.trim = "sometimes" },
		"columns collide": func(o *options) { o.ycol = 0 },
	} {
		bad := opts
		mutate(&bad)
		if err := bad.validateData(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestValidate(t *testing.T) {
	base := defaultOptions()
	base.input = "in.txt"
	base.output = "out.txt"

	if err := base.validate(); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}

	for name, mutate := range map[string]func(*options){
		"missing input":   func(o *options) { o.input = "" },
		"missing output":  func(o *options) { o.output = "" },
		"bad method":      func(o *options) { o.method = "magic" },
		"bad trim":        func(o *options) { o.trim = "sometimes" },
		"columns collide": func(o *options) { o.ycol = 0 },
		"bad kind":        func(o *options) { o.kind = "quartic" },
		"bad xlim":        func(o *options) { o.xlim = "10" },
		"inverted ylim":   func(o *options) { o.ylim = "5:1" },
	} {
		opts := base
		mutate(&opts)
		if err := opts.validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
