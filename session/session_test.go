package session

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-baseline/baseline"
	"github.com/cwbudde/algo-baseline/dataset"
	"github.com/cwbudde/algo-baseline/internal/testutil"
)

func sessionData() dataset.XY {
	x := testutil.Linspace(0, 10, 11)
	y := make([]float64, len(x))
	for i := range y {
		y[i] = 2
	}
	y[5] += 7
	return dataset.XY{X: x, Y: y}
}

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "corrected.txt")
	s, err := New(sessionData(), Config{OutputPath: out})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s, out
}

func TestNewRequiresOutputPath(t *testing.T) {
	if _, err := New(sessionData(), Config{}); err == nil {
		t.Fatal("expected error without output path")
	}
}

func TestAddSnapsToNearestSample(t *testing.T) {
	s, _ := newTestSession(t)
	var out bytes.Buffer

	if _, err := s.Execute("add 3.4", &out); err != nil {
		t.Fatalf("add: %v", err)
	}

	p := s.Background().Points
	if p.Len() != 1 || p.X[0] != 3 || p.Y[0] != 2 {
		t.Fatalf("point (%v, %v), want snapped (3, 2)", p.X[0], p.Y[0])
	}
}

func TestDelRemovesNearestPoint(t *testing.T) {
	s, _ := newTestSession(t)
	var out bytes.Buffer

	s.Execute("add 2", &out)
	s.Execute("add 8", &out)

	if _, err := s.Execute("del 7.6", &out); err != nil {
		t.Fatalf("del: %v", err)
	}

	p := s.Background().Points
	if p.Len() != 1 || p.X[0] != 2 {
		t.Fatalf("remaining points %v, want [2]", p.X)
	}
}

func TestFitRequiresEnoughPoints(t *testing.T) {
	s, _ := newTestSession(t)
	var out bytes.Buffer

	s.Execute("add 0", &out)
	if _, err := s.Execute("fit cubic", &out); err == nil {
		t.Fatal("expected error fitting cubic through one point")
	}
}

func TestSubtractWritesOutputAndSidecar(t *testing.T) {
	s, out := newTestSession(t)
	var buf bytes.Buffer

	s.Execute("add 0", &buf)
	s.Execute("add 10", &buf)

	if _, err := s.Execute("subtract", &buf); err != nil {
		t.Fatalf("subtract: %v", err)
	}
	if _, err := s.Execute("save", &buf); err != nil {
		t.Fatalf("save: %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(content), "Background correction type: linear") {
		t.Fatalf("output missing correction type header:\n%s", content)
	}

	if _, err := os.Stat(baseline.SidecarPath(out)); err != nil {
		t.Fatalf("sidecar: %v", err)
	}
}

func TestSaveLoadRoundTripThroughSidecar(t *testing.T) {
	s, _ := newTestSession(t)
	var buf bytes.Buffer

	s.Execute("add 1", &buf)
	s.Execute("add 9", &buf)
	s.Execute("save", &buf)
	s.Execute("del 1", &buf)
	s.Execute("del 9", &buf)

	if _, err := s.Execute("load", &buf); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.Background().Points.Len(); got != 2 {
		t.Fatalf("loaded %d points, want 2", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	s, _ := newTestSession(t)
	var out bytes.Buffer

	if _, err := s.Execute("frobnicate", &out); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRunLoopSurvivesBadInput(t *testing.T) {
	s, out := newTestSession(t)

	input := strings.NewReader("bogus\nadd nan-x\nadd 0\nadd 10\nsubtract\nquit\n")
	var output bytes.Buffer

	if err := s.Run(input, &output); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !strings.Contains(output.String(), "error:") {
		t.Fatal("expected error reports in session output")
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output file not written: %v", err)
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	s, _ := newTestSession(t)

	var output bytes.Buffer
	if err := s.Run(strings.NewReader("points\n"), &output); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(output.String(), "no background points") {
		t.Fatalf("unexpected output:\n%s", output.String())
	}
}

func TestHelpListsCommands(t *testing.T) {
	s, _ := newTestSession(t)
	var out bytes.Buffer

	if _, err := s.Execute("help", &out); err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, cmd := range []string{"add", "del", "fit", "subtract", "quit"} {
		if !strings.Contains(out.String(), cmd) {
			t.Fatalf("help output missing %q", cmd)
		}
	}
}
