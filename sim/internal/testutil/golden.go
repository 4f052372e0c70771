// Package testutil provides shared test infrastructure for the warehouse simulator.
// It loads scenario files and golden traces from the repository's testdata directory.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestdataPath resolves name inside the repo root testdata/ directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// LoadGolden returns the expected trace output for a scenario, byte for byte.
func LoadGolden(t *testing.T, scenario string) string {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, scenario+".golden"))
	if err != nil {
		t.Fatalf("Failed to read golden trace: %v", err)
	}
	return string(data)
}

// ScenarioPath returns the path of a scenario input file.
func ScenarioPath(t *testing.T, scenario string) string {
	t.Helper()
	return TestdataPath(t, scenario+".txt")
}

// AssertTraceEqual compares trace outputs line by line, reporting the first difference.
func AssertTraceEqual(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	wl, gl := splitLines(want), splitLines(got)
	for i := 0; i < len(wl) && i < len(gl); i++ {
		if wl[i] != gl[i] {
			t.Fatalf("trace differs at line %d:\n got: %q\nwant: %q", i+1, gl[i], wl[i])
		}
	}
	t.Fatalf("trace length differs: got %d lines, want %d (got %q, want %q)", len(gl), len(wl), got, want)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
