package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunScan_PrintsMaskedSketches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	body := `{"a": 1, "a": 2,}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	var out bytes.Buffer
	scanCmd.SetOut(&out)
	defer scanCmd.SetOut(nil)

	if err := runScan(scanCmd, []string{path}); err != nil {
		t.Fatalf("runScan: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, `"kind"`) {
		t.Fatalf("expected wire-format sketches in output, got %q", got)
	}
	if strings.Contains(got, `"a"`) {
		t.Fatalf("expected the duplicate key name masked out of the envelope, got %q", got)
	}
}

func TestRunScan_MissingFile(t *testing.T) {
	if err := runScan(scanCmd, []string{filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
