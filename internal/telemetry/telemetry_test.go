package telemetry

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aledsdavies/devcmd/runtime/sketch"
)

func TestNewLogger_SilentDropsToWarn(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "telemetry-*.log")
	if err != nil {
		t.Fatalf("creating log file: %v", err)
	}
	defer f.Close()
	log := newLogger(f, true)
	log.Info().Msg("should be dropped")
	if info, _ := f.Stat(); info.Size() != 0 {
		t.Fatalf("expected info event to be dropped at warn level, got %d bytes", info.Size())
	}
	log.Warn().Msg("should appear")
	if info, _ := f.Stat(); info.Size() == 0 {
		t.Fatalf("expected warn event to be written")
	}
}

func TestSilentFromEnv(t *testing.T) {
	t.Setenv(silentEnv, "1")
	if !silentFromEnv() {
		t.Fatalf("expected RECTIQ_SILENT=1 to be silent")
	}
	t.Setenv(silentEnv, "true")
	if !silentFromEnv() {
		t.Fatalf("expected RECTIQ_SILENT=true to be silent")
	}
	t.Setenv(silentEnv, "0")
	if silentFromEnv() {
		t.Fatalf("expected RECTIQ_SILENT=0 to not be silent")
	}
	t.Setenv(silentEnv, "")
	if silentFromEnv() {
		t.Fatalf("expected unset RECTIQ_SILENT to not be silent")
	}
}

func TestRedactMessage(t *testing.T) {
	msg := "failed request: Bearer abc123 rejected by X-Admin-Key: super-secret"
	got := RedactMessage(msg)
	if strings.Contains(got, "abc123") || strings.Contains(got, "super-secret") {
		t.Fatalf("expected sensitive fragments removed, got %q", got)
	}
	if !strings.Contains(got, "[REDACTED]") {
		t.Fatalf("expected placeholder in redacted message, got %q", got)
	}
}

func TestLogPanic_RedactsThenRepanics(t *testing.T) {
	var buf bytes.Buffer
	global = zerolog.New(&buf)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected LogPanic to re-panic")
		}
		if !strings.Contains(buf.String(), "[REDACTED]") {
			t.Fatalf("expected redacted panic message logged, got %q", buf.String())
		}
	}()
	LogPanic("leaked Bearer sekrit-token")
}

func TestInstallPanicHook_RecoversLogsAndRepanics(t *testing.T) {
	var buf bytes.Buffer
	global = zerolog.New(&buf)

	// Mirrors the real call site in cmd/rectiq/main.go: the hook's
	// returned func must be deferred directly so its own recover() call
	// is the one the runtime honors, not a recover() nested inside it.
	panicked := func() (panicked bool) {
		defer func() {
			if recover() != nil {
				panicked = true
			}
		}()
		defer InstallPanicHook()()
		panic("leaked Bearer sekrit-token")
	}()

	if !panicked {
		t.Fatalf("expected the panic to still propagate out of the hook")
	}
	if !strings.Contains(buf.String(), "[REDACTED]") {
		t.Fatalf("expected redacted panic message logged, got %q", buf.String())
	}
}

func TestScanResult_LogsCounts(t *testing.T) {
	var buf bytes.Buffer
	global = zerolog.New(&buf)

	sketches := []sketch.Sketch{
		{Kind: sketch.DuplicateKey},
		{Kind: sketch.DuplicateKey},
		{Kind: sketch.TrailingComma},
	}
	ScanResult(`{"a":1}`, sketches, 5*time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, `"sketch_count":3`) {
		t.Fatalf("expected sketch_count=3 in log, got %q", out)
	}
	if !strings.Contains(out, "kind_DuplicateKey") || !strings.Contains(out, "kind_TrailingComma") {
		t.Fatalf("expected per-kind counts in log, got %q", out)
	}
}
