// Package telemetry configures structured logging for the scanning and
// repair pipeline. It replaces a hand-rolled execution tracer with
// zerolog: one compact event per scan or repair round trip instead of a
// retained tree of trace/span records.
package telemetry

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// silentEnv mirrors the original CLI's RECTIQ_SILENT convention: set to
// "1" or "true" (case-insensitive) to drop the level to Warn.
const silentEnv = "RECTIQ_SILENT"

var (
	initOnce sync.Once
	global   zerolog.Logger
)

// Init configures the process-wide logger from the environment. Safe to
// call more than once; only the first call takes effect.
func Init() {
	initOnce.Do(func() {
		global = newLogger(os.Stderr, silentFromEnv())
	})
}

func silentFromEnv() bool {
	v := strings.TrimSpace(os.Getenv(silentEnv))
	return v == "1" || strings.EqualFold(v, "true")
}

func newLogger(w *os.File, silent bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if silent {
		level = zerolog.WarnLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: false}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Logger returns the process-wide logger, initializing it with default
// settings on first use.
func Logger() *zerolog.Logger {
	Init()
	return &global
}

// redactPairs lists substrings that must never reach a log sink or a
// panic message verbatim, mirroring the original CLI's best-effort
// header scrubber.
var redactPairs = []struct {
	prefix string
	sub    string
}{
	{prefix: "Bearer ", sub: "Bearer [REDACTED]"},
	{prefix: "X-Admin-Key:", sub: "X-Admin-Key: [REDACTED]"},
	{prefix: "DPoP ", sub: "DPoP [REDACTED]"},
}

// RedactMessage replaces known-sensitive header fragments in msg with a
// fixed placeholder. It is deliberately a cheap substring scan, not a
// parser: the same tradeoff the original panic hook makes.
func RedactMessage(msg string) string {
	out := msg
	for _, p := range redactPairs {
		out = strings.ReplaceAll(out, p.prefix, p.sub)
	}
	return out
}

// InstallPanicHook returns a func callers defer directly in main: on a
// recovered panic it logs the redacted message via LogPanic, then
// re-panics so the process still terminates with a non-zero status, the
// same always-re-raise behavior as the original CLI's panic hook. Go has
// no global hook analogous to panic::set_hook, so recover must happen in
// the deferred func itself rather than one InstallPanicHook calls.
func InstallPanicHook() func() {
	return func() {
		if r := recover(); r != nil {
			LogPanic(r)
		}
	}
}

// LogPanic records a recovered panic value with redaction applied, then
// re-panics so the process still terminates with a non-zero status.
func LogPanic(r any) {
	msg := RedactMessage(toMessage(r))
	Logger().Error().Str("panic", msg).Msg("recovered panic, re-raising")
	panic(r)
}

func toMessage(r any) string {
	switch v := r.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return "panic"
	}
}

// ScanResult logs a completed scan: input size, sketch count by kind,
// and wall-clock duration.
func ScanResult(input string, sketches []sketch.Sketch, dur time.Duration) {
	counts := make(map[string]int, len(sketches))
	for _, s := range sketches {
		counts[s.Kind.String()]++
	}
	ev := Logger().Info().
		Int("input_bytes", len(input)).
		Int("sketch_count", len(sketches)).
		Dur("duration", dur)
	for kind, n := range counts {
		ev = ev.Int("kind_"+kind, n)
	}
	ev.Msg("scan complete")
}

// RepairRequest logs a fix request round trip (mask.Envelope already
// applied by the caller; this never receives raw sketch contents).
func RepairRequest(sessionID string, sketchCount int, dur time.Duration, err error) {
	ev := Logger().Info().
		Str("session_id", sessionID).
		Int("sketch_count", sketchCount).
		Dur("duration", dur)
	if err != nil {
		ev.Err(err).Msg("repair request failed")
		return
	}
	ev.Msg("repair request complete")
}
