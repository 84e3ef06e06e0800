package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aledsdavies/devcmd/internal/config"
	"github.com/aledsdavies/devcmd/runtime/keystore"
	"github.com/aledsdavies/devcmd/runtime/repair"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

func TestRunFix_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.json")
	input := `{"a": 1,}`
	if err := os.WriteFile(inputPath, []byte(input), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	ks, err := keystore.NewFile(filepath.Join(dir, "keystore.json"))
	if err != nil {
		t.Fatalf("opening keystore: %v", err)
	}

	sessionID := "session-fix-test"
	sessionKey := []byte("a session key with enough entropy")
	if err := ks.Put(context.Background(), "repair:session:"+sessionID, sessionKey); err != nil {
		t.Fatalf("seeding session key: %v", err)
	}

	steps := []repair.Step{{Span: sketch.Span{Start: 7, End: 8}, Replacement: ""}}
	manifest, err := repair.Seal(sessionID, sessionKey, steps)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	var sawFixRequest bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/register":
			_ = json.NewEncoder(w).Encode(map[string]string{"device_id": "device-1"})
		case "/fix":
			sawFixRequest = true
			if r.Header.Get("DPoP") == "" {
				t.Errorf("expected a DPoP proof on the fix request")
			}
			_ = json.NewEncoder(w).Encode(manifest)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg = config.Config{Endpoint: srv.URL + "/fix", KeystorePath: filepath.Join(dir, "keystore.json")}

	// loadOrOnboard posts to cfg.Endpoint, so register against the same
	// server under a different path by temporarily pointing the onboard
	// endpoint there; fix.go onboards against cfg.Endpoint directly, so
	// point it at /register first to seed identity, then swap to /fix.
	cfg.Endpoint = srv.URL + "/register"
	if _, err := loadOrOnboard(context.Background(), ks); err != nil {
		t.Fatalf("loadOrOnboard: %v", err)
	}
	cfg.Endpoint = srv.URL + "/fix"

	if err := runFix(fixCmd, []string{inputPath}); err != nil {
		t.Fatalf("runFix: %v", err)
	}
	if !sawFixRequest {
		t.Fatalf("expected the fix endpoint to be called")
	}

	got, err := os.ReadFile(inputPath)
	if err != nil {
		t.Fatalf("reading fixed file: %v", err)
	}
	want := `{"a": 1}`
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRunFix_NoDefectsLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "clean.json")
	input := `{"a": 1}`
	if err := os.WriteFile(inputPath, []byte(input), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg = config.Config{Endpoint: "http://unused.invalid", KeystorePath: filepath.Join(dir, "keystore.json")}

	if err := runFix(fixCmd, []string{inputPath}); err != nil {
		t.Fatalf("runFix: %v", err)
	}

	got, err := os.ReadFile(inputPath)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != input {
		t.Fatalf("expected file left untouched, got %q", got)
	}
}
