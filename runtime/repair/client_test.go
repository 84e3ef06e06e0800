package repair

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aledsdavies/devcmd/runtime/sketch"
)

type stubSigner struct {
	calls  int
	method string
	url    string
}

func (s *stubSigner) SignDPoP(method, url string) (string, error) {
	s.calls++
	s.method, s.url = method, url
	return "proof-token", nil
}

func TestRequestFix_SignsAndMasksBeforeSending(t *testing.T) {
	sessionKey := []byte("a session key with enough entropy")
	wantManifest, err := Seal("session-1", sessionKey, []Step{{Span: sketch.Span{Start: 0, End: 1}, Replacement: "x"}})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("DPoP") != "proof-token" {
			t.Errorf("expected DPoP proof header, got %q", r.Header.Get("DPoP"))
		}
		var req fixRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		for _, s := range req.Sketches {
			spans := s.Payload.Spans()
			for _, sc := range spans {
				for _, k := range sc.ParentKeys {
					if k == "apiKey" {
						t.Errorf("expected parent key masked before leaving the process, got raw %q", k)
					}
				}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(wantManifest)
	}))
	defer srv.Close()

	signer := &stubSigner{}
	client := NewClient(srv.URL, signer, nil)

	sketches := []*sketch.Sketch{
		{
			Kind: sketch.DuplicateKey,
			Payload: sketch.SpansPayload([]sketch.SpanContext{
				sketch.NewSpanContext(`{"apiKey": 1}`, 1, 8, 1, []string{"apiKey"}),
			}),
		},
	}

	got, err := client.RequestFix(context.Background(), sketches)
	if err != nil {
		t.Fatalf("RequestFix: %v", err)
	}
	if got.SessionID != wantManifest.SessionID {
		t.Fatalf("expected session id %q, got %q", wantManifest.SessionID, got.SessionID)
	}
	if signer.calls != 1 {
		t.Fatalf("expected exactly one SignDPoP call, got %d", signer.calls)
	}
	if signer.method != http.MethodPost {
		t.Fatalf("expected POST signed, got %q", signer.method)
	}
}

func TestRequestFix_ServerErrorIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &stubSigner{}, nil)
	if _, err := client.RequestFix(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for a non-2xx response")
	}
}
