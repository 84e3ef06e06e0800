package keystore

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSecretHandle_RevealRoundtrips(t *testing.T) {
	h := NewSecretHandle([]byte("super-secret-session-key"))
	if string(h.Reveal()) != "super-secret-session-key" {
		t.Fatalf("expected Reveal to return the wrapped value")
	}
	if h.Len() != len("super-secret-session-key") {
		t.Fatalf("expected Len to match wrapped value length")
	}
}

func TestSecretHandle_NeverPrintsRawValue(t *testing.T) {
	h := NewSecretHandle([]byte("super-secret-session-key"))

	checks := []string{
		fmt.Sprintf("%v", h),
		fmt.Sprintf("%s", h),
		fmt.Sprintf("%#v", h),
		h.String(),
	}
	for _, s := range checks {
		if strings.Contains(s, "super-secret") {
			t.Fatalf("expected no raw secret material in %q", s)
		}
		if !strings.Contains(s, "rectiq:secret:") {
			t.Fatalf("expected the opaque id format in %q", s)
		}
	}

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if strings.Contains(string(data), "super-secret") {
		t.Fatalf("expected JSON encoding to mask the value, got %q", data)
	}
}

func TestSecretHandle_EqualIsConstantTimeAndCorrect(t *testing.T) {
	a := NewSecretHandle([]byte("key-material"))
	b := NewSecretHandle([]byte("key-material"))
	c := NewSecretHandle([]byte("different"))

	if !a.Equal(b) {
		t.Fatalf("expected handles wrapping the same bytes to be equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected handles wrapping different bytes to be unequal")
	}
	if a.Equal(nil) {
		t.Fatalf("expected Equal(nil) to be false")
	}
}

func TestSecretHandle_IDsAreDistinctPerHandle(t *testing.T) {
	a := NewSecretHandle([]byte("same-key"))
	b := NewSecretHandle([]byte("same-key"))
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct ids for separately constructed handles over identical keys")
	}
}

func TestSecretHandle_Fingerprint(t *testing.T) {
	a := NewSecretHandle([]byte("key-material"))
	b := NewSecretHandle([]byte("key-material"))
	key := make([]byte, 32)

	if a.Fingerprint(key) != b.Fingerprint(key) {
		t.Fatalf("expected the same fingerprint for handles wrapping identical key material")
	}

	other := NewSecretHandle([]byte("different-material"))
	if a.Fingerprint(key) == other.Fingerprint(key) {
		t.Fatalf("expected different fingerprints for different key material")
	}
}
