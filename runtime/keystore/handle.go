package keystore

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// SecretHandle wraps a revealed repair session key so callers that pass it
// around (telemetry, error messages, CLI output) cannot accidentally print
// the raw bytes. Adapted from the teacher's tainted-secret Handle; the
// capability/executor gate that guarded UnsafeUnwrap there has no
// equivalent here, so Reveal is a plain method — callers are expected to
// hold a *SecretHandle only where raw key material is legitimately needed
// (runtime/repair's Reveal/Seal boundary).
type SecretHandle struct {
	value []byte
	id    uint64
}

// NewSecretHandle wraps value, generating a random opaque id (not derived
// from value, so two handles around the same key never share an id).
func NewSecretHandle(value []byte) *SecretHandle {
	var idBytes [8]byte
	if _, err := rand.Read(idBytes[:]); err != nil {
		panic(fmt.Sprintf("keystore: generating secret handle id: %v", err))
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return &SecretHandle{value: cp, id: binary.LittleEndian.Uint64(idBytes[:])}
}

// Reveal returns the wrapped key bytes. Named distinctly from String/Bytes
// so a stray %v or %s format verb never reaches the raw value.
func (h *SecretHandle) Reveal() []byte {
	cp := make([]byte, len(h.value))
	copy(cp, h.value)
	return cp
}

// Len returns the key length without exposing its bytes.
func (h *SecretHandle) Len() int {
	return len(h.value)
}

// Equal compares two handles' wrapped values in constant time.
func (h *SecretHandle) Equal(other *SecretHandle) bool {
	if other == nil || h.Len() != other.Len() {
		return false
	}
	return subtle.ConstantTimeCompare(h.value, other.value) == 1
}

// ID returns an opaque, display-safe identifier for this handle:
// rectiq:secret:<base58>, distinct per handle even for identical keys.
func (h *SecretHandle) ID() string {
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, h.id)
	return fmt.Sprintf("rectiq:secret:%s", encodeBase58(idBytes))
}

// Fingerprint returns a keyed BLAKE2b-256 hash of the wrapped value, for
// correlating log lines about "the same session key" across calls without
// ever logging the key itself. key must be at least 32 bytes.
func (h *SecretHandle) Fingerprint(key []byte) string {
	if len(key) < 32 {
		panic("keystore: fingerprint key must be at least 32 bytes")
	}
	hash, err := blake2b.New256(key)
	if err != nil {
		panic(fmt.Sprintf("keystore: creating blake2b hash: %v", err))
	}
	hash.Write(h.value)
	return hex.EncodeToString(hash.Sum(nil))
}

// String, Format, GoString, MarshalJSON and MarshalText all redirect to ID
// so the handle is safe to pass to fmt/log/json without extra care at the
// call site.
func (h *SecretHandle) String() string { return h.ID() }

func (h *SecretHandle) GoString() string {
	return fmt.Sprintf("keystore.SecretHandle{%s}", h.ID())
}

func (h *SecretHandle) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		fmt.Fprint(f, h.GoString())
		return
	}
	fmt.Fprint(f, h.ID())
}

func (h *SecretHandle) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", h.ID())), nil
}

func (h *SecretHandle) MarshalText() ([]byte, error) {
	return []byte(h.ID()), nil
}
