// Package repair is the client side of the out-of-core fix pipeline: hand
// masked sketches to a repair endpoint, receive back an AEAD-sealed
// manifest of edits, reveal it once a session key is available, and apply
// the revealed steps to the original input.
package repair

import (
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// Step is one textual edit: replace the bytes at Span with Replacement.
type Step struct {
	Span        sketch.Span `json:"span"`
	Replacement string      `json:"replacement"`
}

// Manifest is the sealed edit list a repair endpoint returns: a session id
// (used both for keystore lookup and as AEAD associated data), a nonce, and
// the AES-256-GCM-sealed, JSON-encoded []Step.
type Manifest struct {
	SessionID  string `json:"session_id"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}
