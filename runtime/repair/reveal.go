package repair

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// deriveKey expands a session key into a 32-byte AES-256 key, binding the
// derivation to the manifest's session id the way security/aad.rs binds a
// canonical string into its signed-request AAD: same session key used
// against two different sessions never yields the same cipher key.
func deriveKey(sessionKey []byte, sessionID string) ([]byte, error) {
	r := hkdf.New(sha256.New, sessionKey, []byte(sessionID), []byte("rectiq-repair-manifest"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("repair: deriving manifest key: %w", err)
	}
	return key, nil
}

// Reveal opens a sealed Manifest using sessionKey (as held by
// runtime/keystore for this session), returning the edit steps it
// contains.
func Reveal(manifest *Manifest, sessionKey []byte) ([]Step, error) {
	key, err := deriveKey(sessionKey, manifest.SessionID)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("repair: building cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("repair: building AEAD: %w", err)
	}
	if len(manifest.Nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("repair: manifest nonce has wrong size %d, want %d", len(manifest.Nonce), gcm.NonceSize())
	}

	plaintext, err := gcm.Open(nil, manifest.Nonce, manifest.Ciphertext, []byte(manifest.SessionID))
	if err != nil {
		return nil, fmt.Errorf("repair: opening manifest: %w", err)
	}

	var steps []Step
	if err := json.Unmarshal(plaintext, &steps); err != nil {
		return nil, fmt.Errorf("repair: decoding revealed steps: %w", err)
	}
	return steps, nil
}

// Seal is the inverse of Reveal, used by tests (and by anything standing
// in for the repair endpoint) to build a Manifest a real client can open.
func Seal(sessionID string, sessionKey []byte, steps []Step) (*Manifest, error) {
	key, err := deriveKey(sessionKey, sessionID)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("repair: building cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("repair: building AEAD: %w", err)
	}

	plaintext, err := json.Marshal(steps)
	if err != nil {
		return nil, fmt.Errorf("repair: encoding steps: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("repair: generating nonce: %w", err)
	}
	ciphertext := gcm.Seal(nil, nonce, plaintext, []byte(sessionID))
	return &Manifest{SessionID: sessionID, Nonce: nonce, Ciphertext: ciphertext}, nil
}
