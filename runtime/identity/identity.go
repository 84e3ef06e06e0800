// Package identity implements a minimal client-bound proof-of-possession
// handshake: generate a device keypair, register its public half with a
// repair endpoint, and sign individual requests with a detached proof token
// (DPoP's core idea, without the full OAuth device-code dance the original
// onboarding flow layers on top).
package identity

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aledsdavies/devcmd/runtime/keystore"
)

const sessionKeyID = "identity:device"

// Identity is a registered device keypair bound to a repair endpoint.
type Identity struct {
	DeviceID   string
	PublicKey  ed25519.PublicKey
	privateKey ed25519.PrivateKey
}

type registerRequest struct {
	PublicKey string `json:"public_key"` // base64 raw Ed25519 public key
}

type registerResponse struct {
	DeviceID string `json:"device_id"`
}

// Onboard generates a fresh Ed25519 device keypair, registers the public
// half with endpoint, stores the private half in ks under a fixed session
// id, and returns the resulting Identity.
func Onboard(ctx context.Context, endpoint string, ks keystore.Store) (*Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("identity: generating device key: %w", err)
	}

	reqBody, err := json.Marshal(registerRequest{PublicKey: base64.RawURLEncoding.EncodeToString(pub)})
	if err != nil {
		return nil, fmt.Errorf("identity: encoding register request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("identity: building register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: registering device: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("identity: registration rejected: %s", resp.Status)
	}

	var out registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("identity: decoding register response: %w", err)
	}

	if err := ks.Put(ctx, sessionKeyID, priv); err != nil {
		return nil, fmt.Errorf("identity: persisting device key: %w", err)
	}

	return &Identity{DeviceID: out.DeviceID, PublicKey: pub, privateKey: priv}, nil
}

// Load reconstructs an Identity from a previously persisted device key.
func Load(ctx context.Context, deviceID string, ks keystore.Store) (*Identity, error) {
	priv, err := ks.Get(ctx, sessionKeyID)
	if err != nil {
		return nil, fmt.Errorf("identity: loading device key: %w", err)
	}
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("identity: stored device key has wrong size %d", len(priv))
	}
	pk := ed25519.PrivateKey(priv)
	pub, ok := pk.Public().(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("identity: stored device key has unexpected public key type")
	}
	return &Identity{DeviceID: deviceID, PublicKey: pub, privateKey: pk}, nil
}

// proof is the detached proof token's plaintext payload, signed and
// base64-encoded by SignDPoP.
type proof struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// SignDPoP produces a detached proof token for one (method, url) request:
// a base64url payload, a '.', and a base64url Ed25519 signature over it.
// The server verifies the signature against the public key registered at
// Onboard time to bind the request to this device.
func (id *Identity) SignDPoP(method, url string) (string, error) {
	payload, err := json.Marshal(proof{Method: method, URL: url})
	if err != nil {
		return "", fmt.Errorf("identity: encoding proof payload: %w", err)
	}
	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)
	sig := ed25519.Sign(id.privateKey, []byte(encodedPayload))
	return encodedPayload + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// VerifyDPoP checks a token produced by SignDPoP against pub for the given
// (method, url), returning an error if the signature or claims don't match.
func VerifyDPoP(pub ed25519.PublicKey, method, url, token string) error {
	dot := bytes.IndexByte([]byte(token), '.')
	if dot < 0 {
		return fmt.Errorf("identity: malformed proof token")
	}
	encodedPayload, encodedSig := token[:dot], token[dot+1:]

	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return fmt.Errorf("identity: decoding proof signature: %w", err)
	}
	if !ed25519.Verify(pub, []byte(encodedPayload), sig) {
		return fmt.Errorf("identity: proof signature invalid")
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return fmt.Errorf("identity: decoding proof payload: %w", err)
	}
	var p proof
	if err := json.Unmarshal(payloadBytes, &p); err != nil {
		return fmt.Errorf("identity: parsing proof payload: %w", err)
	}
	if p.Method != method || p.URL != url {
		return fmt.Errorf("identity: proof claims %q %q do not match request %q %q", p.Method, p.URL, method, url)
	}
	return nil
}
