package repair

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/aledsdavies/devcmd/runtime/mask"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// Client requests fixes for a batch of sketches from a repair endpoint.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	Identity signer
}

// signer is the subset of *identity.Identity the client needs, kept
// narrow so tests can supply a stub instead of a real keypair.
type signer interface {
	SignDPoP(method, url string) (string, error)
}

// NewClient builds a Client posting to endpoint, signing each request with
// id. A nil *http.Client defaults to http.DefaultClient.
func NewClient(endpoint string, id signer, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Endpoint: endpoint, HTTP: httpClient, Identity: id}
}

type fixRequest struct {
	BodyHash string           `json:"body_hash"` // sha256 of the masked sketch payload, base64 no-pad
	Sketches []*sketch.Sketch `json:"sketches"`
}

// RequestFix masks every sketch (nothing unmasked ever leaves the process),
// POSTs the batch to Endpoint with a DPoP proof over the request, and
// decodes the server's sealed Manifest.
func (c *Client) RequestFix(ctx context.Context, sketches []*sketch.Sketch) (*Manifest, error) {
	masked := make([]*sketch.Sketch, len(sketches))
	for i, s := range sketches {
		masked[i] = mask.Envelope(s)
	}

	sketchJSON, err := json.Marshal(masked)
	if err != nil {
		return nil, fmt.Errorf("repair: encoding sketches: %w", err)
	}
	sum := sha256.Sum256(sketchJSON)
	bodyHash := base64.RawStdEncoding.EncodeToString(sum[:])

	body, err := json.Marshal(fixRequest{BodyHash: bodyHash, Sketches: masked})
	if err != nil {
		return nil, fmt.Errorf("repair: encoding fix request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("repair: building fix request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Fresh per-request nonce so the server can detect a replayed fix
	// request, the same role Uuid::new_v4() plays in the canonical AAD
	// string the original client signs.
	req.Header.Set("X-Request-Nonce", uuid.New().String())

	if c.Identity != nil {
		proof, err := c.Identity.SignDPoP(http.MethodPost, c.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("repair: signing request: %w", err)
		}
		req.Header.Set("DPoP", proof)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("repair: requesting fix: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("repair: fix request rejected: %s", resp.Status)
	}

	var manifest Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("repair: decoding manifest: %w", err)
	}
	return &manifest, nil
}
