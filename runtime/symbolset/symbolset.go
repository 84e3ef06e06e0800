// Package symbolset is a read-only client for the remote placeholder table
// a repair session negotiates out-of-band. The scanning core never calls
// this package directly (runtime/mask ships its own fixed placeholder); it
// exists for the repair pipeline, which wants class-specific placeholder
// characters that match what the server will accept back in a reveal.
package symbolset

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// DefaultPlaceholder is used for any class the table has no mapping for.
const DefaultPlaceholder = "•" // •

// Table is an immutable snapshot of the server's placeholder mapping,
// keyed by a single-byte class tag (the first byte of the masked text's
// lattice classification, e.g. 'S' for string content, 'N' for numbers).
type Table struct {
	Version      string
	placeholders map[byte]string
}

// NewTable builds a Table from a version tag and class->placeholder map.
// An empty or nil map is valid; Placeholder falls back to DefaultPlaceholder.
func NewTable(version string, placeholders map[byte]string) *Table {
	cp := make(map[byte]string, len(placeholders))
	for k, v := range placeholders {
		cp[k] = v
	}
	return &Table{Version: version, placeholders: cp}
}

// Placeholder returns the placeholder string registered for class, or
// DefaultPlaceholder if the table carries no mapping for it.
func (t *Table) Placeholder(class byte) string {
	if t == nil {
		return DefaultPlaceholder
	}
	if p, ok := t.placeholders[class]; ok {
		return p
	}
	return DefaultPlaceholder
}

// CacheKey derives a stable, non-reversible key for this table's version,
// the way keystore.SecretHandle.Fingerprint hashes key material: never the raw
// version string itself, so two processes can agree a cache is fresh
// without either disclosing what the server considers "current".
func (t *Table) CacheKey() string {
	if t == nil {
		return ""
	}
	sum := blake2b.Sum256([]byte(t.Version))
	return hex.EncodeToString(sum[:8])
}

// Fetcher retrieves the current Table from wherever it's negotiated
// (the repair session's handshake response, a config file, etc). The core
// scanning path never constructs one; only the repair pipeline does.
type Fetcher interface {
	Fetch(ctx context.Context) (*Table, error)
}

// CachedFetcher wraps a Fetcher so the table is retrieved at most once per
// process lifetime, matching the one-shot, freeze-after-first-read shape
// runtime/pool uses for the scan-side shape cache.
type CachedFetcher struct {
	inner Fetcher

	once  sync.Once
	table *Table
	err   error
}

// NewCachedFetcher wraps inner with process-lifetime caching.
func NewCachedFetcher(inner Fetcher) *CachedFetcher {
	return &CachedFetcher{inner: inner}
}

// Fetch returns the cached Table, calling inner.Fetch exactly once.
func (c *CachedFetcher) Fetch(ctx context.Context) (*Table, error) {
	c.once.Do(func() {
		c.table, c.err = c.inner.Fetch(ctx)
	})
	if c.err != nil {
		return nil, fmt.Errorf("symbolset: fetch failed: %w", c.err)
	}
	return c.table, nil
}
