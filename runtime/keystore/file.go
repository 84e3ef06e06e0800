package keystore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// diskFormat is the on-disk JSON shape; encoding/json marshals []byte
// fields as base64 automatically, so keys never hit disk as raw bytes
// interleaved with JSON syntax.
type diskFormat struct {
	Secrets map[string][]byte `json:"secrets"`
}

// File is a Store backed by a single JSON file, written with 0600
// permissions. Grounded on original_source's FileKeyStore: load-at-open,
// rewrite-the-whole-file-on-every-mutation persistence.
type File struct {
	mu   sync.Mutex
	path string
	keys map[string][]byte
}

// NewFile opens (or lazily creates, on first Put) the key file at path.
// A missing file is not an error; it starts empty.
func NewFile(path string) (*File, error) {
	f := &File{path: path, keys: make(map[string][]byte)}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("keystore: reading %s: %w", f.path, err)
	}
	var disk diskFormat
	if err := json.Unmarshal(data, &disk); err != nil {
		return fmt.Errorf("keystore: parsing %s: %w", f.path, err)
	}
	if disk.Secrets != nil {
		f.keys = disk.Secrets
	}
	return nil
}

// persist must be called with f.mu held.
func (f *File) persist() error {
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("keystore: creating %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(diskFormat{Secrets: f.keys}, "", "  ")
	if err != nil {
		return fmt.Errorf("keystore: encoding %s: %w", f.path, err)
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *File) Put(_ context.Context, id string, key []byte) error {
	cp := make([]byte, len(key))
	copy(cp, key)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[id] = cp
	return f.persist()
}

func (f *File) Get(_ context.Context, id string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key, ok := f.keys[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(key))
	copy(cp, key)
	return cp, nil
}

func (f *File) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, id)
	return f.persist()
}
