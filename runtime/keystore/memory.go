package keystore

import (
	"context"
	"sync"
)

// Memory is an in-process Store backed by a plain map. Grounded on
// original_source's MemoryKeyStore: no persistence, a mutex-guarded map,
// delete-is-a-no-op-on-miss semantics.
type Memory struct {
	mu   sync.Mutex
	keys map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{keys: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, id string, key []byte) error {
	cp := make([]byte, len(key))
	copy(cp, key)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[id] = cp
	return nil
}

func (m *Memory) Get(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := m.keys[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(key))
	copy(cp, key)
	return cp, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, id)
	return nil
}
