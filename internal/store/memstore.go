package store

import (
	"encoding/json"
	"sync"
)

// MemStore is an in-memory Store used by tests. Records round-trip
// through JSON so tests see the same copy semantics as the real
// backends.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string]json.RawMessage
}

func NewMemStore() *MemStore {
	return &MemStore{collections: make(map[string]json.RawMessage)}
}

func (m *MemStore) Read(collection string, out any) error {
	m.mu.RLock()
	raw, ok := m.collections[collection]
	m.mu.RUnlock()

	if !ok {
		raw = json.RawMessage("[]")
	}
	return json.Unmarshal(raw, out)
}

func (m *MemStore) Write(collection string, records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.collections[collection] = raw
	m.mu.Unlock()
	return nil
}
