// Package store provides the persistent key-value state store backing the
// registry: installed extensions and the enabled-addon list, read once at
// startup and rewritten in full after every mutating registry operation.
package store

import "sync"

// Keys the registry persists under.
const (
	KeyExtensions    = "extensions"
	KeyEnabledAddons = "enabledAddons"
)

// KV is the narrow store surface the registry depends on. Values are opaque
// blobs; the registry serializes full collections, never increments.
type KV interface {
	// Get returns the value for key, with ok=false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set writes the value for key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Memory is an in-process KV, used by tests and ephemeral runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
