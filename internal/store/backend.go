package store

import (
	"fmt"
	"sync"
)

// Backend is the durable key/value capability the record store writes
// through. Implementations must be safe for concurrent use. The backend is
// selected once at process start; the store never branches on the
// environment itself.
type Backend interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(key string) (value []byte, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(key string, value []byte) error
}

// OpenBackend opens the backend named by the configuration. The concrete
// backends returned for "sqlite" and "bolt" also implement io.Closer.
func OpenBackend(backend, path string) (Backend, error) {
	switch backend {
	case "", "sqlite":
		return Open(path)
	case "bolt":
		return OpenBolt(path)
	case "memory":
		return NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

// MemoryBackend keeps values in process memory. It backs hosts without
// durable storage and the test suite.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Get implements Backend.
func (m *MemoryBackend) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements Backend.
func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}
