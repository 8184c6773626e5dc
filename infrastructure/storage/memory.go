package storage

import "sync"

// MemoryBackend is an in-process Backend used by tests and as a fallback when
// no storage path is configured. An optional byte quota makes capacity
// failures reproducible.
type MemoryBackend struct {
	mu       sync.RWMutex
	values   map[string][]byte
	maxBytes int
}

// NewMemoryBackend creates an unbounded in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// NewMemoryBackendWithQuota creates a backend that rejects writes once the
// total stored size would exceed maxBytes.
func NewMemoryBackendWithQuota(maxBytes int) *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte), maxBytes: maxBytes}
}

func (m *MemoryBackend) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryBackend) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxBytes > 0 {
		total := len(value)
		for k, v := range m.values {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > m.maxBytes {
			return ErrQuotaExceeded
		}
	}

	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *MemoryBackend) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
