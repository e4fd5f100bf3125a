package bitcask

import (
	"sort"
	"sync"
)

// MemoryStore keeps everything in a map. Nothing survives the process and
// Close is a no-op.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key []byte) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.data[string(key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, val...), true, nil
}

func (m *MemoryStore) Set(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[string(key)] = append([]byte{}, value...)
	return nil
}

// Close always succeeds.
func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}

func (m *MemoryStore) Exists(key []byte) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[string(key)]
	return ok
}

func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	return keys
}
