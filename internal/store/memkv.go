package store

import "sync"

// MemKV is an in-memory KV for tests. It counts writes per key so tests
// can assert on persistence granularity (e.g. one durable write per
// graded answer).
type MemKV struct {
	mu     sync.Mutex
	values map[string][]byte
	writes map[string]int
}

// NewMemKV creates an empty in-memory KV.
func NewMemKV() *MemKV {
	return &MemKV{
		values: make(map[string][]byte),
		writes: make(map[string]int),
	}
}

func (m *MemKV) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemKV) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	m.writes[key]++
}

// Writes returns how many times key has been written.
func (m *MemKV) Writes(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[key]
}

// Corrupt stores a non-JSON value under key, for fallback tests.
func (m *MemKV) Corrupt(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = []byte("{not json")
}
