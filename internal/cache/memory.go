package cache

import (
	"context"
	"sync"
)

// MemoryCache is the in-process fallback used when no Redis URL is
// configured, and in tests.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]int)}
}

func (m *MemoryCache) Close() error {
	return nil
}

func (m *MemoryCache) GetTermID(_ context.Context, taxonomy, name string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.data[taxonomy+":"+name]
	return id, ok, nil
}

func (m *MemoryCache) SetTermID(_ context.Context, taxonomy, name string, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[taxonomy+":"+name] = id
	return nil
}
