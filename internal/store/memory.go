package store

import "github.com/debemdeboas/the-notebook/internal/cache"

// MemoryKV keeps blobs in process memory. Contents are lost on exit.
type MemoryKV struct {
	items *cache.Cache[string, string]
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: cache.NewCache[string, string]()}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	value, ok := m.items.Get(key)
	return value, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.items.Set(key, value)
	return nil
}

func (m *MemoryKV) Delete(key string) {
	m.items.Delete(key)
}
