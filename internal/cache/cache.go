// Package cache provides a thread-safe generic map plus the preview and syntax CSS caches.
package cache

import (
	"slices"
	"sync"
)

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Keys returns the keys in unspecified order unless cmp is given.
func (c *Cache[K, V]) Keys(cmp func(a, b K) int) []K {
	c.mu.RLock()
	keys := make([]K, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	if cmp != nil {
		slices.SortFunc(keys, cmp)
	}
	return keys
}

// RenderedPreview is a rendered markdown preview of an editor buffer.
type RenderedPreview struct {
	HTML  []byte
	Title string
}

var previewCache = NewCache[string, *RenderedPreview]()

func GetPreview(contentHash, syntaxTheme string) (*RenderedPreview, bool) {
	return previewCache.Get(contentHash + ":" + syntaxTheme)
}

func SetPreview(contentHash, syntaxTheme string, preview *RenderedPreview) {
	previewCache.Set(contentHash+":"+syntaxTheme, preview)
}

func ClearPreviews() {
	previewCache.Clear()
}

func PreviewCount() int {
	return previewCache.Len()
}
