package schemacache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache keeps schema bytes per version for the life of the process.
// Concurrent misses for the same version share a single fill.
type Cache struct {
	mu      sync.RWMutex
	entries map[int][]byte
	group   singleflight.Group
}

func New() *Cache {
	return &Cache{entries: make(map[int][]byte)}
}

// Load returns the cached bytes for version, calling fill on a miss. The bool
// reports a hit: only the caller whose fill ran reports false, callers that
// waited on a shared fill report true. Failed fills are not stored.
func (c *Cache) Load(ctx context.Context, version int, fill func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	if data, ok := c.lookup(version); ok {
		return data, true, nil
	}

	filled := false
	result, err, _ := c.group.Do(strconv.Itoa(version), func() (any, error) {
		if data, ok := c.lookup(version); ok {
			return data, nil
		}
		filled = true
		data, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[version] = data
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result.([]byte), !filled, nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(version int) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[version]
	return data, ok
}
