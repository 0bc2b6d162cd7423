package cache

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get and GetShallow when the requested key
// is not present in the cache.
var ErrNotFound = errors.New("key not found in cache")

// CloneFunc produces an independent copy of an item. Implementations
// use it to give Get deep-copy semantics for reference-like payloads
// (e.g. images whose pixel buffers would otherwise be shared).
type CloneFunc[T any] func(T) T

// Cache is a key-addressed item store with an implementation-defined
// retention policy.
//
// Keys are opaque strings; the cache never interprets them beyond
// equality. For policies that track recency (LRU), Put, Get and
// GetShallow all count as a touch of the key.
type Cache[T any] interface {
	// Put inserts or overwrites the item stored under key.
	Put(key string, item T)

	// Contains reports whether key is present. It does not count as a
	// touch for recency-tracking policies.
	Contains(key string) bool

	// Get returns the item stored under key. If the cache was built
	// with a clone function, the returned value is an independent copy.
	// Returns an error wrapping ErrNotFound if key is absent.
	Get(key string) (T, error)

	// GetShallow returns the stored value as-is, sharing any underlying
	// buffers with the cache. Returns an error wrapping ErrNotFound if
	// key is absent.
	GetShallow(key string) (T, error)

	// Remove deletes key from the cache. Removing an absent key is a
	// no-op.
	Remove(key string)

	// Clear empties the cache.
	Clear()

	// Keys returns all cached keys. Order is policy-defined: unbounded
	// caches make no guarantee, LRU caches return most- to
	// least-recently-used.
	Keys() []string
}

// Unbounded is a Cache backed by a plain map. It never evicts; items
// stay cached until removed or cleared.
type Unbounded[T any] struct {
	items map[string]T
	clone CloneFunc[T]
}

// NewUnbounded creates an empty unbounded cache. clone may be nil, in
// which case Get and GetShallow behave identically.
func NewUnbounded[T any](clone CloneFunc[T]) *Unbounded[T] {
	return &Unbounded[T]{
		items: make(map[string]T),
		clone: clone,
	}
}

// Put inserts or overwrites the item stored under key.
func (c *Unbounded[T]) Put(key string, item T) {
	c.items[key] = item
}

// Contains reports whether key is present.
func (c *Unbounded[T]) Contains(key string) bool {
	_, ok := c.items[key]
	return ok
}

// Get returns a copy of the item stored under key.
func (c *Unbounded[T]) Get(key string) (T, error) {
	item, ok := c.items[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if c.clone != nil {
		return c.clone(item), nil
	}
	return item, nil
}

// GetShallow returns the stored value without copying.
func (c *Unbounded[T]) GetShallow(key string) (T, error) {
	item, ok := c.items[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return item, nil
}

// Remove deletes key from the cache.
func (c *Unbounded[T]) Remove(key string) {
	delete(c.items, key)
}

// Clear empties the cache.
func (c *Unbounded[T]) Clear() {
	c.items = make(map[string]T)
}

// Keys returns all cached keys in unspecified order.
func (c *Unbounded[T]) Keys() []string {
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}
