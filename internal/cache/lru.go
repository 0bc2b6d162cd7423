package cache

import (
	"container/list"
	"fmt"
)

// entry is the value stored in each recency-list element.
type entry[T any] struct {
	key  string
	item T
}

// LRU is a Cache with a fixed capacity that evicts the least recently
// touched key when a new key is inserted at capacity.
//
// Recency is maintained with a doubly-linked list (front = most
// recently used) plus a map from key to list element, so every touch,
// insert and eviction is O(1). Capacity is fixed at construction.
type LRU[T any] struct {
	capacity int
	order    *list.List               // of *entry[T], front = MRU
	elems    map[string]*list.Element // key -> node in order
	clone    CloneFunc[T]
}

// NewLRU creates an empty LRU cache holding at most capacity items.
// capacity must be at least 1. clone may be nil, in which case Get and
// GetShallow behave identically.
func NewLRU[T any](capacity int, clone CloneFunc[T]) *LRU[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[T]{
		capacity: capacity,
		order:    list.New(),
		elems:    make(map[string]*list.Element, capacity),
		clone:    clone,
	}
}

// Capacity returns the fixed maximum number of items.
func (c *LRU[T]) Capacity() int { return c.capacity }

// Len returns the number of items currently cached.
func (c *LRU[T]) Len() int { return c.order.Len() }

// Put inserts or overwrites the item stored under key and marks it most
// recently used. Inserting a new key at capacity evicts the least
// recently used key first.
func (c *LRU[T]) Put(key string, item T) {
	if el, ok := c.elems[key]; ok {
		el.Value.(*entry[T]).item = item
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		back := c.order.Back()
		delete(c.elems, back.Value.(*entry[T]).key)
		c.order.Remove(back)
	}
	c.elems[key] = c.order.PushFront(&entry[T]{key: key, item: item})
}

// Contains reports whether key is present without refreshing recency.
func (c *LRU[T]) Contains(key string) bool {
	_, ok := c.elems[key]
	return ok
}

// Get returns a copy of the item stored under key and marks the key
// most recently used.
func (c *LRU[T]) Get(key string) (T, error) {
	el, ok := c.elems[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	c.order.MoveToFront(el)
	item := el.Value.(*entry[T]).item
	if c.clone != nil {
		return c.clone(item), nil
	}
	return item, nil
}

// GetShallow returns the stored value without copying and marks the key
// most recently used.
func (c *LRU[T]) GetShallow(key string) (T, error) {
	el, ok := c.elems[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry[T]).item, nil
}

// Remove deletes key from the cache and the recency order.
func (c *LRU[T]) Remove(key string) {
	if el, ok := c.elems[key]; ok {
		c.order.Remove(el)
		delete(c.elems, key)
	}
}

// Clear empties the cache and the recency order.
func (c *LRU[T]) Clear() {
	c.order.Init()
	c.elems = make(map[string]*list.Element, c.capacity)
}

// Keys returns cached keys ordered most- to least-recently-used.
func (c *LRU[T]) Keys() []string {
	keys := make([]string, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[T]).key)
	}
	return keys
}
