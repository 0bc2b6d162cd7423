// Package cache provides key-addressed in-memory stores with pluggable
// eviction policies, used by the pipeline as the durable backing layer
// behind its working set.
//
// Two implementations are provided:
//
//   - Unbounded: a plain map with no eviction. Suitable when the whole
//     input set fits in memory.
//   - LRU: a fixed-capacity store that evicts the least recently
//     touched key. Every read and write counts as a touch.
//
// Both are generic over the stored item type. A clone function supplied
// at construction controls Get's copy semantics: with a clone function,
// Get returns an independent deep copy while GetShallow returns the
// stored value as-is; with a nil clone function the two are identical.
//
// # Thread Safety
//
// Caches are not safe for concurrent use. The pipeline assumes
// exclusive, sequential access; callers that share a cache across
// goroutines must synchronize externally.
package cache
