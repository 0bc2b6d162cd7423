// Package pipeline orchestrates a working set of keyed items over a
// backing cache, plus a region-scoped layer that memoizes expensive
// detection results per item.
//
// The Pipeline owns two layers of state: the cache (see internal/cache)
// is the durable backing store, and the working set is the transient
// "checked out" view items are processed in. Load operations populate
// the cache first and then copy the cached value into the working set;
// Release drops the working copy while leaving the cache intact, so a
// later Reset restores the item to its as-loaded state without touching
// disk (unless the cache evicted it).
//
// Decoding and encoding of the item payload are delegated to Loader and
// Saver collaborators; the pipeline never inspects item contents and
// works for any payload type.
//
// RegionPipeline layers region-local processing on top: a detector
// function produces rectangles for an item, the result is memoized per
// key, and any number of region operations can then be applied against
// the same detected regions without re-running the detector. Detection
// runs again only after ResetRegions.
//
// All types in this package assume single-threaded use. A RegionPipeline
// holds a live reference into its Pipeline's working set and must not
// outlive it; sharing either across goroutines requires one external
// lock around the whole pipeline/region-pipeline/cache triple.
package pipeline
