package pipeline

import (
	"fmt"
	"image"
)

// Detector produces the regions of interest for an item, in whatever
// order the underlying algorithm yields them.
type Detector[T any] func(item T) []image.Rectangle

// RegionOp mutates an item in place within the given region. The region
// passed to the op is already clamped to the item's bounds and is never
// empty.
type RegionOp[T any] func(item T, region image.Rectangle)

// regionMeta memoizes one detector invocation for a key.
type regionMeta struct {
	regions  []image.Rectangle
	detected bool
}

// RegionPipeline applies region-local operations to working-set items,
// running the detector at most once per key until ResetRegions is
// called for it.
//
// It shares the Pipeline's working map rather than copying it, so
// updates made through either side are visible to both. The memoized
// regions are not invalidated when an item is mutated through the
// Pipeline; callers that change an item's geometry out of band must
// call ResetRegions themselves.
type RegionPipeline[T any] struct {
	detector Detector[T]
	working  map[string]T
	bounds   func(T) image.Rectangle
	meta     map[string]*regionMeta
}

// NewRegionPipeline wires a detector to a Pipeline's working set.
// bounds reports an item's full extent and is used to clamp detected
// regions before each operation. The RegionPipeline must not outlive
// the Pipeline whose working set it borrows.
func NewRegionPipeline[T any](detector Detector[T], working map[string]T, bounds func(T) image.Rectangle) *RegionPipeline[T] {
	return &RegionPipeline[T]{
		detector: detector,
		working:  working,
		bounds:   bounds,
		meta:     make(map[string]*regionMeta),
	}
}

// ProcessRegions applies op to every detected region of the item under
// key, in detector order. The detector runs only if no memoized result
// exists for the key. Regions are clamped to the item's current bounds;
// regions that fall entirely outside contribute nothing.
func (rp *RegionPipeline[T]) ProcessRegions(key string, op RegionOp[T]) error {
	item, ok := rp.working[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	meta := rp.meta[key]
	if meta == nil {
		meta = &regionMeta{}
		rp.meta[key] = meta
	}
	if !meta.detected {
		meta.regions = rp.detector(item)
		meta.detected = true
	}

	full := rp.bounds(item)
	for _, region := range meta.regions {
		clamped := region.Intersect(full)
		if clamped.Empty() {
			continue
		}
		op(item, clamped)
	}
	return nil
}

// Regions returns the memoized regions for key and whether detection
// has run since the last reset.
func (rp *RegionPipeline[T]) Regions(key string) ([]image.Rectangle, bool) {
	meta := rp.meta[key]
	if meta == nil || !meta.detected {
		return nil, false
	}
	return meta.regions, true
}

// ResetRegions drops the memoized detection result for key, forcing the
// detector to run again on the next ProcessRegions call.
func (rp *RegionPipeline[T]) ResetRegions(key string) {
	delete(rp.meta, key)
}

// ResetAllRegions drops every memoized detection result.
func (rp *RegionPipeline[T]) ResetAllRegions() {
	rp.meta = make(map[string]*regionMeta)
}
