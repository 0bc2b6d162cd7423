// Package filters provides the whole-image transformations used by the
// anonymization chains: blurs and pixelation for masking regions, plus
// a few tonal effects. Each constructor returns an imaging.Filter, so
// the same transformation can run over a full image (Pipeline.Process)
// or over detected regions only (RegionPipeline via imaging.RegionOp).
package filters
