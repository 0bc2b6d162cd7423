// Package imaging binds the generic pipeline to concrete image
// payloads. It provides the file-backed Loader and Saver collaborators
// (decoding and encoding via the disintegration/imaging library) and
// helpers for applying whole-image filters to rectangular regions.
//
// The payload type is *image.NRGBA throughout: decoded images are
// normalized to NRGBA on load, which gives every item an independent,
// mutable pixel buffer and makes in-place region operations possible.
//
// # Coordinate System
//
// Regions use the standard image.Rectangle convention: Min is the
// inclusive top-left corner, Max the exclusive bottom-right corner.
// Region helpers clamp rectangles to the image bounds before use, so
// out-of-range or degenerate regions are silently skipped.
package imaging
