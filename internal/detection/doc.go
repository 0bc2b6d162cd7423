// Package detection locates regions of interest in images. Detectors
// return plain image.Rectangle slices so they plug directly into the
// region pipeline, which memoizes their results per item.
//
// Three detectors are provided:
//
//   - Rectangles: gradient edge map plus flood-fill contour analysis,
//     scored by how closely each contour matches its bounding-box
//     perimeter. Finds boxes, frames and signs.
//   - Skin: connected components of skin-toned pixels, classified in
//     HSV space. A lightweight stand-in for a face detector in
//     anonymization chains.
//   - Text: word bounding boxes from Tesseract OCR (requires cgo),
//     for redaction of names, plates and other printed text.
//
// All detectors are pure functions of the input image; they keep no
// state between calls. Region order within a result is deterministic
// for a given image, with larger regions first.
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin at the
// top-left corner, X increasing rightward, Y increasing downward.
// Returned rectangles are expressed in the source image's own
// coordinate space (respecting a non-zero bounds origin).
package detection
