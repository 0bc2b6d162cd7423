package detection

import (
	"image"
	"image/color"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Skin finds connected regions of skin-toned pixels and returns their
// bounding boxes, largest first. minArea discards components below the
// given pixel area; use it to reject isolated matches in backgrounds.
//
// Classification happens in HSV space: skin hues sit in the red-orange
// band with moderate saturation and sufficient brightness. The
// heuristic favors recall over precision, which suits anonymization
// (blurring slightly too much is the safe failure mode).
func Skin(img image.Image, minArea int) []image.Rectangle {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mask := newGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if skinTone(img.At(x+bounds.Min.X, y+bounds.Min.Y)) {
				mask.set(x, y)
			}
		}
	}

	var rects []image.Rectangle
	for _, component := range contours(mask) {
		box := boundingBox(component)
		if box.Dx()*box.Dy() < minArea {
			continue
		}
		rects = append(rects, box.Add(bounds.Min))
	}
	sort.Slice(rects, func(i, j int) bool {
		return rects[i].Dx()*rects[i].Dy() > rects[j].Dx()*rects[j].Dy()
	})
	return rects
}

// skinTone classifies one pixel as skin-colored.
func skinTone(c color.Color) bool {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return false
	}
	hue, sat, val := col.Hsv()
	// Red-orange hues; the band wraps slightly below 360 for pink tones.
	hueOK := hue <= 50 || hue >= 340
	return hueOK && sat >= 0.15 && sat <= 0.75 && val >= 0.35
}
