package imaging

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/aymenblj/pixlink/internal/pipeline"
)

// Filter transforms a whole image. The result must have the same
// dimensions as the input; bounds may be translated to the origin, as
// most image libraries do.
type Filter func(image.Image) image.Image

// ApplyToRegions returns a copy of img with filter applied to each
// region. Regions are clamped to the image bounds first; regions that
// fall entirely outside contribute no change.
func ApplyToRegions(img *image.NRGBA, regions []image.Rectangle, filter Filter) *image.NRGBA {
	out := imaging.Clone(img)
	full := out.Bounds()
	for _, region := range regions {
		r := region.Intersect(full)
		if r.Empty() {
			continue
		}
		filtered := filter(out.SubImage(r))
		draw.Draw(out, r, filtered, filtered.Bounds().Min, draw.Src)
	}
	return out
}

// RegionOp adapts a whole-image filter into an in-place region
// operation for RegionPipeline. The filter sees only the region's
// pixels and its output is drawn back over the same rectangle.
func RegionOp(filter Filter) pipeline.RegionOp[*image.NRGBA] {
	return func(img *image.NRGBA, region image.Rectangle) {
		filtered := filter(img.SubImage(region))
		draw.Draw(img, region, filtered, filtered.Bounds().Min, draw.Src)
	}
}

// Op adapts a whole-image filter into a value transform for
// Pipeline.Process.
func Op(filter Filter) func(*image.NRGBA) *image.NRGBA {
	return func(img *image.NRGBA) *image.NRGBA {
		return imaging.Clone(filter(img))
	}
}
