package filters

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/aymenblj/pixlink/internal/imaging"
)

// Gaussian returns a Gaussian blur of the given radius. Radii around
// 10-20 blur a region beyond recognition while keeping smooth edges.
func Gaussian(radius float64) imaging.Filter {
	return func(img image.Image) image.Image {
		return blur.Gaussian(img, radius)
	}
}

// Box returns a box blur of the given radius; cheaper but blockier
// than Gaussian.
func Box(radius float64) imaging.Filter {
	return func(img image.Image) image.Image {
		return blur.Box(img, radius)
	}
}

// Median returns a median filter of the given window size. Strong
// sizes flatten detail while preserving hard region borders.
func Median(size float64) imaging.Filter {
	return func(img image.Image) image.Image {
		return effect.Median(img, size)
	}
}

// Pixelate returns a mosaic filter: the image is downscaled so that
// each block of blockSize pixels collapses to one, then scaled back up
// with nearest-neighbor sampling.
func Pixelate(blockSize int) imaging.Filter {
	if blockSize < 1 {
		blockSize = 1
	}
	return func(img image.Image) image.Image {
		b := img.Bounds()
		w := max(1, b.Dx()/blockSize)
		h := max(1, b.Dy()/blockSize)
		small := transform.Resize(img, w, h, transform.Linear)
		return transform.Resize(small, b.Dx(), b.Dy(), transform.NearestNeighbor)
	}
}

// Grayscale returns a luminance-only version of the image.
func Grayscale() imaging.Filter {
	return func(img image.Image) image.Image {
		return effect.Grayscale(img)
	}
}

// Sepia returns a sepia-toned version of the image.
func Sepia() imaging.Filter {
	return func(img image.Image) image.Image {
		return effect.Sepia(img)
	}
}

// Duotone maps the image's luminance onto a two-color ramp, blending
// from shadowHex (darkest pixels) to highlightHex (brightest) in Lab
// space. Hex colors use the "#rrggbb" form.
func Duotone(shadowHex, highlightHex string) (imaging.Filter, error) {
	shadow, err := colorful.Hex(shadowHex)
	if err != nil {
		return nil, fmt.Errorf("invalid shadow color %q: %w", shadowHex, err)
	}
	highlight, err := colorful.Hex(highlightHex)
	if err != nil {
		return nil, fmt.Errorf("invalid highlight color %q: %w", highlightHex, err)
	}
	return func(img image.Image) image.Image {
		b := img.Bounds()
		out := image.NewNRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, a := img.At(x, y).RGBA()
				// ITU-R BT.601 luminance on 16-bit channels.
				lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 65535.0
				c := shadow.BlendLab(highlight, lum).Clamped()
				cr, cg, cb := c.RGB255()
				out.SetNRGBA(x, y, color.NRGBA{R: cr, G: cg, B: cb, A: uint8(a >> 8)})
			}
		}
		return out
	}, nil
}
