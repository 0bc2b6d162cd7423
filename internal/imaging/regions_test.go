package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// fill returns a filter that paints every pixel with c.
func fill(c color.NRGBA) Filter {
	return func(img image.Image) image.Image {
		b := img.Bounds()
		out := image.NewNRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out.SetNRGBA(x, y, c)
			}
		}
		return out
	}
}

func identity(img image.Image) image.Image { return img }

func TestApplyToRegions_LeavesSourceUntouched(t *testing.T) {
	src := newTestImage(10, 10, color.NRGBA{200, 200, 200, 255})

	out := ApplyToRegions(src, []image.Rectangle{image.Rect(2, 2, 5, 5)}, fill(color.NRGBA{0, 0, 0, 255}))

	if got := src.NRGBAAt(3, 3); got != (color.NRGBA{200, 200, 200, 255}) {
		t.Errorf("source pixel mutated: %v", got)
	}
	if got := out.NRGBAAt(3, 3); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("output region pixel: got %v, want black", got)
	}
	if got := out.NRGBAAt(8, 8); got != (color.NRGBA{200, 200, 200, 255}) {
		t.Errorf("output pixel outside region changed: %v", got)
	}
}

func TestApplyToRegions_ClampsAndSkips(t *testing.T) {
	src := newTestImage(10, 10, color.NRGBA{200, 200, 200, 255})
	regions := []image.Rectangle{
		image.Rect(8, 8, 20, 20),   // clipped to 8..10
		image.Rect(50, 50, 60, 60), // fully outside
	}

	out := ApplyToRegions(src, regions, fill(color.NRGBA{0, 0, 0, 255}))

	if got := out.NRGBAAt(9, 9); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("clamped region pixel: got %v, want black", got)
	}
	if got := out.NRGBAAt(7, 7); got != (color.NRGBA{200, 200, 200, 255}) {
		t.Errorf("pixel outside clamped region changed: %v", got)
	}
}

func TestApplyToRegions_IdentityIsNoOp(t *testing.T) {
	src := newTestImage(10, 10, color.NRGBA{20, 40, 60, 255})

	out := ApplyToRegions(src, []image.Rectangle{image.Rect(0, 0, 10, 10)}, identity)

	if !bytes.Equal(src.Pix, out.Pix) {
		t.Error("identity filter must not change any pixel")
	}
}

func TestRegionOp_MutatesInPlaceWithinRegion(t *testing.T) {
	img := newTestImage(10, 10, color.NRGBA{200, 200, 200, 255})
	op := RegionOp(fill(color.NRGBA{0, 0, 0, 255}))

	op(img, image.Rect(2, 2, 5, 5))

	if got := img.NRGBAAt(3, 3); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("region pixel: got %v, want black", got)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{200, 200, 200, 255}) {
		t.Errorf("pixel outside region changed: %v", got)
	}
}

func TestOp_ReturnsNewValue(t *testing.T) {
	img := newTestImage(4, 4, color.NRGBA{200, 200, 200, 255})

	out := Op(fill(color.NRGBA{1, 1, 1, 255}))(img)

	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{1, 1, 1, 255}) {
		t.Errorf("output pixel: got %v, want 1,1,1", got)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{200, 200, 200, 255}) {
		t.Errorf("input mutated: %v", got)
	}
}
