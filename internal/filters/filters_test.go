package filters

import (
	"image"
	"image/color"
	"testing"

	"github.com/aymenblj/pixlink/internal/imaging"
)

// newTestImage creates a deterministic multi-color image so that blurs
// and resamplers have real gradients to work on.
func newTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 23),
				G: uint8(y * 31),
				B: uint8((x + y) * 13),
				A: 255,
			})
		}
	}
	return img
}

func TestFiltersPreserveDimensions(t *testing.T) {
	duotone, err := Duotone("#1a2b3c", "#f0e0d0")
	if err != nil {
		t.Fatalf("duotone setup failed: %v", err)
	}

	cases := []struct {
		name   string
		filter imaging.Filter
	}{
		{"gaussian", Gaussian(3)},
		{"box", Box(3)},
		{"median", Median(3)},
		{"pixelate", Pixelate(4)},
		{"grayscale", Grayscale()},
		{"sepia", Sepia()},
		{"duotone", duotone},
	}

	src := newTestImage(32, 24)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := tc.filter(src)
			b := out.Bounds()
			if b.Dx() != 32 || b.Dy() != 24 {
				t.Errorf("output size = %dx%d, want 32x24", b.Dx(), b.Dy())
			}
		})
	}
}

func TestPixelate_ReducesDetail(t *testing.T) {
	src := newTestImage(16, 16)
	out := Pixelate(4)(src)

	// Every output pixel is replicated from the 4x4 downscale, so at
	// most 16 distinct colors survive.
	if got := distinctColors(out); got > 16 {
		t.Errorf("distinct colors after pixelation: got %d, want <= 16", got)
	}
	if before := distinctColors(src); before <= 16 {
		t.Fatalf("test image too uniform: %d distinct colors", before)
	}
}

func distinctColors(img image.Image) int {
	seen := make(map[color.Color]struct{})
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			seen[img.At(x, y)] = struct{}{}
		}
	}
	return len(seen)
}

func TestPixelate_ClampsBlockSize(t *testing.T) {
	src := newTestImage(8, 8)
	out := Pixelate(0)(src)
	if b := out.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("output size = %dx%d, want 8x8", b.Dx(), b.Dy())
	}
}

func TestGrayscale_EqualChannels(t *testing.T) {
	out := Grayscale()(newTestImage(10, 10))
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := out.At(x, y).RGBA()
			if r != g || g != bl {
				t.Fatalf("pixel (%d,%d) is not gray: r=%d g=%d b=%d", x, y, r, g, bl)
			}
		}
	}
}

func TestDuotone_InvalidHex(t *testing.T) {
	if _, err := Duotone("nope", "#ffffff"); err == nil {
		t.Error("invalid shadow hex should fail")
	}
	if _, err := Duotone("#000000", "fff"); err == nil {
		t.Error("invalid highlight hex should fail")
	}
}

func TestDuotone_RampEndpoints(t *testing.T) {
	filter, err := Duotone("#204080", "#ffe0c0")
	if err != nil {
		t.Fatalf("duotone setup failed: %v", err)
	}

	black := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	white := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			black.SetNRGBA(x, y, color.NRGBA{A: 255})
			white.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	checkNear := func(t *testing.T, got color.Color, r, g, b uint8) {
		t.Helper()
		gr, gg, gb, _ := got.RGBA()
		// Lab round-trips can be off by one per 8-bit channel.
		if diff(uint8(gr>>8), r) > 1 || diff(uint8(gg>>8), g) > 1 || diff(uint8(gb>>8), b) > 1 {
			t.Errorf("got %v, want ~(%d,%d,%d)", got, r, g, b)
		}
	}

	checkNear(t, filter(black).At(0, 0), 0x20, 0x40, 0x80)
	checkNear(t, filter(white).At(0, 0), 0xff, 0xe0, 0xc0)
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
