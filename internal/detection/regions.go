package detection

import (
	"image"
	"math"
	"sort"
)

// grid is a dense boolean raster addressed by zero-based x/y.
type grid struct {
	w, h  int
	cells []bool
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, cells: make([]bool, w*h)}
}

func (g *grid) at(x, y int) bool { return g.cells[y*g.w+x] }
func (g *grid) set(x, y int)     { g.cells[y*g.w+x] = true }
func (g *grid) in(x, y int) bool { return x >= 0 && x < g.w && y >= 0 && y < g.h }

// Rectangles finds rectangular shapes using edge detection and contour
// analysis. minArea discards bounding boxes smaller than the given
// pixel area; tolerance (0..1) is the minimum rectangularity score,
// i.e. how closely the contour length must match the bounding-box
// perimeter (0.85 is a reasonable default). Results are ordered
// largest-area first.
func Rectangles(img image.Image, minArea int, tolerance float64) []image.Rectangle {
	bounds := img.Bounds()
	edges := edgeMap(img)

	var rects []image.Rectangle
	type scored struct {
		rect image.Rectangle
		area int
	}
	var candidates []scored

	for _, contour := range contours(edges) {
		if len(contour) < 4 {
			continue
		}
		box := boundingBox(contour)
		area := box.Dx() * box.Dy()
		if area < minArea {
			continue
		}

		// A perfect rectangle outline has exactly perimeter-many edge
		// pixels; score deviation from that.
		perimeter := 2 * (box.Dx() + box.Dy())
		score := 1.0 - math.Abs(float64(len(contour)-perimeter))/float64(perimeter)
		if score < tolerance {
			continue
		}
		candidates = append(candidates, scored{rect: box.Add(bounds.Min), area: area})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].area > candidates[j].area })
	for _, c := range candidates {
		rects = append(rects, c.rect)
	}
	return rects
}

// edgeMap marks pixels whose horizontal or vertical grayscale gradient
// exceeds a fixed threshold. Border pixels are never edges.
func edgeMap(img image.Image) *grid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	edges := newGrid(w, h)
	const threshold = 30.0

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := gray(img, x+bounds.Min.X, y+bounds.Min.Y)
			gx := math.Abs(c - gray(img, x+1+bounds.Min.X, y+bounds.Min.Y))
			gy := math.Abs(c - gray(img, x+bounds.Min.X, y+1+bounds.Min.Y))
			if gx > threshold || gy > threshold {
				edges.set(x, y)
			}
		}
	}
	return edges
}

// contours groups marked pixels into 8-connected components, dropping
// components smaller than 10 pixels as noise.
func contours(g *grid) [][]image.Point {
	visited := newGrid(g.w, g.h)
	var out [][]image.Point

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if !g.at(x, y) || visited.at(x, y) {
				continue
			}
			component := flood(g, visited, x, y)
			if len(component) >= 10 {
				out = append(out, component)
			}
		}
	}
	return out
}

// flood collects the 8-connected component containing (x, y) using an
// explicit stack.
func flood(g, visited *grid, x, y int) []image.Point {
	var component []image.Point
	stack := []image.Point{{X: x, Y: y}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.in(p.X, p.Y) || visited.at(p.X, p.Y) || !g.at(p.X, p.Y) {
			continue
		}
		visited.set(p.X, p.Y)
		component = append(component, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return component
}

// boundingBox returns the tightest rectangle enclosing the points. The
// result uses inclusive-exclusive bounds, so single pixels still form a
// 1x1 rectangle.
func boundingBox(points []image.Point) image.Rectangle {
	box := image.Rectangle{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.X > box.Max.X {
			box.Max.X = p.X
		}
		if p.Y > box.Max.Y {
			box.Max.Y = p.Y
		}
	}
	box.Max.X++
	box.Max.Y++
	return box
}

// gray converts a pixel to grayscale using ITU-R BT.601 luminance
// weights on 8-bit channels.
func gray(img image.Image, x, y int) float64 {
	r, g, b, _ := img.At(x, y).RGBA()
	return float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114
}
