package viewer

import (
	"image"
	"image/color"
	"math"
)

// screenVertex is a projected corner: pixel position plus depth
type screenVertex struct {
	x, y, z float64
}

// fillTriangle fills a triangle with depth testing using scanlines
func fillTriangle(img *image.RGBA, zbuffer []float64, a, b, c screenVertex, col color.RGBA) {
	// sort top to bottom
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}

	bounds := img.Bounds()
	width := bounds.Max.X

	for y := int(math.Max(0, math.Ceil(a.y))); y <= int(math.Min(float64(bounds.Max.Y-1), c.y)); y++ {
		fy := float64(y)

		// long edge a-c always spans the scanline
		left, ok := edgeAt(a, c, fy)
		if !ok {
			continue
		}
		var right screenVertex
		if fy <= b.y {
			right, ok = edgeAt(a, b, fy)
		} else {
			right, ok = edgeAt(b, c, fy)
		}
		if !ok {
			right = b
		}
		if left.x > right.x {
			left, right = right, left
		}

		start := int(math.Max(0, math.Ceil(left.x)))
		end := int(math.Min(float64(width-1), right.x))
		for x := start; x <= end; x++ {
			t := 0.0
			if right.x != left.x {
				t = (float64(x) - left.x) / (right.x - left.x)
			}
			z := left.z + t*(right.z-left.z)

			// closer wins
			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// edgeAt interpolates the edge p-q at scanline y
func edgeAt(p, q screenVertex, y float64) (screenVertex, bool) {
	if p.y == q.y {
		return screenVertex{}, false
	}
	t := (y - p.y) / (q.y - p.y)
	if t < 0 || t > 1 {
		return screenVertex{}, false
	}
	return screenVertex{
		x: p.x + t*(q.x-p.x),
		y: y,
		z: p.z + t*(q.z-p.z),
	}, true
}

// drawLine draws a line using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawMarker draws a filled square of the given half size
func drawMarker(img *image.RGBA, cx, cy, half int, col color.RGBA) {
	bounds := img.Bounds()
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			if x >= 0 && x < bounds.Max.X && y >= 0 && y < bounds.Max.Y {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
