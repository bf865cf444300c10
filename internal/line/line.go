// Package line rasterizes straight lines between pixels.
package line

import (
	"image"
)

// Walk calls fn for every pixel on the line a -> b (inclusive of both ends),
// in order from a. Works for lines in any direction.
// See https://en.wikipedia.org/wiki/Bresenham%27s_line_algorithm
func Walk(a, b image.Point, fn func(p image.Point)) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy

	x, y := a.X, a.Y
	for {
		fn(image.Pt(x, y))
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// PointsBetween returns all points on a line between a,b
func PointsBetween(a, b image.Point) []image.Point {
	pts := []image.Point{}
	Walk(a, b, func(p image.Point) {
		pts = append(pts, p)
	})
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
