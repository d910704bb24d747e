package geom

import (
	"fmt"
	"math"
)

// Point is an integer position on the pixel grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// In reports whether p lies inside [0,w) × [0,h).
func (p Point) In(w, h int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Dist returns the Euclidean distance between a and b truncated to an int.
func Dist(a, b Point) int {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return int(math.Sqrt(dx*dx + dy*dy))
}

// Sample returns n points evenly spaced along the segment from a to b,
// excluding a and ending exactly on b. Coordinates are rounded to the
// nearest integer (half away from zero). n <= 0 yields nil.
func Sample(a, b Point, n int) []Point {
	if n <= 0 {
		return nil
	}
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	pts := make([]Point, n)
	for k := 1; k <= n; k++ {
		t := float64(k) / float64(n)
		pts[k-1] = Point{
			X: a.X + int(math.Round(t*dx)),
			Y: a.Y + int(math.Round(t*dy)),
		}
	}
	return pts
}
