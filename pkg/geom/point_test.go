package geom

import (
	"math"
	"testing"
)

func TestDist(t *testing.T) {
	tests := []struct {
		a, b Point
		want int
	}{
		{Pt(0, 0), Pt(0, 0), 0},
		{Pt(0, 0), Pt(3, 4), 5},
		{Pt(1, 1), Pt(0, 0), 1}, // √2
		{Pt(1, 1), Pt(3, 3), 2}, // 2√2
		{Pt(2, 2), Pt(0, 0), 2},
		{Pt(-3, 0), Pt(3, 0), 6},
		{Pt(0, 0), Pt(1, 3), 3}, // √10
	}

	for _, tt := range tests {
		if got := Dist(tt.a, tt.b); got != tt.want {
			t.Errorf("Dist(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := Dist(tt.b, tt.a); got != tt.want {
			t.Errorf("Dist(%v, %v) = %d, want %d (symmetry)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestSample(t *testing.T) {
	pts := Sample(Pt(0, 0), Pt(10, 0), 5)
	want := []Point{Pt(2, 0), Pt(4, 0), Pt(6, 0), Pt(8, 0), Pt(10, 0)}
	if len(pts) != len(want) {
		t.Fatalf("len = %d, want %d", len(pts), len(want))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("pts[%d] = %v, want %v", i, pts[i], want[i])
		}
	}

	if got := Sample(Pt(0, 0), Pt(5, 5), 0); got != nil {
		t.Errorf("Sample with n=0 = %v, want nil", got)
	}
}

func TestSampleStaysOnSegment(t *testing.T) {
	a, b := Pt(3, 17), Pt(41, -6)
	for _, n := range []int{1, 2, 7, 20, 100} {
		for _, p := range Sample(a, b, n) {
			if !onSegment(p, a, b, 0.75) {
				t.Errorf("n=%d: %v is not on segment %v-%v", n, p, a, b)
			}
		}
	}
}

func TestPointIn(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(3, 3), true},
		{Pt(4, 0), false},
		{Pt(0, 4), false},
		{Pt(-1, 2), false},
	}
	for _, tt := range tests {
		if got := tt.p.In(4, 4); got != tt.want {
			t.Errorf("%v.In(4, 4) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

// onSegment reports whether p lies within tolerance of the segment [a,b].
// Sampled points are rounded to the grid, so they may sit up to half a cell
// off the true line.
func onSegment(p, a, b Point, tolerance float64) bool {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	px, py := float64(p.X), float64(p.Y)
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay) <= tolerance
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = max(0, min(1, t))
	cx, cy := ax+t*dx, ay+t*dy
	return math.Hypot(px-cx, py-cy) <= tolerance
}
