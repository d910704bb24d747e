package voronoi

import (
	"math"
	"testing"

	"github.com/matzehuels/regiongen/pkg/geom"
)

func TestBuildSpineGreedy(t *testing.T) {
	regions := regionsAt(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(20, 0))
	c := Cluster{Members: []int{0, 1, 2}}

	BuildSpine(&c, regions, SpineOptions{Density: 5})

	// 0 picks 1, then 1 skips the linked 0 and picks 2; 2 has nobody left.
	wantSegments := [][2]int{{0, 1}, {1, 2}}
	if len(c.Segments) != len(wantSegments) {
		t.Fatalf("Segments = %v, want %v", c.Segments, wantSegments)
	}
	for i := range wantSegments {
		if c.Segments[i] != wantSegments[i] {
			t.Errorf("Segments[%d] = %v, want %v", i, c.Segments[i], wantSegments[i])
		}
	}

	want := []geom.Point{
		geom.Pt(2, 0), geom.Pt(4, 0), geom.Pt(6, 0), geom.Pt(8, 0), geom.Pt(10, 0),
		geom.Pt(12, 0), geom.Pt(14, 0), geom.Pt(16, 0), geom.Pt(18, 0), geom.Pt(20, 0),
	}
	if len(c.Spine) != len(want) {
		t.Fatalf("len(Spine) = %d, want %d", len(c.Spine), len(want))
	}
	for i := range want {
		if c.Spine[i] != want[i] {
			t.Errorf("Spine[%d] = %v, want %v", i, c.Spine[i], want[i])
		}
	}

	tests := []struct {
		region int
		want   bool
	}{
		{0, true},
		{1, true},
		{2, false},
	}
	for _, tt := range tests {
		if got := regions[tt.region].SpineLinked; got != tt.want {
			t.Errorf("regions[%d].SpineLinked = %v, want %v", tt.region, got, tt.want)
		}
	}
}

func TestBuildSpinePair(t *testing.T) {
	regions := regionsAt(geom.Pt(0, 0), geom.Pt(0, 8))
	c := Cluster{Members: []int{0, 1}}

	BuildSpine(&c, regions, SpineOptions{Density: 4})

	if len(c.Segments) != 1 || c.Segments[0] != [2]int{0, 1} {
		t.Fatalf("Segments = %v, want [[0 1]]", c.Segments)
	}
	if len(c.Spine) != 4 {
		t.Errorf("len(Spine) = %d, want 4", len(c.Spine))
	}
}

func TestBuildSpineSolid(t *testing.T) {
	regions := regionsAt(geom.Pt(0, 0), geom.Pt(0, 12))
	c := Cluster{Members: []int{0, 1}}

	BuildSpine(&c, regions, SpineOptions{Density: 3, Solid: true})

	// One segment 0→1 with a point per unit of length.
	if len(c.Spine) != 12 {
		t.Fatalf("len(Spine) = %d, want 12", len(c.Spine))
	}
	for i := 0; i < 12; i++ {
		if c.Spine[i] != geom.Pt(0, i+1) {
			t.Errorf("Spine[%d] = %v, want %v", i, c.Spine[i], geom.Pt(0, i+1))
		}
	}
}

func TestBuildSpineSingleMember(t *testing.T) {
	regions := regionsAt(geom.Pt(4, 4))
	c := Cluster{Members: []int{0}}
	BuildSpine(&c, regions, SpineOptions{Density: 10})
	if len(c.Spine) != 0 {
		t.Errorf("single-member spine = %v, want empty", c.Spine)
	}
}

func TestBuildSpineSkipsCoincidentCentres(t *testing.T) {
	regions := regionsAt(geom.Pt(4, 4), geom.Pt(4, 4))
	c := Cluster{Members: []int{0, 1}}
	BuildSpine(&c, regions, SpineOptions{Density: 10})
	if len(c.Spine) != 0 {
		t.Errorf("coincident spine = %v, want empty", c.Spine)
	}
	if !regions[0].SpineLinked {
		t.Error("region 0 found a partner and should be linked")
	}
	if regions[1].SpineLinked {
		t.Error("region 1 had no eligible partner and should not be linked")
	}
}

func TestBuildSpinesPointsOnMemberSegments(t *testing.T) {
	regions, err := GenerateSeeds(150, 150, 60, NewRand(11))
	if err != nil {
		t.Fatal(err)
	}
	clusters := BuildClusters(regions, Band{Min: 5, Max: 40}, nil)
	BuildSpines(clusters, regions, SpineOptions{Density: 20})

	for ci, c := range clusters {
		if len(c.Spine) == 0 {
			t.Errorf("cluster %d with %d members has empty spine", ci, len(c.Members))
			continue
		}
		for _, p := range c.Spine {
			onAny := false
			for _, a := range c.Members {
				for _, b := range c.Members {
					if a != b && onSegment(p, regions[a].Centre, regions[b].Centre, 0.75) {
						onAny = true
					}
				}
			}
			if !onAny {
				t.Errorf("cluster %d: spine point %v not on any member segment", ci, p)
			}
		}
		sources := make(map[int]bool)
		for _, seg := range c.Segments {
			if sources[seg[0]] {
				t.Errorf("cluster %d: region %d traced more than one segment", ci, seg[0])
			}
			sources[seg[0]] = true
			if !regions[seg[0]].SpineLinked {
				t.Errorf("cluster %d: source region %d not linked", ci, seg[0])
			}
		}
		if len(c.Segments) >= len(c.Members) {
			t.Errorf("cluster %d: %d segments for %d members", ci, len(c.Segments), len(c.Members))
		}
	}
}

// onSegment reports whether p lies within tolerance of the segment [a,b].
// Sampled points are rounded to the grid, so they may sit up to half a cell
// off the true line.
func onSegment(p, a, b geom.Point, tolerance float64) bool {
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
