package voronoi

import (
	"github.com/matzehuels/regiongen/pkg/geom"
)

// SpineOptions controls how spine segments are sampled.
type SpineOptions struct {
	// Density is the number of points sampled per segment.
	Density int
	// Solid samples one point per unit of truncated segment length instead
	// of a fixed count, producing a gap-free line.
	Solid bool
}

// BuildSpine traces the spine of one cluster.
//
// Members are visited in membership order. For each member R the nearest
// other member that has not yet traced a segment is chosen; on equal
// distances the earlier member wins. Finding a candidate marks R as
// SpineLinked, even when the two centres coincide and nothing is drawn.
// Otherwise the segment R→R' is sampled and the points are appended to
// c.Spine.
//
// The result approximates a spanning skeleton but is built greedily, so it
// can be suboptimal or disconnected.
func BuildSpine(c *Cluster, regions []Region, opts SpineOptions) {
	for _, from := range c.Members {
		src := regions[from].Centre

		to, best := -1, 0
		for _, other := range c.Members {
			if other == from || regions[other].SpineLinked {
				continue
			}
			if d := geom.Dist(src, regions[other].Centre); to == -1 || d < best {
				to, best = other, d
			}
		}
		if to == -1 {
			continue
		}
		regions[from].SpineLinked = true
		if regions[to].Centre == src {
			continue
		}

		n := opts.Density
		if opts.Solid {
			n = best
		}
		c.Spine = append(c.Spine, geom.Sample(src, regions[to].Centre, n)...)
		c.Segments = append(c.Segments, [2]int{from, to})
	}
}

// BuildSpines traces every cluster's spine in cluster order.
func BuildSpines(clusters []Cluster, regions []Region, opts SpineOptions) {
	for i := range clusters {
		BuildSpine(&clusters[i], regions, opts)
	}
}
