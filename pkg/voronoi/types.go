package voronoi

import (
	"image/color"

	"github.com/matzehuels/regiongen/pkg/geom"
)

// DistanceUnset marks a cell whose distance from a spine was never computed,
// either because its region is not clustered or because the cluster has no
// spine points.
const DistanceUnset = -1

// NoCluster is the Cluster index of a region that belongs to no cluster.
const NoCluster = -1

// NoRegion is the Owner of a cell before assignment.
const NoRegion = -1

// Region is a seed point and the cells nearest to it.
type Region struct {
	ID     int
	Centre geom.Point
	Colour color.NRGBA

	// Cells holds indices into Grid.Cells, populated by Assign.
	Cells []int

	// Cluster is the index of the owning cluster, or NoCluster.
	Cluster       int
	PartOfCluster bool

	// SpineLinked is set once the region has picked its spine partner.
	// Linked regions are no longer eligible as partners.
	SpineLinked bool
}

// Cell is one grid position.
type Cell struct {
	Pos      geom.Point
	Owner    int // index into the region slice, NoRegion before assignment
	Distance int // distance from the cluster spine, DistanceUnset if unknown
}

// Cluster is a group of nearby regions (a mega-region).
type Cluster struct {
	ID      int
	Members []int // indices into the region slice, in membership order
	Spine   []geom.Point
	Colour  color.NRGBA

	// Segments records each spine segment as a (from, to) pair of region
	// indices, in the order they were traced.
	Segments [][2]int

	// MaxDistance is the largest Cell.Distance among member cells, set by
	// ComputeDistances.
	MaxDistance int
}

// Band is an exclusive distance range: a pair qualifies when Min < d < Max.
type Band struct {
	Min int `json:"min" toml:"min"`
	Max int `json:"max" toml:"max"`
}

// Contains reports whether d lies strictly inside the band.
func (b Band) Contains(d int) bool {
	return d > b.Min && d < b.Max
}
