package sink

import "github.com/matzehuels/regiongen/pkg/voronoi"

// Scene is the metadata of one generation needed by the non-image formats.
type Scene struct {
	Width    int
	Height   int
	Seed     uint64
	Mode     string
	Regions  []voronoi.Region
	Clusters []voronoi.Cluster
}
