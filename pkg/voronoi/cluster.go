package voronoi

import (
	"math/rand/v2"

	"github.com/matzehuels/regiongen/pkg/geom"
)

// BuildClusters groups regions into clusters in a single pass over regions.
//
// For each region R not yet claimed, every other unclaimed region whose
// centre lies strictly inside band from R's centre joins R's candidate set
// and is claimed immediately. When the set holds more than R alone, R is
// claimed as well and a cluster is created with members in that order:
// R first, then the joiners in region order.
//
// Membership is decided by distance to R only, so clusters are star-shaped
// around their first region. Cluster colours are drawn from rng in id
// order; a nil rng leaves them zero.
//
// Region.PartOfCluster and Region.Cluster are updated in place. Regions
// must have been reset (PartOfCluster false) by the caller before reuse.
func BuildClusters(regions []Region, b Band, rng *rand.Rand) []Cluster {
	var clusters []Cluster
	candidates := make([]int, 0, 8)

	for i := range regions {
		if regions[i].PartOfCluster {
			continue
		}
		candidates = append(candidates[:0], i)

		for j := range regions {
			if j == i || regions[j].PartOfCluster {
				continue
			}
			if b.Contains(geom.Dist(regions[i].Centre, regions[j].Centre)) {
				candidates = append(candidates, j)
				regions[j].PartOfCluster = true
			}
		}

		if len(candidates) > 1 {
			regions[i].PartOfCluster = true
			c := Cluster{
				ID:      len(clusters),
				Members: append([]int(nil), candidates...),
			}
			if rng != nil {
				c.Colour = RandomColour(rng)
			}
			for _, m := range c.Members {
				regions[m].Cluster = c.ID
			}
			clusters = append(clusters, c)
		}
	}
	return clusters
}
