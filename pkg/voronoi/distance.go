package voronoi

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/geom"
)

// SpineDistance returns the smallest truncated distance from p to any point
// of spine, or DistanceUnset when spine is empty.
func SpineDistance(p geom.Point, spine []geom.Point) int {
	if len(spine) == 0 {
		return DistanceUnset
	}
	best := geom.Dist(p, spine[0])
	for _, s := range spine[1:] {
		if d := geom.Dist(p, s); d < best {
			best = d
		}
	}
	return best
}

// ComputeDistances stores, for every cell owned by a member of c, the
// distance to the nearest spine point, and records the maximum in
// c.MaxDistance. Members are processed concurrently by up to workers
// goroutines; their cell sets are disjoint.
//
// A cluster without spine points fails with PRECONDITION_VIOLATION and
// leaves every cell untouched.
func ComputeDistances(c *Cluster, regions []Region, g *Grid, workers int) error {
	if len(c.Spine) == 0 {
		return errors.New(errors.ErrCodePrecondition, "cluster %d has no spine points", c.ID)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	maxima := make([]int, len(c.Members))
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, m := range c.Members {
		eg.Go(func() error {
			for _, idx := range regions[m].Cells {
				cell := &g.Cells[idx]
				cell.Distance = SpineDistance(cell.Pos, c.Spine)
				maxima[i] = max(maxima[i], cell.Distance)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	c.MaxDistance = 0
	for _, m := range maxima {
		c.MaxDistance = max(c.MaxDistance, m)
	}
	return nil
}
