package voronoi

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/geom"
)

// Nearest returns the index of the region closest to p by truncated
// distance. Ties go to the region that appears first in regions.
// regions must be non-empty.
func Nearest(regions []Region, p geom.Point) int {
	best := 0
	bestDist := geom.Dist(p, regions[0].Centre)
	for i := 1; i < len(regions); i++ {
		if d := geom.Dist(p, regions[i].Centre); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Assign gives every cell of g to its nearest region and fills each
// region's Cells list.
//
// The nearest-region search is split into row bands processed by up to
// workers goroutines (workers <= 0 means GOMAXPROCS). Each band writes only
// its own slots of a private owner array; the grouping into Region.Cells is
// a sequential pass afterwards, so no locks are taken and Cells ends up in
// row-major order.
//
// Assign fails with PRECONDITION_VIOLATION when regions is empty. Any
// ownership left by an earlier call is replaced.
func Assign(regions []Region, g *Grid, workers int) error {
	if len(regions) == 0 {
		return errors.New(errors.ErrCodePrecondition, "cannot assign cells: no regions")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	owners := make([]int, len(g.Cells))

	var eg errgroup.Group
	eg.SetLimit(workers)
	for _, b := range rowBands(g.Height, workers) {
		eg.Go(func() error {
			for y := b.start; y < b.end; y++ {
				row := y * g.Width
				for x := 0; x < g.Width; x++ {
					owners[row+x] = Nearest(regions, geom.Pt(x, y))
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	counts := make([]int, len(regions))
	for _, o := range owners {
		counts[o]++
	}
	for i := range regions {
		regions[i].Cells = make([]int, 0, counts[i])
	}
	for idx, o := range owners {
		g.Cells[idx].Owner = o
		regions[o].Cells = append(regions[o].Cells, idx)
	}
	return nil
}

type band struct{ start, end int }

// rowBands splits height rows into at most n contiguous bands of near-equal
// size. Bands never overlap and together cover [0, height).
func rowBands(height, n int) []band {
	n = max(1, min(n, height))
	bands := make([]band, 0, n)
	size, extra := height/n, height%n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < extra {
			end++
		}
		bands = append(bands, band{start: start, end: end})
		start = end
	}
	return bands
}
