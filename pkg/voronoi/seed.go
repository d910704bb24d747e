package voronoi

import (
	"image/color"
	"math/rand/v2"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/geom"
)

// NewRand returns the generator's random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// GenerateSeeds places n regions with centres uniform in [0,w) × [0,h) and
// random opaque colours. Ids run 0..n-1. Coincident centres are kept.
// More than MaxRegions seeds is RESOURCE_EXHAUSTED.
func GenerateSeeds(width, height, n int, rng *rand.Rand) ([]Region, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := errors.ValidateDensity(n); err != nil {
		return nil, err
	}
	if n > MaxRegions {
		return nil, errors.New(errors.ErrCodeResourceExhausted,
			"density %d exceeds the %d region limit", n, MaxRegions)
	}

	regions := make([]Region, n)
	for i := range regions {
		centre := geom.Pt(rng.IntN(width), rng.IntN(height))
		regions[i] = Region{
			ID:      i,
			Centre:  centre,
			Colour:  RandomColour(rng),
			Cluster: NoCluster,
		}
	}
	return regions, nil
}

// RandomColour draws an opaque colour with uniform channels.
func RandomColour(rng *rand.Rand) color.NRGBA {
	return color.NRGBA{
		R: uint8(rng.IntN(256)),
		G: uint8(rng.IntN(256)),
		B: uint8(rng.IntN(256)),
		A: 0xff,
	}
}
