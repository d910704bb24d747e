package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/regiongen/pkg/compose"
	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/observability"
	"github.com/matzehuels/regiongen/pkg/voronoi"
)

// Generate runs every phase for opts and returns the populated generation.
//
// Phases run strictly one after another; only assignment and distance
// measurement fan out internally. The context is checked between phases so
// an abandoned request stops at the next barrier, but a phase is never
// interrupted. Any error aborts the run and no image is produced.
func Generate(ctx context.Context, opts Options) (gen *Generation, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	hooks := observability.Pipeline()

	start := time.Now()
	defer func() {
		var regions, clusters int
		if gen != nil {
			regions, clusters = len(gen.Regions), len(gen.Clusters)
		}
		hooks.OnGenerateComplete(ctx, regions, clusters, time.Since(start), err)
	}()

	gen = &Generation{Width: opts.Width, Height: opts.Height, Seed: opts.Seed}
	rng := voronoi.NewRand(opts.Seed)

	run := func(p Phase, elapsed *time.Duration, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.Progress != nil {
			opts.Progress(p)
		}
		hooks.OnPhaseStart(ctx, p.String())
		t := time.Now()
		err := fn()
		*elapsed = time.Since(t)
		hooks.OnPhaseComplete(ctx, p.String(), *elapsed, err)
		if err != nil {
			return err
		}
		logger.Debug("phase complete", "phase", p, "duration", *elapsed)
		return nil
	}

	err = run(PhaseSeeds, &gen.Stats.SeedTime, func() error {
		regions, err := voronoi.GenerateSeeds(opts.Width, opts.Height, opts.Density, rng)
		if err != nil {
			return err
		}
		gen.Regions = regions
		logger.Debug("created region points", "regions", len(regions))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = run(PhaseAssign, &gen.Stats.AssignTime, func() error {
		g, err := voronoi.NewGrid(opts.Width, opts.Height)
		if err != nil {
			return err
		}
		if err := voronoi.Assign(gen.Regions, g, opts.Workers); err != nil {
			return err
		}
		gen.Grid = g
		for _, r := range gen.Regions {
			logger.Debug("region allocated", "region", r.ID, "centre", r.Centre, "cells", len(r.Cells))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.Clusters {
		if err := clusterPhases(opts, gen, run, rng); err != nil {
			return nil, err
		}
	}

	err = run(PhaseColour, &gen.Stats.ColourTime, func() error {
		img, err := compose.Compose(compose.Input{
			Grid:     gen.Grid,
			Regions:  gen.Regions,
			Clusters: gen.Clusters,
		}, opts.ComposeOptions())
		if err != nil {
			return err
		}
		gen.Image = img
		return nil
	})
	if err != nil {
		return nil, err
	}

	gen.Stats.Cells = len(gen.Grid.Cells)
	gen.Stats.RegionCount = len(gen.Regions)
	gen.Stats.ClusterCount = len(gen.Clusters)
	for _, c := range gen.Clusters {
		gen.Stats.SpinePoints += len(c.Spine)
	}
	return gen, nil
}

type phaseRunner func(p Phase, elapsed *time.Duration, fn func() error) error

func clusterPhases(opts Options, gen *Generation, run phaseRunner, rng *rand.Rand) error {
	logger := opts.Logger

	err := run(PhaseCluster, &gen.Stats.ClusterTime, func() error {
		gen.Clusters = voronoi.BuildClusters(gen.Regions, opts.Band(), rng)
		for _, c := range gen.Clusters {
			logger.Debug("megaregion created", "cluster", c.ID, "members", len(c.Members))
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = run(PhaseSpine, &gen.Stats.SpineTime, func() error {
		voronoi.BuildSpines(gen.Clusters, gen.Regions, opts.SpineOptions())
		for _, c := range gen.Clusters {
			logger.Debug("spine traced", "cluster", c.ID, "segments", len(c.Segments), "points", len(c.Spine))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return run(PhaseDistance, &gen.Stats.DistanceTime, func() error {
		for i := range gen.Clusters {
			c := &gen.Clusters[i]
			err := voronoi.ComputeDistances(c, gen.Regions, gen.Grid, opts.Workers)
			if errors.Is(err, errors.ErrCodePrecondition) {
				// No spine: the cluster keeps unset distances.
				logger.Debug("skipping distances", "cluster", c.ID, "reason", err)
				continue
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
