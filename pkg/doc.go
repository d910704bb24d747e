// Package pkg provides the libraries behind regiongen, a Voronoi region map
// generator.
//
// # Overview
//
// A run scatters seed points over a grid, gives every cell to its nearest
// seed and, when clustering is enabled, groups regions into MegaRegions
// whose colour fades with distance from a spine traced through their
// centres.
//
//	[voronoi] seeds → cell assignment
//	    ↓
//	[voronoi] clusters → spines → spine distances
//	    ↓
//	[compose] pixel buffer (regions, clusters, spine lines, markers)
//	    ↓
//	[sink] PNG / JSON / DOT / SVG
//
// [pipeline] runs these phases in order, reports progress, and caches the
// encoded artifacts through [cache]. [history] records runs, [config] reads
// TOML settings and [errors] carries machine-readable error codes.
//
// # Quick Start
//
//	gen, err := pipeline.Generate(ctx, pipeline.Options{
//	    Width: 512, Height: 512, Density: 40,
//	    Clusters: true, Mode: "gradient",
//	})
//	if err != nil {
//	    return err
//	}
//	png, err := sink.RenderPNG(gen.Image, sink.WithScale(2))
package pkg
