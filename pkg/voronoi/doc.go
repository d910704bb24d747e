// Package voronoi implements the region generator: seed placement, discrete
// Voronoi assignment, greedy clustering of nearby regions into mega-regions,
// spine tracing through each mega-region, and the per-cell distance field
// used for gradient shading.
//
// # Phases
//
// The phases run strictly in order; each one consumes the complete output of
// the previous one:
//
//  1. [GenerateSeeds] places N regions uniformly in the grid.
//  2. [Assign] gives every [Cell] of a [Grid] to its nearest region.
//  3. [BuildClusters] groups regions whose centres fall in a distance band.
//  4. [BuildSpines] chains each cluster's members into a sampled polyline.
//  5. [ComputeDistances] measures every clustered cell against its spine.
//
// # Ownership
//
// Regions, cells and clusters reference each other by index, never by
// pointer. A [Cell] stores the index of its owning region, a [Region] stores
// indices into [Grid.Cells] and the index of its cluster, and a [Cluster]
// stores region indices. The region slice and the grid are owned by a single
// run; concurrent runs must each allocate their own.
//
// # Determinism
//
// Given the same seed, dimensions and parameters, every phase produces the
// same result. Assignment runs in parallel but writes each cell exactly once
// and groups ownership in a sequential pass, so the order of
// [Region.Cells] is row-major regardless of scheduling.
//
// # Greedy behaviour
//
// Clustering is a single star-shaped pass and spines are greedy
// nearest-unlinked chains, not a transitive closure or a minimum spanning
// tree. Both are order dependent and may leave a spine disconnected. This is
// the defined behaviour; a true clustering or MST variant would be a
// separate implementation rather than a change to these functions.
package voronoi
