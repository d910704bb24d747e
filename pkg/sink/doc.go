// Package sink encodes finished generations into output formats.
//
// The generator core produces an in-memory colour buffer and the region and
// cluster metadata behind it; this package turns those into bytes:
//
//   - PNG: the colour buffer, optionally upscaled with nearest-neighbour
//     sampling so individual cells stay crisp
//   - JSON: dimensions, regions and clusters for downstream tools
//   - DOT/SVG: the spine graph of each mega-region, rendered with Graphviz
//
// Rendering the buffer:
//
//	png, err := sink.RenderPNG(gen.Image, sink.WithScale(4))
//
// Rendering the spine graph:
//
//	dot := sink.ToDOT(scene)
//	svg, err := sink.RenderSVG(dot)
//
// [FileName] builds the timestamped names used when artifacts are written
// to disk.
package sink
