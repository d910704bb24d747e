// Package compose turns a finished generation into a colour buffer.
//
// The buffer is an *image.NRGBA with one pixel per grid cell, channels in
// [0,255]. Compose performs no I/O; encoding and writing belong to
// [github.com/matzehuels/regiongen/pkg/sink].
//
// Layers are painted in a fixed order, later layers overwriting earlier
// ones: region colours, the cluster layer selected by [Mode], spine lines,
// then centre markers.
package compose

import (
	"image"
	"image/color"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/geom"
	"github.com/matzehuels/regiongen/pkg/voronoi"
)

// Mode selects how clustered cells are coloured.
type Mode string

const (
	ModeRegion   Mode = "region"   // owning region colour only
	ModeCluster  Mode = "cluster"  // solid cluster colour
	ModePattern  Mode = "pattern"  // parity mask in cluster colour
	ModeGradient Mode = "gradient" // cluster colour shaded by spine distance
)

// Modes lists the supported display modes.
var Modes = []Mode{ModeRegion, ModeCluster, ModePattern, ModeGradient}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidMode,
		"invalid display mode: %q (must be one of: region, cluster, pattern, gradient)", s)
}

// UsesClusters reports whether the mode reads cluster data.
func (m Mode) UsesClusters() bool {
	return m != ModeRegion
}

var (
	markerColour = color.NRGBA{A: 0xff}
	spineColour  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Options configures composition.
type Options struct {
	Mode         Mode
	SpineLines   bool // draw spine points in white
	Markers      bool // stamp a marker at every region centre
	MarkerRadius int
}

// Input is the generator state read by Compose.
type Input struct {
	Grid     *voronoi.Grid
	Regions  []voronoi.Region
	Clusters []voronoi.Cluster
}

// Compose paints in into a new buffer.
func Compose(in Input, opts Options) (*image.NRGBA, error) {
	if opts.Mode == "" {
		opts.Mode = ModeRegion
	}
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if in.Grid == nil {
		return nil, errors.New(errors.ErrCodePrecondition, "compose: no grid")
	}

	img := image.NewNRGBA(image.Rect(0, 0, in.Grid.Width, in.Grid.Height))

	if err := paintRegions(img, in); err != nil {
		return nil, err
	}

	switch opts.Mode {
	case ModeCluster:
		paintClusters(img, in, solid)
	case ModePattern:
		paintClusters(img, in, pattern)
	case ModeGradient:
		paintClusters(img, in, gradient)
	}

	if opts.SpineLines {
		for _, c := range in.Clusters {
			for _, p := range c.Spine {
				set(img, p, spineColour)
			}
		}
	}

	if opts.Markers {
		for _, r := range in.Regions {
			stampMarker(img, r.Centre, opts.MarkerRadius)
		}
	}

	return img, nil
}

func paintRegions(img *image.NRGBA, in Input) error {
	for _, cell := range in.Grid.Cells {
		if cell.Owner == voronoi.NoRegion {
			return errors.New(errors.ErrCodePrecondition, "compose: cell %v has no owner", cell.Pos)
		}
		if cell.Owner >= len(in.Regions) {
			return errors.New(errors.ErrCodeInternal,
				"compose: cell %v owned by region %d of %d", cell.Pos, cell.Owner, len(in.Regions))
		}
		img.SetNRGBA(cell.Pos.X, cell.Pos.Y, in.Regions[cell.Owner].Colour)
	}
	return nil
}

// shader decides the colour of one clustered cell. ok=false leaves the
// pixel as painted by earlier layers.
type shader func(c *voronoi.Cluster, cell voronoi.Cell) (colour color.NRGBA, ok bool)

func paintClusters(img *image.NRGBA, in Input, shade shader) {
	for ci := range in.Clusters {
		c := &in.Clusters[ci]
		for _, m := range c.Members {
			for _, idx := range in.Regions[m].Cells {
				cell := in.Grid.Cells[idx]
				if col, ok := shade(c, cell); ok {
					img.SetNRGBA(cell.Pos.X, cell.Pos.Y, col)
				}
			}
		}
	}
}

func solid(c *voronoi.Cluster, _ voronoi.Cell) (color.NRGBA, bool) {
	return c.Colour, true
}

func pattern(c *voronoi.Cluster, cell voronoi.Cell) (color.NRGBA, bool) {
	x, y := cell.Pos.X, cell.Pos.Y
	if c.ID%2 == 0 {
		return c.Colour, x%2 == 0 && y%2 != 0
	}
	return c.Colour, y%2 == 0
}

// BandFactors are the brightness multipliers of the five gradient bands,
// nearest the spine first.
var BandFactors = [5]float64{0.2, 0.3, 0.4, 0.5, 0.6}

// Band returns the gradient band of distance d in a cluster whose largest
// distance is maxDistance.
func Band(d, maxDistance int) int {
	width := maxDistance / len(BandFactors)
	if width == 0 || d < 0 {
		return 0
	}
	return min(d/width, len(BandFactors)-1)
}

func gradient(c *voronoi.Cluster, cell voronoi.Cell) (color.NRGBA, bool) {
	if cell.Distance == voronoi.DistanceUnset {
		return color.NRGBA{}, false
	}
	return Shade(c.Colour, BandFactors[Band(cell.Distance, c.MaxDistance)]), true
}

// Shade multiplies the colour channels by f, leaving alpha untouched.
func Shade(c color.NRGBA, f float64) color.NRGBA {
	scale := func(v uint8) uint8 {
		return uint8(max(0, min(255, float64(v)*f)))
	}
	return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// markerOffsets are the eight marker arms as unit steps.
var markerOffsets = [8]geom.Point{
	{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: 1},
	{X: -1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: -1}, {X: 1, Y: -1},
}

// stampMarker draws a cross and diagonals of the given radius at centre.
func stampMarker(img *image.NRGBA, centre geom.Point, radius int) {
	for i := 0; i < radius; i++ {
		for _, o := range markerOffsets {
			set(img, centre.Add(geom.Pt(o.X*i, o.Y*i)), markerColour)
		}
	}
}

func set(img *image.NRGBA, p geom.Point, c color.NRGBA) {
	if p.In(img.Rect.Dx(), img.Rect.Dy()) {
		img.SetNRGBA(p.X, p.Y, c)
	}
}

func (m Mode) String() string {
	return string(m)
}
