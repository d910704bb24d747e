package voronoi

import (
	"math"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/geom"
)

const (
	// MaxCells caps the number of cells a single grid may hold.
	MaxCells = 1 << 26
	// MaxRegions caps the number of seeds in one generation.
	MaxRegions = 1 << 16
	// MaxAssignWork caps cells × regions, the number of distance checks
	// Assign performs.
	MaxAssignWork = 1 << 34
)

// Grid is the width × height array of cells, stored row-major.
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewGrid allocates a grid with every cell unowned and every distance unset.
func NewGrid(width, height int) (*Grid, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if width > math.MaxInt/height || width*height > MaxCells {
		return nil, errors.New(errors.ErrCodeResourceExhausted,
			"grid %dx%d exceeds the %d cell limit", width, height, MaxCells)
	}

	g := &Grid{Width: width, Height: height, Cells: make([]Cell, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Cells[y*width+x] = Cell{Pos: geom.Pt(x, y), Owner: NoRegion, Distance: DistanceUnset}
		}
	}
	return g, nil
}

// Index returns the slice index of (x, y).
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[g.Index(x, y)]
}
