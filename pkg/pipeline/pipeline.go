// Package pipeline runs the region generator end to end.
//
// This package is the single entry point used by the CLI and the HTTP
// server. It turns one [Options] value into a finished generation and,
// through a [Runner], into encoded artifacts with caching.
//
// # Architecture
//
// A run has six phases separated by hard barriers:
//
//  1. Seeds: place the regions
//  2. Assign: give every cell to its nearest region
//  3. Cluster: group nearby regions into mega-regions
//  4. Spine: trace a polyline through each mega-region
//  5. Distance: measure clustered cells against their spine
//  6. Colour: compose the colour buffer
//
// Phases 3–5 run only when clustering is enabled. Each phase is announced
// through [Options.Progress] before it starts.
//
// # Usage
//
// Generate in memory:
//
//	gen, err := pipeline.Generate(ctx, pipeline.Options{Width: 256, Height: 256, Density: 40})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img := gen.Image
//
// Generate and encode with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, opts)
//	png := result.Artifacts["png"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/regiongen/pkg/cache"
	"github.com/matzehuels/regiongen/pkg/compose"
	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/voronoi"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Config Files
// =============================================================================

const (
	// DefaultWidth is the default grid width in cells.
	DefaultWidth = 255

	// DefaultHeight is the default grid height in cells.
	DefaultHeight = 255

	// DefaultDensity is the default number of regions.
	DefaultDensity = 10

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultClusterMin and DefaultClusterMax bound the default cluster band.
	DefaultClusterMin = 10
	DefaultClusterMax = 20

	// DefaultSpineDensity is the default number of points sampled per spine segment.
	DefaultSpineDensity = 20

	// DefaultMarkerRadius is used when markers are requested without a radius.
	DefaultMarkerRadius = 3

	// DefaultScale is the default PNG upscaling factor.
	DefaultScale = 1

	// MaxScale bounds PNG upscaling.
	MaxScale = 16
)

// DefaultMode is the default display mode.
const DefaultMode = compose.ModeRegion

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Generation Configuration
// =============================================================================

// Options contains all configuration for one generation run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Grid and seeds. Seed 0 means "unset" and becomes DefaultSeed, so the
	// zero seed itself is never used.
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Density int    `json:"density"`
	Seed    uint64 `json:"seed,omitempty"`

	// Clustering
	Clusters   bool `json:"clusters,omitempty"`
	ClusterMin int  `json:"cluster_min,omitempty"`
	ClusterMax int  `json:"cluster_max,omitempty"`

	// Spine sampling
	SpineDensity int  `json:"spine_density,omitempty"`
	SolidSpine   bool `json:"solid_spine,omitempty"`

	// Display
	Mode         string `json:"mode,omitempty"`
	SpineLines   bool   `json:"spine_lines,omitempty"`
	Markers      bool   `json:"markers,omitempty"`
	MarkerRadius int    `json:"marker_radius,omitempty"`

	// Output
	Formats []string `json:"formats,omitempty"`
	Scale   int      `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Workers  int          `json:"-" bson:"-"`
	Logger   *log.Logger  `json:"-" bson:"-"`
	Progress ProgressFunc `json:"-" bson:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Generation is the in-memory result of a run.
type Generation struct {
	Width    int
	Height   int
	Seed     uint64
	Regions  []voronoi.Region
	Clusters []voronoi.Cluster
	Grid     *voronoi.Grid
	Image    *image.NRGBA
	Stats    Stats
}

// Result contains the outputs of a runner execution.
type Result struct {
	// Generation is nil when every artifact came from cache.
	Generation *Generation

	// Hash identifies the options that produced the artifacts.
	Hash string

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains generation statistics.
type Stats struct {
	Cells        int           `json:"cells"`
	RegionCount  int           `json:"regions"`
	ClusterCount int           `json:"clusters"`
	SpinePoints  int           `json:"spine_points"`
	SeedTime     time.Duration `json:"seed_time"`
	AssignTime   time.Duration `json:"assign_time"`
	ClusterTime  time.Duration `json:"cluster_time"`
	SpineTime    time.Duration `json:"spine_time"`
	DistanceTime time.Duration `json:"distance_time"`
	ColourTime   time.Duration `json:"colour_time"`
	RenderTime   time.Duration `json:"render_time"`
}

// Total returns the summed phase durations.
func (s Stats) Total() time.Duration {
	return s.SeedTime + s.AssignTime + s.ClusterTime + s.SpineTime + s.DistanceTime + s.ColourTime + s.RenderTime
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode checks that a display mode is valid.
func ValidateMode(mode string) error {
	_, err := compose.ParseMode(mode)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the options.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields. Density is left alone: zero is a
// meaningful request that fails at assignment. A cluster display mode turns
// clustering on.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Mode == "" {
		o.Mode = string(DefaultMode)
	}
	if compose.Mode(o.Mode).UsesClusters() {
		o.Clusters = true
	}
	if o.ClusterMin == 0 && o.ClusterMax == 0 {
		o.ClusterMin = DefaultClusterMin
		o.ClusterMax = DefaultClusterMax
	}
	if o.SpineDensity == 0 {
		o.SpineDensity = DefaultSpineDensity
	}
	if o.Markers && o.MarkerRadius == 0 {
		o.MarkerRadius = DefaultMarkerRadius
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every field without changing any.
func (o *Options) Validate() error {
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Width > voronoi.MaxCells/o.Height {
		return errors.New(errors.ErrCodeResourceExhausted,
			"grid %dx%d exceeds the %d cell limit", o.Width, o.Height, voronoi.MaxCells)
	}
	if err := errors.ValidateDensity(o.Density); err != nil {
		return err
	}
	if o.Density > voronoi.MaxRegions {
		return errors.New(errors.ErrCodeResourceExhausted,
			"density %d exceeds the %d region limit", o.Density, voronoi.MaxRegions)
	}
	if o.Width*o.Height*o.Density > voronoi.MaxAssignWork {
		return errors.New(errors.ErrCodeResourceExhausted,
			"%dx%d grid with %d regions exceeds the assignment budget", o.Width, o.Height, o.Density)
	}
	if o.Clusters {
		if err := errors.ValidateBand(o.ClusterMin, o.ClusterMax); err != nil {
			return err
		}
		if !o.SolidSpine && o.SpineDensity <= 0 {
			return errors.New(errors.ErrCodeInvalidArgument,
				"spine density must be positive, got %d", o.SpineDensity)
		}
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.MarkerRadius < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "marker radius must not be negative, got %d", o.MarkerRadius)
	}
	if o.Scale < 1 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidArgument, "scale must be between 1 and %d, got %d", MaxScale, o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// Band returns the cluster distance band.
func (o *Options) Band() voronoi.Band {
	return voronoi.Band{Min: o.ClusterMin, Max: o.ClusterMax}
}

// SpineOptions returns the spine sampling options.
func (o *Options) SpineOptions() voronoi.SpineOptions {
	return voronoi.SpineOptions{Density: o.SpineDensity, Solid: o.SolidSpine}
}

// ComposeOptions returns the compositor options.
func (o *Options) ComposeOptions() compose.Options {
	return compose.Options{
		Mode:         compose.Mode(o.Mode),
		SpineLines:   o.SpineLines && o.Clusters,
		Markers:      o.Markers,
		MarkerRadius: o.MarkerRadius,
	}
}

// keyOpts holds the fields that determine a run's output. Formats and
// runtime fields are excluded.
type keyOpts struct {
	Width        int    `json:"w"`
	Height       int    `json:"h"`
	Density      int    `json:"n"`
	Seed         uint64 `json:"seed"`
	Clusters     bool   `json:"c"`
	ClusterMin   int    `json:"cmin"`
	ClusterMax   int    `json:"cmax"`
	SpineDensity int    `json:"sd"`
	SolidSpine   bool   `json:"solid"`
	Mode         string `json:"mode"`
	SpineLines   bool   `json:"lines"`
	Markers      bool   `json:"markers"`
	MarkerRadius int    `json:"mr"`
	Scale        int    `json:"scale"`
}

// Hash returns a content hash of the output-determining options. Call it
// after SetDefaults so equivalent requests hash alike.
func (o *Options) Hash() string {
	data, err := json.Marshal(keyOpts{
		Width: o.Width, Height: o.Height, Density: o.Density, Seed: o.Seed,
		Clusters: o.Clusters, ClusterMin: o.ClusterMin, ClusterMax: o.ClusterMax,
		SpineDensity: o.SpineDensity, SolidSpine: o.SolidSpine,
		Mode: o.Mode, SpineLines: o.SpineLines, Markers: o.Markers, MarkerRadius: o.MarkerRadius,
		Scale: o.Scale,
	})
	if err != nil {
		panic(fmt.Sprintf("pipeline: marshal key options: %v", err))
	}
	return cache.Hash(data)
}
