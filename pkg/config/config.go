// Package config reads regiongen TOML configuration files.
//
// A configuration file describes one generation plus the backends used by
// the CLI and the server. Every key is optional; unset keys keep the
// pipeline defaults.
//
//	width = 512
//	height = 512
//	density = 40
//	seed = 7
//
//	[cluster]
//	enabled = true
//	min = 10
//	max = 20
//
//	[spine]
//	density = 20
//	solid = false
//
//	[display]
//	mode = "gradient"
//	spine_lines = true
//	markers = true
//	marker_radius = 3
//
//	[output]
//	formats = ["png", "json"]
//	scale = 2
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[history]
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/pipeline"
)

// File is the decoded form of a configuration file.
type File struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Density *int   `toml:"density"`
	Seed    uint64 `toml:"seed"`
	Workers int    `toml:"workers"`

	Cluster Cluster `toml:"cluster"`
	Spine   Spine   `toml:"spine"`
	Display Display `toml:"display"`
	Output  Output  `toml:"output"`
	Cache   Cache   `toml:"cache"`
	History History `toml:"history"`
	Server  Server  `toml:"server"`
}

// Cluster configures mega-region grouping.
type Cluster struct {
	Enabled bool `toml:"enabled"`
	Min     int  `toml:"min"`
	Max     int  `toml:"max"`
}

// Spine configures spine sampling.
type Spine struct {
	Density int  `toml:"density"`
	Solid   bool `toml:"solid"`
}

// Display configures the compositor.
type Display struct {
	Mode         string `toml:"mode"`
	SpineLines   bool   `toml:"spine_lines"`
	Markers      bool   `toml:"markers"`
	MarkerRadius int    `toml:"marker_radius"`
}

// Output configures artifact encoding.
type Output struct {
	Formats []string `toml:"formats"`
	Scale   int      `toml:"scale"`
	Dir     string   `toml:"dir"`
	Prefix  string   `toml:"prefix"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// History selects the run history backend.
type History struct {
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open config %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a configuration from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// Options maps the generation settings onto pipeline options. Unset
// values stay zero so that SetDefaults fills them; a missing density uses
// pipeline.DefaultDensity.
func (f *File) Options() pipeline.Options {
	density := pipeline.DefaultDensity
	if f.Density != nil {
		density = *f.Density
	}
	return pipeline.Options{
		Width:        f.Width,
		Height:       f.Height,
		Density:      density,
		Seed:         f.Seed,
		Workers:      f.Workers,
		Clusters:     f.Cluster.Enabled,
		ClusterMin:   f.Cluster.Min,
		ClusterMax:   f.Cluster.Max,
		SpineDensity: f.Spine.Density,
		SolidSpine:   f.Spine.Solid,
		Mode:         f.Display.Mode,
		SpineLines:   f.Display.SpineLines,
		Markers:      f.Display.Markers,
		MarkerRadius: f.Display.MarkerRadius,
		Formats:      f.Output.Formats,
		Scale:        f.Output.Scale,
	}
}
