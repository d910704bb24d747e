package pipeline

import (
	"fmt"

	"github.com/matzehuels/regiongen/pkg/sink"
)

// Scene returns the metadata view of gen used by the non-image formats.
func (gen *Generation) Scene(mode string) sink.Scene {
	return sink.Scene{
		Width:    gen.Width,
		Height:   gen.Height,
		Seed:     gen.Seed,
		Mode:     mode,
		Regions:  gen.Regions,
		Clusters: gen.Clusters,
	}
}

// Render encodes gen in every format listed in opts.Formats.
func Render(gen *Generation, opts Options) (map[string][]byte, error) {
	if gen == nil || gen.Image == nil {
		return nil, fmt.Errorf("render: no generation")
	}

	scene := gen.Scene(opts.Mode)
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPNG:
			data, err = sink.RenderPNG(gen.Image, sink.WithScale(opts.Scale))
		case FormatJSON:
			data, err = sink.RenderJSON(scene)
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = sink.ToDOT(scene)
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = sink.RenderSVG(dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
