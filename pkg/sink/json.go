package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/regiongen/pkg/geom"
)

type jsonOutput struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Seed     uint64        `json:"seed,omitempty"`
	Mode     string        `json:"mode,omitempty"`
	Regions  []jsonRegion  `json:"regions"`
	Clusters []jsonCluster `json:"clusters,omitempty"`
}

type jsonRegion struct {
	ID      int        `json:"id"`
	Centre  geom.Point `json:"centre"`
	Colour  string     `json:"colour"`
	Cells   int        `json:"cells"`
	Cluster *int       `json:"cluster,omitempty"`
}

type jsonCluster struct {
	ID          int      `json:"id"`
	Colour      string   `json:"colour"`
	Members     []int    `json:"members"`
	Segments    [][2]int `json:"segments,omitempty"`
	SpinePoints int      `json:"spine_points"`
	MaxDistance int      `json:"max_distance"`
}

// RenderJSON exports the scene as a pretty-printed JSON document.
//
// Regions carry their centre, colour, owned cell count and cluster id (absent
// for unclustered regions). Clusters carry member region ids, traced spine
// segments as region id pairs, the spine sample count and the largest
// distance from the spine.
func RenderJSON(s Scene) ([]byte, error) {
	out := jsonOutput{
		Width:   s.Width,
		Height:  s.Height,
		Seed:    s.Seed,
		Mode:    s.Mode,
		Regions: make([]jsonRegion, len(s.Regions)),
	}
	for i, r := range s.Regions {
		jr := jsonRegion{
			ID:     r.ID,
			Centre: r.Centre,
			Colour: hexColour(r.Colour.R, r.Colour.G, r.Colour.B),
			Cells:  len(r.Cells),
		}
		if r.PartOfCluster {
			id := r.Cluster
			jr.Cluster = &id
		}
		out.Regions[i] = jr
	}
	for _, c := range s.Clusters {
		jc := jsonCluster{
			ID:          c.ID,
			Colour:      hexColour(c.Colour.R, c.Colour.G, c.Colour.B),
			Members:     make([]int, len(c.Members)),
			SpinePoints: len(c.Spine),
			MaxDistance: c.MaxDistance,
		}
		for i, m := range c.Members {
			jc.Members[i] = s.Regions[m].ID
		}
		for _, seg := range c.Segments {
			jc.Segments = append(jc.Segments, [2]int{s.Regions[seg[0]].ID, s.Regions[seg[1]].ID})
		}
		out.Clusters = append(out.Clusters, jc)
	}
	return json.MarshalIndent(out, "", "  ")
}

func hexColour(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
