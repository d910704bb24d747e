package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// dotScale converts grid cells to Graphviz points when pinning node
// positions.
const dotScale = 4

// ToDOT converts the scene's spine graph to Graphviz DOT format. Every region
// becomes a node pinned at its centre (y pointing down, as in the image);
// every traced spine segment becomes an edge coloured like its cluster.
// Regions outside any cluster are drawn dashed and grey.
func ToDOT(s Scene) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Spines {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=10, width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [arrowsize=0.5, penwidth=2];\n")
	buf.WriteString("\n")

	for _, r := range s.Regions {
		pos := fmt.Sprintf("%d,%d!", r.Centre.X*dotScale, -r.Centre.Y*dotScale)
		if r.PartOfCluster {
			fmt.Fprintf(&buf, "  r%d [label=%q, pos=%q, fillcolor=%q];\n",
				r.ID, strconv.Itoa(r.ID), pos, hexColour(r.Colour.R, r.Colour.G, r.Colour.B))
		} else {
			fmt.Fprintf(&buf, "  r%d [label=%q, pos=%q, fillcolor=lightgrey, style=\"filled,dashed\"];\n",
				r.ID, strconv.Itoa(r.ID), pos)
		}
	}

	buf.WriteString("\n")
	for _, c := range s.Clusters {
		colour := hexColour(c.Colour.R, c.Colour.G, c.Colour.B)
		for _, seg := range c.Segments {
			fmt.Fprintf(&buf, "  r%d -> r%d [color=%q];\n",
				s.Regions[seg[0]].ID, s.Regions[seg[1]].ID, colour)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz. Node positions from
// [ToDOT] are honoured by laying out with neato.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
