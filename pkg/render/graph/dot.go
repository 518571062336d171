package graph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mazegen/pkg/maze"
)

// Options configures passage graph rendering.
type Options struct {
	// Labels shows "x,y" coordinates inside each node.
	// When false, nodes are small unlabeled points.
	Labels bool

	// Spacing is the distance between neighbouring cells in inches.
	// Zero means 0.5.
	Spacing float64
}

// ToDOT converts a maze to an undirected Graphviz graph of its passages.
// Node positions are pinned so the drawing keeps the shape of the grid.
func ToDOT(m *maze.Maze, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = 0.5
	}

	var buf bytes.Buffer
	buf.WriteString("graph maze {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Labels {
		buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=10, width=0.3, height=0.3, fixedsize=true];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.08];\n")
	}
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	last := [2]int{m.Width() - 1, m.Height() - 1}
	for x := range m.Width() {
		for y := range m.Height() {
			attrs := fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(float64(x)*spacing), fmtFloat(float64(-y)*spacing))
			if opts.Labels {
				attrs += fmt.Sprintf(", label=%q", fmt.Sprintf("%d,%d", x, y))
			}
			if (x == 0 && y == 0) || (x == last[0] && y == last[1]) {
				attrs += ", color=\"#2e7d32\", fillcolor=\"#c8e6c9\""
			}
			fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(x, y), attrs)
		}
	}

	buf.WriteString("\n")
	for _, p := range maze.Passages(m) {
		fmt.Fprintf(&buf, "  %s -- %s;\n", nodeID(p[0].X, p[0].Y), nodeID(p[1].X, p[1].Y))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(x, y int) string {
	return fmt.Sprintf("c%d_%d", x, y)
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

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

// normalizeViewBox replaces Graphviz's point-based svg header with one that
// scales cleanly when embedded.
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

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
