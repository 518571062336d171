// Package graph renders a maze as its passage graph using Graphviz.
//
// # Overview
//
// A perfect maze is a spanning tree over the grid. This package draws that
// tree directly: one node per cell, pinned at the cell's grid position, and
// one undirected edge per cleared interior wall. The entrance and exit cells
// are highlighted.
//
// # Usage
//
//	dot := graph.ToDOT(m, graph.Options{})
//	svg, err := graph.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered in process via [RenderSVG]
//   - Saved and laid out with external tools (neato -n2 keeps the pins)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package graph
