// Package render groups the maze output formats.
//
// # Overview
//
// Rendering is split by output medium:
//
//   - Text art for terminals (in [text] subpackage)
//   - Passage graphs via Graphviz (in [graph] subpackage)
//
// # Text
//
// The [text] subpackage draws the wall grid with full blocks or plain ASCII:
//
//	fmt.Print(text.Render(m, text.Options{Style: text.Blocks}))
//
// # Passage Graphs
//
// The [graph] subpackage draws the spanning tree itself, one node per cell
// and one edge per passage, and renders it to SVG in process:
//
//	dot := graph.ToDOT(m, graph.Options{})
//	svg, err := graph.RenderSVG(ctx, dot)
//
// [text]: github.com/matzehuels/mazegen/pkg/render/text
// [graph]: github.com/matzehuels/mazegen/pkg/render/graph
package render
