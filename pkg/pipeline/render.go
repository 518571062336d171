package pipeline

import (
	"bytes"
	"context"
	"fmt"

	mazeio "github.com/matzehuels/mazegen/pkg/io"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render/graph"
	"github.com/matzehuels/mazegen/pkg/render/text"
)

// Generate builds a maze from opts. Unvalidated options are validated on a
// copy, so a random seed chosen here is not visible to the caller.
func Generate(opts Options) (*maze.Maze, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return maze.New(opts.Width, opts.Height, opts.ParsedAlgorithm(), maze.WithSeed(opts.Seed))
}

// Render generates output artifacts in the requested formats.
// snap is only used for the json format and may be nil otherwise.
func Render(ctx context.Context, m *maze.Maze, snap *mazeio.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = []byte(text.Render(m, text.Options{Style: text.Style(opts.Style)}))
		case FormatJSON:
			if snap == nil {
				snap = mazeio.NewSnapshot(m, opts.Seed)
			}
			var buf bytes.Buffer
			err = mazeio.WriteJSON(snap, &buf)
			data = buf.Bytes()
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = graph.ToDOT(m, graph.Options{})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = graph.RenderSVG(ctx, dot)
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
