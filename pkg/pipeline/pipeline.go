// Package pipeline provides the generate → render pipeline shared by the CLI
// and the HTTP server.
//
// By centralizing this logic, every entry point validates options the same
// way, caches mazes under the same keys, and produces identical artifacts.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Generate: Build the grid and carve a perfect maze with the chosen
//     algorithm, or restore it from the cache
//  2. Render: Produce each requested format (text, json, dot, svg)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Width:     20,
//	    Height:    10,
//	    Algorithm: "kruskal",
//	    Formats:   []string{"text", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["text"]))
package pipeline

import (
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mazegen/pkg/cache"
	"github.com/matzehuels/mazegen/pkg/errors"
	mazeio "github.com/matzehuels/mazegen/pkg/io"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render/text"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default number of columns.
	DefaultWidth = 20

	// DefaultHeight is the default number of rows.
	DefaultHeight = 10

	// DefaultAlgorithm is the default generator.
	DefaultAlgorithm = "dfs"

	// DefaultStyle is the default text style.
	DefaultStyle = string(text.Blocks)
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatDOT, FormatSVG}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Algorithm string `json:"algorithm,omitempty"`

	// Seed makes generation reproducible. Zero picks a random seed, which
	// is reported back in Result.Seed.
	Seed uint64 `json:"seed,omitempty"`

	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`

	// Refresh skips cache lookups but still writes results.
	Refresh bool `json:"refresh,omitempty"`

	// MaxDimension caps width and height; zero means no cap.
	MaxDimension int `json:"-"`

	Logger *log.Logger `json:"-"`

	algorithm maze.Algorithm
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Maze is the generated or restored maze.
	Maze *maze.Maze

	// Snapshot is the restorable form of Maze.
	Snapshot *mazeio.Snapshot

	// MazeHash is the content hash of the wall layout.
	MazeHash string

	// Seed is the seed the maze was generated with.
	Seed uint64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains the maze texture and stage timings.
type Stats struct {
	maze.Stats
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	MazeHit   bool // Whether the maze came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once, so a random seed is chosen only once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errors.ValidateDimensions(o.Width, o.Height, o.MaxDimension); err != nil {
		return err
	}

	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	alg, err := maze.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return errors.FromMaze(err)
	}
	o.algorithm = alg
	o.Algorithm = alg.String()

	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	var formats []string
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, Formats()); err != nil {
			return err
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats

	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if err := errors.ValidateStyle(o.Style, text.Styles()); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ParsedAlgorithm returns the algorithm resolved by ValidateAndSetDefaults.
func (o *Options) ParsedAlgorithm() maze.Algorithm {
	return o.algorithm
}

// MazeKeyOpts returns cache key options for the maze snapshot.
func (o *Options) MazeKeyOpts() cache.MazeKeyOpts {
	return cache.MazeKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		Algorithm: o.Algorithm,
		Seed:      o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Only the text format depends on the style.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatText {
		opts.Style = o.Style
	}
	return opts
}
