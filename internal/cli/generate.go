package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	width     int
	height    int
	algorithm string
	seed      uint64
	formats   string
	style     string
	output    string // file, or base path when several formats are requested
	noCache   bool
	archive   bool // save the maze to the configured archive
	stats     bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a maze",
		Long: `Generate a perfect maze and print it, or write it to files.

Without --output the first format is written to stdout. With several formats
and --output, one file per format is written, named <output>.<format>.`,
		Example: `  mazegen generate -W 30 -H 12 -a kruskal
  mazegen generate --seed 42 --style ascii
  mazegen generate -f svg,json -o maze`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "W", 0, "number of columns (default from config)")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 0, "number of rows (default from config)")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "generator: dfs, prim, kruskal")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): text, json, dot, svg (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "text style: blocks, ascii")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "save the maze to the archive")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print maze statistics to stderr")

	cmd.RegisterFlagCompletionFunc("algorithm", cobra.FixedCompletions([]string{"dfs", "prim", "kruskal"}, cobra.ShellCompDirectiveNoFileComp))
	cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions([]string{"blocks", "ascii"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// pipelineOptions merges flags over the loaded configuration.
func (c *CLI) pipelineOptions(opts *generateOpts) pipeline.Options {
	cfg := c.Config
	p := pipeline.Options{
		Width:     cfg.Maze.Width,
		Height:    cfg.Maze.Height,
		Algorithm: cfg.Maze.Algorithm,
		Seed:      cfg.Maze.Seed,
		Formats:   cfg.Render.Formats,
		Style:     cfg.Render.Style,
		Logger:    c.Logger,
	}
	if opts.width != 0 {
		p.Width = opts.width
	}
	if opts.height != 0 {
		p.Height = opts.height
	}
	if opts.algorithm != "" {
		p.Algorithm = opts.algorithm
	}
	if opts.seed != 0 {
		p.Seed = opts.seed
	}
	if opts.formats != "" {
		p.Formats = parseFormats(opts.formats)
	}
	if opts.style != "" {
		p.Style = opts.style
	}
	return p
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts := c.pipelineOptions(opts)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %dx%d maze with %s", popts.Width, popts.Height, res.Maze.Algorithm().Title()))

	if opts.stats {
		printMazeStats(cmd.ErrOrStderr(), res)
	}
	if opts.archive {
		if err := c.archive(ctx, res); err != nil {
			return err
		}
	}
	return writeArtifacts(ctx, cmd.OutOrStdout(), opts.output, popts.Formats, res.Artifacts)
}

// archive saves the generated maze to the configured store.
func (c *CLI) archive(ctx context.Context, res *pipeline.Result) error {
	s, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Save(ctx, res.Snapshot); err != nil {
		return fmt.Errorf("archive maze: %w", err)
	}
	loggerFromContext(ctx).Info("Archived maze", "id", res.Snapshot.ID)
	return nil
}

// writeArtifacts writes a single artifact to output (stdout when empty), or
// every artifact to base.<format> files.
func writeArtifacts(ctx context.Context, stdout io.Writer, output string, formats []string, artifacts map[string][]byte) error {
	logger := loggerFromContext(ctx)

	if output == "" {
		_, err := stdout.Write(artifacts[formats[0]])
		if len(formats) > 1 {
			logger.Warn("Only the first format is printed without --output", "printed", formats[0])
		}
		return err
	}

	if len(formats) == 1 {
		path := output
		if filepath.Ext(path) == "" {
			path += "." + extension(formats[0])
		}
		return writeFile(ctx, path, artifacts[formats[0]])
	}

	base := basePath(output)
	for _, f := range formats {
		if err := writeFile(ctx, base+"."+extension(f), artifacts[f]); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(ctx context.Context, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	loggerFromContext(ctx).Infof("Wrote %s", path)
	return nil
}

// basePath strips a known format extension from output so that several
// formats can be written side by side.
func basePath(output string) string {
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if ext == "txt" || slices.Contains(pipeline.Formats(), ext) {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// extension maps a format to its file extension.
func extension(format string) string {
	if format == pipeline.FormatText {
		return "txt"
	}
	return format
}
