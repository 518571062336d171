package cli

import (
	"fmt"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	mzerrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render/text"
)

type playOpts struct {
	width     int
	height    int
	algorithm string
	seed      uint64
	style     string
}

// playCommand creates the interactive play command.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Explore mazes interactively in the terminal",
		Long: `Open a terminal view of one maze. Press d, p or k to regenerate it with
depth-first search, Prim's or Kruskal's algorithm, r to regenerate with the
current algorithm, s to pick a new seed and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := c.newPlayModel(&opts)
			if err != nil {
				return err
			}
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("play: %w", err)
			}
			if fm, ok := final.(PlayModel); ok {
				printInfo("Last maze: %s, seed %d", fm.Maze.Algorithm(), fm.Seed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "W", 0, "number of columns (default from config)")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 0, "number of rows (default from config)")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "initial generator: dfs, prim, kruskal")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "initial seed (0 picks one)")
	cmd.Flags().StringVar(&opts.style, "style", "", "text style: blocks, ascii")

	return cmd
}

// newPlayModel generates the initial maze from flags and config.
func (c *CLI) newPlayModel(opts *playOpts) (PlayModel, error) {
	cfg := c.Config.Maze
	width, height, algName, seed := cfg.Width, cfg.Height, cfg.Algorithm, cfg.Seed
	if opts.width != 0 {
		width = opts.width
	}
	if opts.height != 0 {
		height = opts.height
	}
	if opts.algorithm != "" {
		algName = opts.algorithm
	}
	if opts.seed != 0 {
		seed = opts.seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	styleName := c.Config.Render.Style
	if opts.style != "" {
		styleName = opts.style
	}

	if err := mzerrors.ValidateDimensions(width, height, c.Config.Server.MaxDimension); err != nil {
		return PlayModel{}, err
	}
	alg, err := maze.ParseAlgorithm(algName)
	if err != nil {
		return PlayModel{}, mzerrors.FromMaze(err)
	}
	style, err := text.ParseStyle(styleName)
	if err != nil {
		return PlayModel{}, mzerrors.Wrap(mzerrors.ErrCodeInvalidStyle, err, "invalid style %q", styleName)
	}

	m, err := maze.New(width, height, alg, maze.WithSeed(seed))
	if err != nil {
		return PlayModel{}, mzerrors.FromMaze(err)
	}
	return NewPlayModel(m, seed, style), nil
}
