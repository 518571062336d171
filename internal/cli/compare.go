package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	mzerrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render/text"
)

type compareOpts struct {
	width  int
	height int
	seed   uint64
	style  string
	quiet  bool // table only
}

// compareRow is one algorithm's result.
type compareRow struct {
	alg      maze.Algorithm
	stats    maze.Stats
	duration time.Duration
}

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var opts compareOpts

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Carve one grid with every algorithm and compare the results",
		Long: `Build a single grid, then regenerate it with depth-first search, Prim's
and Kruskal's algorithm in turn. Each maze is printed, followed by a table of
dead ends, corridors and junctions that shows the texture of each algorithm.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(cmd.OutOrStdout(), &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "W", 0, "number of columns (default from config)")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 0, "number of rows (default from config)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed shared by every algorithm (0 picks one)")
	cmd.Flags().StringVar(&opts.style, "style", "", "text style: blocks, ascii")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the statistics table")

	return cmd
}

func (c *CLI) runCompare(w io.Writer, opts *compareOpts) error {
	width, height := c.Config.Maze.Width, c.Config.Maze.Height
	if opts.width != 0 {
		width = opts.width
	}
	if opts.height != 0 {
		height = opts.height
	}
	if err := mzerrors.ValidateDimensions(width, height, 0); err != nil {
		return err
	}
	styleName := c.Config.Render.Style
	if opts.style != "" {
		styleName = opts.style
	}
	style, err := text.ParseStyle(styleName)
	if err != nil {
		return mzerrors.Wrap(mzerrors.ErrCodeInvalidStyle, err, "invalid style %q", styleName)
	}
	seed := opts.seed
	if seed == 0 {
		seed = c.Config.Maze.Seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}

	rows, err := compareAlgorithms(width, height, seed, func(alg maze.Algorithm, m *maze.Maze) {
		if opts.quiet {
			return
		}
		fmt.Fprintln(w, StyleTitle.Render(alg.Title()))
		text.Write(w, m, text.Options{Style: style})
		fmt.Fprintln(w)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%dx%d grid, seed %d", width, height, seed)))
	fmt.Fprintln(w, statsTable(rows))
	return nil
}

// compareAlgorithms builds one topology and regenerates it with every
// algorithm, reseeding before each so that all runs share the seed. visit is
// called with each freshly generated maze.
func compareAlgorithms(width, height int, seed uint64, visit func(maze.Algorithm, *maze.Maze)) ([]compareRow, error) {
	m, err := maze.Build(width, height)
	if err != nil {
		return nil, mzerrors.FromMaze(err)
	}

	var rows []compareRow
	for _, alg := range maze.Algorithms() {
		m.Reseed(seed)
		m.SetAlgorithm(alg)
		start := time.Now()
		m.Regenerate()
		elapsed := time.Since(start)

		if err := maze.Verify(m); err != nil {
			return nil, fmt.Errorf("%s: %w", alg, err)
		}
		if visit != nil {
			visit(alg, m)
		}
		rows = append(rows, compareRow{alg: alg, stats: maze.Analyze(m), duration: elapsed})
	}
	return rows, nil
}

// statsTable renders the comparison as a bordered table.
func statsTable(rows []compareRow) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numStyle := cellStyle.Foreground(colorCyan).Align(lipgloss.Right)

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		s := r.stats
		data = append(data, []string{
			r.alg.Title(),
			strconv.Itoa(s.Passages),
			strconv.Itoa(s.DeadEnds),
			strconv.Itoa(s.Corridors),
			strconv.Itoa(s.Junctions),
			percent(s.DeadEnds, s.Cells),
			r.duration.Round(time.Microsecond).String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Algorithm", "Passages", "Dead ends", "Corridors", "Junctions", "Dead %", "Time").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numStyle
			}
		})
	return t.Render()
}

func percent(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
