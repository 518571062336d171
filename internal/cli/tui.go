package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render/text"
)

// Play styles
var (
	playWallStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	playStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	playHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	playKeyStyle    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// =============================================================================
// PlayModel - Interactive maze viewer
// =============================================================================

// PlayModel is the bubbletea model behind the play command. It owns one
// maze and regenerates it in place.
type PlayModel struct {
	Maze  *maze.Maze
	Seed  uint64
	Run   int // regenerations since the last reseed
	Style text.Style

	stats   maze.Stats
	newSeed func() uint64
}

// NewPlayModel creates a play model around m, which must already be
// generated from seed.
func NewPlayModel(m *maze.Maze, seed uint64, style text.Style) PlayModel {
	return PlayModel{
		Maze:    m,
		Seed:    seed,
		Style:   style,
		stats:   maze.Analyze(m),
		newSeed: rand.Uint64,
	}
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "d":
		m.switchTo(maze.DepthFirstSearch)
	case "p":
		m.switchTo(maze.Prim)
	case "k":
		m.switchTo(maze.Kruskal)
	case "r":
		m.Maze.Regenerate()
		m.Run++
	case "s":
		m.Seed = m.newSeed()
		m.reseed()
	case "tab":
		algs := maze.Algorithms()
		next := algs[(int(m.Maze.Algorithm())+1)%len(algs)]
		m.switchTo(next)
	default:
		return m, nil
	}
	m.stats = maze.Analyze(m.Maze)
	return m, nil
}

// switchTo regenerates with alg from the current seed, so switching back
// and forth shows the same mazes.
func (m *PlayModel) switchTo(alg maze.Algorithm) {
	m.Maze.SetAlgorithm(alg)
	m.reseed()
}

func (m *PlayModel) reseed() {
	m.Maze.Reseed(m.Seed)
	m.Maze.Regenerate()
	m.Run = 0
}

func (m PlayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Maze.Algorithm().Title()))
	b.WriteString("\n\n")
	b.WriteString(playWallStyle.Render(strings.TrimSuffix(text.Render(m.Maze, text.Options{Style: m.Style}), "\n")))
	b.WriteString("\n\n")

	status := fmt.Sprintf("%dx%d  seed %d", m.Maze.Width(), m.Maze.Height(), m.Seed)
	if m.Run > 0 {
		status += fmt.Sprintf(" +%d", m.Run)
	}
	status += fmt.Sprintf("  ·  %d dead ends  %d junctions", m.stats.DeadEnds, m.stats.Junctions)
	b.WriteString(playStatusStyle.Render(status))
	b.WriteString("\n")

	help := []string{
		playKeyStyle.Render("d") + " dfs",
		playKeyStyle.Render("p") + " prim",
		playKeyStyle.Render("k") + " kruskal",
		playKeyStyle.Render("r") + " regenerate",
		playKeyStyle.Render("s") + " new seed",
		playKeyStyle.Render("q") + " quit",
	}
	b.WriteString(playHelpStyle.Render(strings.Join(help, "  ")))
	b.WriteString("\n")

	return b.String()
}
