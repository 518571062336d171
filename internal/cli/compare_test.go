package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/mazegen/pkg/maze"
)

func TestCompareAlgorithms(t *testing.T) {
	var visited []maze.Algorithm
	rows, err := compareAlgorithms(8, 5, 99, func(alg maze.Algorithm, m *maze.Maze) {
		visited = append(visited, alg)
		if m.Algorithm() != alg {
			t.Errorf("visit got maze with %s, want %s", m.Algorithm(), alg)
		}
	})
	if err != nil {
		t.Fatalf("compareAlgorithms() error: %v", err)
	}

	if len(rows) != 3 || len(visited) != 3 {
		t.Fatalf("got %d rows, %d visits, want 3 each", len(rows), len(visited))
	}
	for i, alg := range maze.Algorithms() {
		if rows[i].alg != alg {
			t.Errorf("row %d = %s, want %s", i, rows[i].alg, alg)
		}
		if rows[i].stats.Passages != 8*5-1 {
			t.Errorf("%s: passages = %d, want %d", alg, rows[i].stats.Passages, 8*5-1)
		}
	}
}

func TestCompareAlgorithmsIsReproducible(t *testing.T) {
	collect := func() []string {
		var out []string
		_, err := compareAlgorithms(6, 6, 7, func(_ maze.Algorithm, m *maze.Maze) {
			out = append(out, fmtWalls(m.Walls()))
		})
		if err != nil {
			t.Fatal(err)
		}
		return out
	}
	a, b := collect(), collect()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("run %d differs between identical seeds", i)
		}
	}
}

func TestCompareAlgorithmsInvalidDimensions(t *testing.T) {
	if _, err := compareAlgorithms(0, 3, 1, nil); err == nil {
		t.Error("zero width should fail")
	}
}

func TestStatsTable(t *testing.T) {
	rows, err := compareAlgorithms(4, 4, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := statsTable(rows)
	for _, want := range []string{"Algorithm", "Dead ends", "Depth First Search", "Prim's Algorithm", "Kruskal's Algorithm"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := percent(1, 4); got != "25.0%" {
		t.Errorf("percent(1, 4) = %q", got)
	}
	if got := percent(3, 0); got != "0%" {
		t.Errorf("percent(3, 0) = %q", got)
	}
}

func fmtWalls(walls []bool) string {
	var b strings.Builder
	for _, w := range walls {
		if w {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
