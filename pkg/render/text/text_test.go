package text

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/mazegen/pkg/maze"
)

// grid is a Walls implementation with every wall active.
type grid struct{ w, h int }

func (g grid) Width() int                          { return g.w }
func (g grid) Height() int                         { return g.h }
func (g grid) TopActive(x, y int) (bool, error)    { return true, nil }
func (g grid) BottomActive(x, y int) (bool, error) { return true, nil }
func (g grid) LeftActive(x, y int) (bool, error)   { return true, nil }
func (g grid) RightActive(x, y int) (bool, error)  { return true, nil }

func TestRenderClosedGrid(t *testing.T) {
	got := Render(grid{2, 1}, Options{Style: ASCII})
	want := "+---+---+\n|   |   |\n+---+---+\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderASCII(t *testing.T) {
	active := []bool{true, false, false, true, true, true, false, false, true, true, true, false}
	m, err := maze.FromWalls(2, 2, maze.DepthFirstSearch, active)
	if err != nil {
		t.Fatalf("FromWalls: %v", err)
	}

	want := strings.Join([]string{
		"+---+---+",
		"    |   |",
		"+   +   +",
		"|        ",
		"+---+---+",
		"",
	}, "\n")
	if got := Render(m, Options{Style: ASCII}); got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderDimensions(t *testing.T) {
	tests := []struct {
		name          string
		style         Style
		width, height int
		lineRunes     int
	}{
		{"blocks 1x1", Blocks, 1, 1, 6},
		{"blocks 5x3", Blocks, 5, 3, 4*5 + 2},
		{"ascii 1x1", ASCII, 1, 1, 5},
		{"ascii 4x7", ASCII, 4, 7, 4*4 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := maze.New(tt.width, tt.height, maze.Kruskal, maze.WithSeed(7))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			out := Render(m, Options{Style: tt.style})
			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			if len(lines) != 2*tt.height+1 {
				t.Fatalf("got %d lines, want %d", len(lines), 2*tt.height+1)
			}
			for i, line := range lines {
				if n := len([]rune(line)); n != tt.lineRunes {
					t.Errorf("line %d has %d runes, want %d: %q", i, n, tt.lineRunes, line)
				}
			}
		})
	}
}

func TestRenderExitsOpen(t *testing.T) {
	m, err := maze.New(6, 4, maze.Prim, maze.WithSeed(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	lines := strings.Split(Render(m, Options{}), "\n")

	// Entrance: first glyph of the first cell row.
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("entrance not open: %q", lines[1])
	}
	// Exit: last glyph of the last cell row.
	if !strings.HasSuffix(lines[2*m.Height()-1], "  ") {
		t.Errorf("exit not open: %q", lines[2*m.Height()-1])
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(grid{0, 3}, Options{}); got != "maze is empty\n" {
		t.Errorf("Render(empty) = %q", got)
	}
}

func TestCustomGlyphs(t *testing.T) {
	got := Render(grid{1, 1}, Options{Wall: "#", Open: "."})
	want := "###\n#.#\n###\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, grid{1, 1}, Options{Style: ASCII}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "+---+\n|   |\n+---+\n" {
		t.Errorf("Write() = %q", buf.String())
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"blocks", Blocks, false},
		{" Blocks ", Blocks, false},
		{"ascii", ASCII, false},
		{"", Blocks, false},
		{"unicode", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStyle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
