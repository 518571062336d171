package text

import (
	"fmt"
	"io"
	"strings"
)

// Walls is the read-only view of a maze that renderers need.
type Walls interface {
	Width() int
	Height() int
	TopActive(x, y int) (bool, error)
	BottomActive(x, y int) (bool, error)
	LeftActive(x, y int) (bool, error)
	RightActive(x, y int) (bool, error)
}

// Style selects a glyph set.
type Style string

const (
	Blocks Style = "blocks"
	ASCII  Style = "ascii"
)

// Styles returns the names of all supported styles.
func Styles() []string {
	return []string{string(Blocks), string(ASCII)}
}

// ParseStyle converts a style name to a Style.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case Blocks, ASCII:
		return st, nil
	case "":
		return Blocks, nil
	}
	return "", fmt.Errorf("unknown style %q (must be one of: %s)", s, strings.Join(Styles(), ", "))
}

// Options configures rendering.
type Options struct {
	Style Style

	// Wall and Open override the Blocks glyphs. Both should have the same
	// display width or the grid will not line up.
	Wall string
	Open string
}

type glyphs struct {
	corner string
	hWall  string // horizontal wall segment
	hOpen  string
	vWall  string // vertical wall segment
	vOpen  string
	body   string // cell interior
}

func (o Options) glyphs() glyphs {
	if o.Style == ASCII {
		return glyphs{corner: "+", hWall: "---", hOpen: "   ", vWall: "|", vOpen: " ", body: "   "}
	}
	wall, open := "██", "  "
	if o.Wall != "" {
		wall = o.Wall
	}
	if o.Open != "" {
		open = o.Open
	}
	return glyphs{corner: wall, hWall: wall, hOpen: open, vWall: wall, vOpen: open, body: open}
}

// Render draws m in the configured style. Every row ends with a newline.
func Render(m Walls, opts Options) string {
	var sb strings.Builder
	render(&sb, m, opts.glyphs())
	return sb.String()
}

// Write renders m to w.
func Write(w io.Writer, m Walls, opts Options) error {
	_, err := io.WriteString(w, Render(m, opts))
	return err
}

func render(sb *strings.Builder, m Walls, g glyphs) {
	width, height := m.Width(), m.Height()
	if width <= 0 || height <= 0 {
		sb.WriteString("maze is empty\n")
		return
	}

	for y := range height {
		for x := range width {
			sb.WriteString(g.corner)
			sb.WriteString(pick(active(m.TopActive(x, y)), g.hWall, g.hOpen))
		}
		sb.WriteString(g.corner)
		sb.WriteByte('\n')

		for x := range width {
			sb.WriteString(pick(active(m.LeftActive(x, y)), g.vWall, g.vOpen))
			sb.WriteString(g.body)
		}
		sb.WriteString(pick(active(m.RightActive(width-1, y)), g.vWall, g.vOpen))
		sb.WriteByte('\n')
	}

	for x := range width {
		sb.WriteString(g.corner)
		sb.WriteString(pick(active(m.BottomActive(x, height-1)), g.hWall, g.hOpen))
	}
	sb.WriteString(g.corner)
	sb.WriteByte('\n')
}

// active unwraps a wall query. Renderers only ask for in-range cells, so an
// error means the Walls implementation is broken.
func active(ok bool, err error) bool {
	if err != nil {
		panic(fmt.Sprintf("text: wall query failed: %v", err))
	}
	return ok
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
