package maze

import "fmt"

// Side names one of the four edges of a cell.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

// sides lists the sides in the order generators inspect neighbours.
var sides = [...]Side{Left, Right, Top, Bottom}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// delta returns the coordinate offset of the neighbour across side s.
func (s Side) delta() (dx, dy int) {
	switch s {
	case Top:
		return 0, -1
	case Bottom:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// Cell is a grid position and the IDs of its four walls.
//
// After topology construction every side holds a valid [WallID]. A cell's Top
// equals the Bottom of the cell above it, and its Left equals the Right of
// the cell to its left.
type Cell struct {
	X, Y int

	Top    WallID
	Bottom WallID
	Left   WallID
	Right  WallID
}

func newCell(x, y int) Cell {
	return Cell{X: x, Y: y, Top: noWall, Bottom: noWall, Left: noWall, Right: noWall}
}

// Wall returns the wall ID on side s.
// It panics if the side was never wired, which indicates a broken topology.
func (c Cell) Wall(s Side) WallID {
	var id WallID
	switch s {
	case Top:
		id = c.Top
	case Bottom:
		id = c.Bottom
	case Left:
		id = c.Left
	case Right:
		id = c.Right
	default:
		panic(fmt.Sprintf("maze: invalid side %d", int(s)))
	}
	if id == noWall {
		panic(fmt.Sprintf("maze: cell (%d,%d) has no %s wall; topology not constructed", c.X, c.Y, s))
	}
	return id
}

// CellWalls is the active state of a cell's four walls.
type CellWalls struct {
	Top, Bottom, Left, Right bool
}

// Open returns the number of inactive walls.
func (w CellWalls) Open() int {
	n := 0
	for _, active := range [...]bool{w.Top, w.Bottom, w.Left, w.Right} {
		if !active {
			n++
		}
	}
	return n
}
