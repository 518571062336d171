package maze

// WallID addresses a wall in the maze's wall arena. IDs are stable for the
// lifetime of a [Maze] and range over [0, Maze.WallCount()).
type WallID int

// noWall marks a cell side that has not been wired yet.
const noWall WallID = -1

// noCell marks the missing side of a boundary wall in the incidence table.
const noCell = -1

// Wall is a single edge between at most two cells.
// Active walls are impassable; generators clear them to carve passages.
type Wall struct {
	Active bool
}

// incidence holds the one or two cell indices a wall separates.
// For boundary walls the second entry is noCell.
type incidence [2]int

func (in incidence) boundary() bool { return in[1] == noCell }

// other returns the cell on the far side of the wall from cell, or noCell.
func (in incidence) other(cell int) int {
	switch cell {
	case in[0]:
		return in[1]
	case in[1]:
		return in[0]
	}
	return noCell
}
