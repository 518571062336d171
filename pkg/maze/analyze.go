package maze

import "fmt"

// Stats summarises the texture of a generated maze.
type Stats struct {
	Cells     int // width*height
	Passages  int // cleared interior walls
	Exits     int // cleared boundary walls
	DeadEnds  int // cells with exactly one opening
	Corridors int // cells with exactly two openings
	Junctions int // cells with three or more openings
}

// Analyze counts passages and classifies cells by their number of openings.
// Openings include cleared boundary walls, so the entrance and exit cells
// count their exit.
func Analyze(m *Maze) Stats {
	m.mustBeBuilt()
	s := Stats{Cells: len(m.cells)}
	for id, w := range m.walls {
		if w.Active {
			continue
		}
		if m.incident[id].boundary() {
			s.Exits++
		} else {
			s.Passages++
		}
	}
	for _, c := range m.cells {
		open := 0
		for _, side := range sides {
			if !m.walls[c.Wall(side)].Active {
				open++
			}
		}
		switch {
		case open == 1:
			s.DeadEnds++
		case open == 2:
			s.Corridors++
		case open >= 3:
			s.Junctions++
		}
	}
	return s
}

// Verify checks that the cleared interior walls form a spanning tree over all
// cells and that the entrance and exit are open. The returned error wraps
// [ErrNotPerfect].
func Verify(m *Maze) error {
	m.mustBeBuilt()
	n := len(m.cells)

	adj := make([][]int, n)
	edges := 0
	for id, w := range m.walls {
		in := m.incident[id]
		if w.Active || in.boundary() {
			continue
		}
		adj[in[0]] = append(adj[in[0]], in[1])
		adj[in[1]] = append(adj[in[1]], in[0])
		edges++
	}
	if edges != n-1 {
		return fmt.Errorf("%w: %d passages for %d cells", ErrNotPerfect, edges, n)
	}

	// Traverse from cell 0 remembering the parent edge; reaching a visited
	// cell any other way means a cycle.
	visited := make([]bool, n)
	type frame struct{ cell, parent int }
	stack := []frame{{0, noCell}}
	visited[0] = true
	seen := 1
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		skippedParent := false
		for _, next := range adj[f.cell] {
			if next == f.parent && !skippedParent {
				skippedParent = true
				continue
			}
			if visited[next] {
				return fmt.Errorf("%w: cycle through cell %d", ErrNotPerfect, next)
			}
			visited[next] = true
			seen++
			stack = append(stack, frame{next, f.cell})
		}
	}
	if seen != n {
		return fmt.Errorf("%w: %d of %d cells reachable", ErrNotPerfect, seen, n)
	}

	entrance := m.cells[m.index(0, 0)].Wall(Left)
	exit := m.cells[m.index(m.width-1, m.height-1)].Wall(Right)
	if m.walls[entrance].Active || m.walls[exit].Active {
		return fmt.Errorf("%w: entrance or exit closed", ErrNotPerfect)
	}
	return nil
}

// Passages returns the cleared interior walls as pairs of cells, in WallID
// order.
func Passages(m *Maze) [][2]Cell {
	m.mustBeBuilt()
	var out [][2]Cell
	for id, w := range m.walls {
		in := m.incident[id]
		if w.Active || in.boundary() {
			continue
		}
		out = append(out, [2]Cell{m.cells[in[0]], m.cells[in[1]]})
	}
	return out
}
