package maze

import "slices"

// prim grows the maze from a random cell. The frontier is a plain list of
// interior walls bordering the visited region; duplicates are allowed. A wall
// picked at random is cleared only if exactly one of its cells is unvisited.
func prim(m *Maze) {
	start := m.rng.IntN(len(m.cells))
	visited := make([]bool, len(m.cells))
	visited[start] = true

	frontier := m.interiorWalls(nil, start, noWall)

	for len(frontier) > 0 {
		i := m.rng.IntN(len(frontier))
		id := frontier[i]
		in := m.incident[id]

		if a, b := in[0], in[1]; visited[a] != visited[b] {
			next := a
			if visited[a] {
				next = b
			}
			m.clearWall(id)
			visited[next] = true
			frontier = m.interiorWalls(frontier, next, id)
		}

		frontier = slices.Delete(frontier, i, i+1)
	}
}

// interiorWalls appends the non-boundary walls of cell idx, except skip, to dst.
func (m *Maze) interiorWalls(dst []WallID, idx int, skip WallID) []WallID {
	c := m.cells[idx]
	for _, s := range sides {
		id := c.Wall(s)
		if id == skip || m.incident[id].boundary() {
			continue
		}
		dst = append(dst, id)
	}
	return dst
}
