package maze

// depthFirstSearch walks the grid from a random start, always stepping into a
// random unvisited neighbour and clearing the wall in between. Dead ends pop
// the stack; the walk ends when it backtracks out of the start cell.
func depthFirstSearch(m *Maze) {
	start := m.rng.IntN(len(m.cells))
	visited := make([]bool, len(m.cells))
	visited[start] = true

	var stack []int
	current := start
	candidates := make([]Side, 0, len(sides))

	for {
		candidates = candidates[:0]
		for _, s := range sides {
			if n := m.neighbor(current, s); n != noCell && !visited[n] {
				candidates = append(candidates, s)
			}
		}

		if len(candidates) > 0 {
			s := candidates[m.rng.IntN(len(candidates))]
			m.clearWall(m.cells[current].Wall(s))
			stack = append(stack, current)
			current = m.neighbor(current, s)
			visited[current] = true
			continue
		}

		// Backtracking from the start cell means every cell has been visited.
		if current == start || len(stack) == 0 {
			return
		}
		current = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}
}
