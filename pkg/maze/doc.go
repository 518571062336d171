// Package maze provides the grid model and generators for perfect mazes.
//
// # Overview
//
// A perfect maze is a spanning tree over a rectangular grid graph: every cell
// is reachable from every other cell through exactly one simple path. This
// package models the grid as cells that share wall edges and turns an
// "all walls present" grid into such a tree by clearing a subset of walls.
//
// # Walls and Cells
//
// Walls live in a single arena owned by the [Maze] and are addressed by a
// stable [WallID]. A [Cell] holds the IDs of its four walls, so two
// neighbouring cells refer to the same wall: clearing it is one indexed write
// that both cells observe. Boundary cells still hold a wall on their outer
// side; such a wall belongs to a single cell.
//
// An incidence table built with the topology maps every wall to the one or
// two cells it separates, so generators never scan the grid to find them.
//
// For a width×height grid there are exactly
//
//	width*(height+1) + height*(width+1)
//
// distinct walls.
//
// # Basic Usage
//
// Create a maze with [New], swap algorithms with [Maze.SetAlgorithm] and
// rebuild the passages with [Maze.Regenerate]:
//
//	m, err := maze.New(15, 15, maze.DepthFirstSearch, maze.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	m.SetAlgorithm(maze.Kruskal)
//	m.Regenerate()
//
//	active, err := m.LeftActive(0, 0) // false: the entrance
//
// # Algorithms
//
// Three generators are available as values of the closed [Algorithm] type:
//
//   - [DepthFirstSearch]: randomized depth-first traversal with an explicit
//     backtracking stack. Produces long, winding corridors.
//   - [Prim]: randomized Prim's algorithm over a frontier list of walls.
//     Produces many short dead ends.
//   - [Kruskal]: randomized Kruskal's algorithm over a shuffled wall order
//     with a disjoint-set union.
//
// Every algorithm finishes by opening the left wall of cell (0,0) and the
// right wall of cell (width-1,height-1) as entrance and exit.
//
// # Randomness
//
// Each maze owns a math/rand/v2 source. [WithSeed] makes generation
// reproducible: the same seed, dimensions and algorithm always produce the
// same wall states.
//
// # Concurrency
//
// Maze is not safe for concurrent use. Callers must serialize regenerations
// and must not read wall states while a regeneration is running.
package maze
