// Package text renders mazes as terminal text art.
//
// Two styles are available. [Blocks] draws every wall and corner as a
// two-column full block, so each cell becomes a 2x2 character square.
// [ASCII] draws the classic +---+ grid using only 7-bit characters, which
// survives logs and terminals without Unicode support.
//
// Renderers depend only on the [Walls] interface, so any grid exposing wall
// queries can be drawn; *maze.Maze satisfies it.
package text
