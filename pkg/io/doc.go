// Package io provides JSON import and export for generated mazes.
//
// # Overview
//
// A [Snapshot] captures everything needed to restore a maze exactly: its
// dimensions, the algorithm that produced it, the seed, and the state of
// every wall. The format is designed for:
//
//   - Caching generated mazes so identical requests skip generation
//   - Archiving mazes and serving them back over the HTTP API
//   - Round-trip preservation: export, re-import, and render identically
//
// # JSON Format
//
//	{
//	  "id": "6f1c0a4e-8a43-4d55-9a0b-51d2d8a5b1a7",
//	  "width": 2,
//	  "height": 2,
//	  "algorithm": "dfs",
//	  "seed": 42,
//	  "walls": "100111001110"
//	}
//
// # Fields
//
// Required:
//   - width, height: Grid dimensions (both at least 1)
//   - walls: One character per wall in WallID order, "1" for an active wall
//     and "0" for a cleared one. Its length must be
//     width*(height+1) + height*(width+1).
//
// Optional:
//   - id: UUID assigned when the snapshot was taken
//   - algorithm: Generator name accepted by maze.ParseAlgorithm (default "dfs")
//   - seed: Random seed used for generation
//
// # Wall Order
//
// Walls are numbered column by column. Each cell, visited with x outer and y
// inner, contributes its top wall and then its left wall. The bottom walls of
// the last row follow, then the right walls of the last column.
package io
