// Package pkg holds the mazegen libraries.
//
// # Overview
//
// mazegen carves perfect mazes on rectangular grids: every cell is reachable
// from every other cell by exactly one path. The packages layer as follows:
//
//  1. [maze] - Grid topology, the three generators and maze analysis
//  2. [render] - Text and Graphviz renderers
//  3. [io] - JSON snapshots that restore a maze exactly
//  4. [pipeline] - Orchestration (generate → render) with caching
//  5. [cache], [store] - Snapshot cache (file, Redis) and archive (memory, MongoDB)
//  6. [server] - HTTP API over the pipeline and the archive
//
// Support packages: [config] loads settings, [errors] carries error codes,
// [observability] exposes hooks and [buildinfo] reports the version.
//
// # Data Flow
//
//	width, height, algorithm, seed
//	         ↓
//	    [maze] (build grid, carve passages, open exits)
//	         ↓
//	    [io] snapshot → [cache] / [store]
//	         ↓
//	    [render] (text, DOT, SVG) or JSON
//
// # Quick Start
//
//	m, err := maze.New(20, 10, maze.Kruskal, maze.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(text.Render(m, text.Options{Style: text.ASCII}))
//
// [maze]: github.com/matzehuels/mazegen/pkg/maze
// [render]: github.com/matzehuels/mazegen/pkg/render
// [io]: github.com/matzehuels/mazegen/pkg/io
// [pipeline]: github.com/matzehuels/mazegen/pkg/pipeline
// [cache]: github.com/matzehuels/mazegen/pkg/cache
// [store]: github.com/matzehuels/mazegen/pkg/store
// [server]: github.com/matzehuels/mazegen/pkg/server
// [config]: github.com/matzehuels/mazegen/pkg/config
// [errors]: github.com/matzehuels/mazegen/pkg/errors
// [observability]: github.com/matzehuels/mazegen/pkg/observability
// [buildinfo]: github.com/matzehuels/mazegen/pkg/buildinfo
package pkg
