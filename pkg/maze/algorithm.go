package maze

import (
	"fmt"
	"strings"
)

// Algorithm selects a maze generator. The set of algorithms is closed.
type Algorithm int

const (
	// DepthFirstSearch is a randomized depth-first traversal with an explicit
	// backtracking stack.
	DepthFirstSearch Algorithm = iota
	// Prim is randomized Prim's algorithm over a frontier list of walls.
	Prim
	// Kruskal is randomized Kruskal's algorithm over a shuffled wall order.
	Kruskal
)

// Algorithms returns every available algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{DepthFirstSearch, Prim, Kruskal}
}

// String returns the short name accepted by [ParseAlgorithm].
func (a Algorithm) String() string {
	switch a {
	case DepthFirstSearch:
		return "dfs"
	case Prim:
		return "prim"
	case Kruskal:
		return "kruskal"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Title returns a human-readable name.
func (a Algorithm) Title() string {
	switch a {
	case DepthFirstSearch:
		return "Depth First Search"
	case Prim:
		return "Prim's Algorithm"
	case Kruskal:
		return "Kruskal's Algorithm"
	}
	return a.String()
}

// Valid reports whether a is one of the declared algorithms.
func (a Algorithm) Valid() bool {
	return a >= DepthFirstSearch && a <= Kruskal
}

// ParseAlgorithm maps a name to an Algorithm. Matching is case-insensitive
// and accepts "dfs", "depth-first", "prim", "prims", "kruskal" and "kruskals".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dfs", "depth-first", "depthfirst", "backtracker":
		return DepthFirstSearch, nil
	case "prim", "prims", "prim's":
		return Prim, nil
	case "kruskal", "kruskals", "kruskal's":
		return Kruskal, nil
	}
	return 0, fmt.Errorf("%w: %q (must be one of: dfs, prim, kruskal)", ErrUnknownAlgorithm, name)
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// generate carves a spanning tree into m, whose walls must all be active,
// then opens the entrance and exit.
func (a Algorithm) generate(m *Maze) {
	switch a {
	case DepthFirstSearch:
		depthFirstSearch(m)
	case Prim:
		prim(m)
	case Kruskal:
		kruskal(m)
	default:
		panic(fmt.Sprintf("maze: unknown algorithm %d", int(a)))
	}
	m.openExits()
}
