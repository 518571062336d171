package maze

import (
	"fmt"
	"math/rand/v2"
)

// Maze is a width×height grid of cells whose shared walls are generated into
// a perfect maze by the active [Algorithm].
//
// The zero value is not usable - use [New], [Build] or [FromWalls].
// Maze is not safe for concurrent use without external synchronization.
type Maze struct {
	width, height int

	cells    []Cell      // index x*height + y
	walls    []Wall      // wall arena, addressed by WallID
	incident []incidence // WallID -> incident cell indices

	alg Algorithm
	rng *rand.Rand
}

type options struct {
	rng *rand.Rand
}

// Option configures a Maze at construction time.
type Option func(*options)

// WithSeed seeds the maze's random source so that generation is reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = newRand(seed)
	}
}

// WithRand injects a random source. The maze takes ownership of r.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// New builds a width×height topology and generates a maze with alg.
// It returns ErrInvalidDimensions if either dimension is not positive.
func New(width, height int, alg Algorithm, opts ...Option) (*Maze, error) {
	m, err := Build(width, height, opts...)
	if err != nil {
		return nil, err
	}
	m.SetAlgorithm(alg)
	m.Regenerate()
	return m, nil
}

// Build allocates the cells and walls of a width×height grid with every wall
// active, without running a generator. The active algorithm is
// [DepthFirstSearch] until changed with [Maze.SetAlgorithm].
//
// Dimensions are validated before anything is allocated.
func Build(width, height int, opts ...Option) (*Maze, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	m := &Maze{
		width:  width,
		height: height,
		alg:    DepthFirstSearch,
		rng:    o.rng,
	}
	m.reconstruct()
	return m, nil
}

// FromWalls rebuilds a maze from stored wall states, as produced by
// [Maze.Walls]. The length of active must equal the wall count for the given
// dimensions.
func FromWalls(width, height int, alg Algorithm, active []bool, opts ...Option) (*Maze, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if want := WallCountFor(width, height); len(active) != want {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWallCountMismatch, len(active), want)
	}
	m, err := Build(width, height, opts...)
	if err != nil {
		return nil, err
	}
	m.alg = alg
	for i, a := range active {
		m.walls[i].Active = a
	}
	return m, nil
}

// WallCountFor returns the number of distinct walls in a width×height grid.
func WallCountFor(width, height int) int {
	return width*(height+1) + height*(width+1)
}

// reconstruct allocates cells and walls and wires shared references.
// Walls are numbered column by column: each cell contributes its top and left
// wall, then the bottom row and right column close the grid.
func (m *Maze) reconstruct() {
	w, h := m.width, m.height
	n := WallCountFor(w, h)

	m.cells = make([]Cell, w*h)
	m.walls = make([]Wall, 0, n)
	m.incident = make([]incidence, 0, n)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			m.cells[m.index(x, y)] = newCell(x, y)
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			idx := m.index(x, y)

			top := m.addWall(idx, noCell)
			m.cells[idx].Top = top
			if y > 0 {
				above := m.index(x, y-1)
				m.cells[above].Bottom = top
				m.incident[top][1] = above
			}

			left := m.addWall(idx, noCell)
			m.cells[idx].Left = left
			if x > 0 {
				prev := m.index(x-1, y)
				m.cells[prev].Right = left
				m.incident[left][1] = prev
			}
		}
	}

	for x := 0; x < w; x++ {
		idx := m.index(x, h-1)
		m.cells[idx].Bottom = m.addWall(idx, noCell)
	}
	for y := 0; y < h; y++ {
		idx := m.index(w-1, y)
		m.cells[idx].Right = m.addWall(idx, noCell)
	}
}

func (m *Maze) addWall(a, b int) WallID {
	id := WallID(len(m.walls))
	m.walls = append(m.walls, Wall{Active: true})
	m.incident = append(m.incident, incidence{a, b})
	return id
}

func (m *Maze) index(x, y int) int { return x*m.height + y }

func (m *Maze) mustBeBuilt() {
	if m == nil || m.cells == nil {
		panic("maze: use of unconstructed Maze; create it with maze.New or maze.Build")
	}
}

// Reset sets every wall active without rebuilding the topology.
func (m *Maze) Reset() {
	m.mustBeBuilt()
	for i := range m.walls {
		m.walls[i].Active = true
	}
}

// Regenerate resets all walls and runs the active algorithm. It panics
// before touching any wall if the active algorithm is not one of the
// declared values.
func (m *Maze) Regenerate() {
	m.mustBeBuilt()
	if !m.alg.Valid() {
		panic(fmt.Sprintf("maze: unknown algorithm %d", int(m.alg)))
	}
	m.Reset()
	m.alg.generate(m)
}

// SetAlgorithm replaces the active algorithm. It does not regenerate.
func (m *Maze) SetAlgorithm(alg Algorithm) {
	m.alg = alg
}

// Algorithm returns the active algorithm.
func (m *Maze) Algorithm() Algorithm { return m.alg }

// Reseed replaces the random source with one seeded from seed.
func (m *Maze) Reseed(seed uint64) {
	m.rng = newRand(seed)
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// CellCount returns width*height.
func (m *Maze) CellCount() int { return len(m.cells) }

// WallCount returns the number of distinct walls.
func (m *Maze) WallCount() int { return len(m.walls) }

// Wall returns the wall with the given ID. It panics if id is out of range.
func (m *Maze) Wall(id WallID) Wall {
	m.mustBeBuilt()
	return m.walls[id]
}

// IsBoundary reports whether the wall lies on the outer edge of the grid.
func (m *Maze) IsBoundary(id WallID) bool {
	m.mustBeBuilt()
	return m.incident[id].boundary()
}

// Walls returns a copy of every wall's active state, indexed by WallID.
func (m *Maze) Walls() []bool {
	m.mustBeBuilt()
	out := make([]bool, len(m.walls))
	for i, w := range m.walls {
		out[i] = w.Active
	}
	return out
}

// Cell returns the cell at (x, y).
func (m *Maze) Cell(x, y int) (Cell, error) {
	m.mustBeBuilt()
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Cell{}, &OutOfRangeError{X: x, Y: y, Width: m.width, Height: m.height}
	}
	return m.cells[m.index(x, y)], nil
}

// CellWalls returns the active state of the four walls of cell (x, y).
func (m *Maze) CellWalls(x, y int) (CellWalls, error) {
	c, err := m.Cell(x, y)
	if err != nil {
		return CellWalls{}, err
	}
	return CellWalls{
		Top:    m.walls[c.Wall(Top)].Active,
		Bottom: m.walls[c.Wall(Bottom)].Active,
		Left:   m.walls[c.Wall(Left)].Active,
		Right:  m.walls[c.Wall(Right)].Active,
	}, nil
}

// TopActive reports whether the top wall of cell (x, y) is present.
func (m *Maze) TopActive(x, y int) (bool, error) { return m.sideActive(x, y, Top) }

// BottomActive reports whether the bottom wall of cell (x, y) is present.
func (m *Maze) BottomActive(x, y int) (bool, error) { return m.sideActive(x, y, Bottom) }

// LeftActive reports whether the left wall of cell (x, y) is present.
func (m *Maze) LeftActive(x, y int) (bool, error) { return m.sideActive(x, y, Left) }

// RightActive reports whether the right wall of cell (x, y) is present.
func (m *Maze) RightActive(x, y int) (bool, error) { return m.sideActive(x, y, Right) }

func (m *Maze) sideActive(x, y int, s Side) (bool, error) {
	c, err := m.Cell(x, y)
	if err != nil {
		return false, err
	}
	return m.walls[c.Wall(s)].Active, nil
}

// neighbor returns the index of the cell across side s of cell idx, or noCell
// at the grid boundary.
func (m *Maze) neighbor(idx int, s Side) int {
	c := m.cells[idx]
	dx, dy := s.delta()
	nx, ny := c.X+dx, c.Y+dy
	if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
		return noCell
	}
	return m.index(nx, ny)
}

func (m *Maze) clearWall(id WallID) {
	m.walls[id].Active = false
}

// openExits clears the entrance on the left of (0,0) and the exit on the right
// of (width-1, height-1), regardless of their current state.
func (m *Maze) openExits() {
	m.clearWall(m.cells[m.index(0, 0)].Wall(Left))
	m.clearWall(m.cells[m.index(m.width-1, m.height-1)].Wall(Right))
}
