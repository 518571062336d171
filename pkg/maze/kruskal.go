package maze

// kruskal visits every wall, boundary walls included, in a Fisher-Yates
// shuffled order and clears a wall whenever the cells on its two sides belong
// to different sets. Boundary walls have a single cell and are always kept.
func kruskal(m *Maze) {
	order := make([]WallID, len(m.walls))
	for i := range order {
		order[i] = WallID(i)
	}
	for i := len(order) - 1; i > 0; i-- {
		j := m.rng.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	sets := newDisjointSet(len(m.cells))
	for _, id := range order {
		if sets.count == 1 {
			break
		}
		in := m.incident[id]
		if in.boundary() {
			continue
		}
		if sets.union(in[0], in[1]) {
			m.clearWall(id)
		}
	}
}

// disjointSet is a union-find over cell indices with path halving and union
// by size.
type disjointSet struct {
	parent []int
	size   []int
	count  int // number of disjoint sets
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{
		parent: make([]int, n),
		size:   make([]int, n),
		count:  n,
	}
	for i := range d.parent {
		d.parent[i] = i
		d.size[i] = 1
	}
	return d
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// union merges the sets containing a and b. It reports false if they were
// already in the same set.
func (d *disjointSet) union(a, b int) bool {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return false
	}
	if d.size[ra] < d.size[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	d.count--
	return true
}
