package unionfind

// DisjointSet is a union-find over the dense integer range [0, size). It
// is not safe for concurrent use; callers needing concurrent access must
// provide their own external locking (the cactus package's decomposer is
// single-threaded per spec.md 5, so it does not).
//
// Group structure is monotone: once two indices are unioned they are
// never split again, matching spec.md 4.1's invariant for
// MergedAdjacencyGraph.
type DisjointSet struct {
	parent []int
	rank   []int
	size   int
}

// New returns a DisjointSet over [0, size), with every index in its own
// singleton group.
func New(size int) *DisjointSet {
	d := &DisjointSet{
		parent: make([]int, size),
		rank:   make([]int, size),
		size:   size,
	}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

// Size returns the number of indices the set was constructed over.
func (d *DisjointSet) Size() int { return d.size }

// Find returns the canonical head of i's group, compressing the path from
// i to the head as it walks up. Iterative, not recursive: input graphs can
// have degenerate chains long enough to blow a call stack (spec.md 9).
func (d *DisjointSet) Find(i int) int {
	root := i
	for d.parent[root] != root {
		root = d.parent[root]
	}
	// Path compression: repoint every visited node directly at root.
	for d.parent[i] != root {
		d.parent[i], i = root, d.parent[i]
	}
	return root
}

// Union merges the groups containing a and b. The resulting group's head
// is whichever of the two groups' heads the algorithm elects by rank;
// callers must not depend on head identity surviving a Union (spec.md 4.1).
func (d *DisjointSet) Union(a, b int) {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return
	}
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = rb
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = ra
	default:
		d.parent[rb] = ra
		d.rank[ra]++
	}
}

// Heads calls visit once for every distinct group head, in ascending
// index order of first discovery. Complexity: O(size · α(size)).
func (d *DisjointSet) Heads(visit func(head int)) {
	seen := make([]bool, d.size)
	for i := 0; i < d.size; i++ {
		if seen[i] {
			continue
		}
		head := d.Find(i)
		if !seen[head] {
			seen[head] = true
			visit(head)
		}
	}
}

// Group is one union-find group: Head is its canonical representative and
// Members lists every index in the group, including Head, in ascending
// index order.
type Group struct {
	Head    int
	Members []int
}

// Groups returns every group in the set, in ascending order of the head's
// first discovery. Equivalent to the original union-find's all_groups(),
// but with the head named explicitly rather than left as "whichever
// element comes first."
func (d *DisjointSet) Groups() []Group {
	byHead := make(map[int][]int)
	order := make([]int, 0)
	for i := 0; i < d.size; i++ {
		h := d.Find(i)
		if _, ok := byHead[h]; !ok {
			order = append(order, h)
		}
		byHead[h] = append(byHead[h], i)
	}
	groups := make([]Group, 0, len(order))
	for _, h := range order {
		groups = append(groups, Group{Head: h, Members: byHead[h]})
	}
	return groups
}

// Group returns every member of i's group, including i, in ascending
// index order.
func (d *DisjointSet) Group(i int) []int {
	head := d.Find(i)
	members := make([]int, 0)
	for j := 0; j < d.size; j++ {
		if d.Find(j) == head {
			members = append(members, j)
		}
	}
	return members
}
