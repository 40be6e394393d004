package cactus

import "github.com/adamnovak/cactalth/handlegraph"

// SnarlFinder decomposes a bidirected sequence graph into a hierarchical
// tree of snarls and chains (spec.md 2). It holds no state beyond the
// graph it was built over; a single SnarlFinder can run
// ForEachSnarlPostorder any number of times, and concurrently, since the
// decomposition never mutates anything (spec.md 5).
type SnarlFinder struct {
	graph handlegraph.SequenceGraph
}

// NewSnarlFinder returns a SnarlFinder over g.
func NewSnarlFinder(g handlegraph.SequenceGraph) *SnarlFinder {
	return &SnarlFinder{graph: g}
}

// ForEachSnarlPostorder runs the full three-pass decomposition and calls
// visit once per snarl, children before parents, with the bounds of the
// immediately enclosing snarl (nil at the top level) and the snarl's own
// boundary handles.
func (f *SnarlFinder) ForEachSnarlPostorder(visit func(parent *Bounds, bounds Bounds)) {
	adjacency := NewMergedAdjacencyGraph(f.graph)

	mergeThreeEdgeConnected(
		adjacency.ForEachHead,
		func(node handlegraph.Handle, emit func(handlegraph.Handle)) {
			adjacency.ForEachMember(node, func(member handlegraph.Handle) {
				emit(adjacency.Find(f.graph.Flip(member)))
			})
		},
		adjacency.Merge,
	)

	nextAlongCycle, cycleGroups, cycles := findCycles(adjacency)

	// The bridge forest is the cactus with every simple cycle collapsed to
	// a single point: union together every cactus group a closed cycle
	// passed through.
	forest := Copy(adjacency)
	for _, heads := range cycleGroups {
		for i := 1; i < len(heads); i++ {
			forest.Merge(heads[0], heads[i])
		}
	}

	deepest, paths := findLongestForestPaths(forest, cycles)

	runEmission(f.graph, adjacency, forest, nextAlongCycle, deepest, cycles, paths, visit)
}

// FindSnarls runs the decomposition and collects every emitted snarl into
// a slice, in postorder. Convenience wrapper over ForEachSnarlPostorder
// for callers that want the whole tree rather than a streaming callback.
func (f *SnarlFinder) FindSnarls() []Snarl {
	var out []Snarl
	f.ForEachSnarlPostorder(func(parent *Bounds, bounds Bounds) {
		s := Snarl{Bounds: bounds}
		if parent != nil {
			p := *parent
			s.Parent = &p
		}
		out = append(out, s)
	})
	return out
}

// Snarl is one node of the decomposition tree, as collected by
// FindSnarls.
type Snarl struct {
	Bounds Bounds
	Parent *Bounds
}
