package handlegraph

// adjacency returns, for a node id, the set of node ids reachable by one
// edge in either direction. It is a plain O(E) scan; Graph does not keep
// a standing adjacency index because only context extraction needs one
// and contexts are small relative to the whole graph.
func (g *Graph) adjacency() map[uint64][]uint64 {
	g.muEdges.RLock()
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	g.muEdges.RUnlock()

	adj := make(map[uint64][]uint64, len(edges)*2)
	for _, e := range edges {
		a, b := e.Left.ID(), e.Right.ID()
		adj[a] = append(adj[a], b)
		if a != b {
			adj[b] = append(adj[b], a)
		}
	}
	return adj
}

// ContextAround extracts the neighborhood around centerID: a "contained"
// set of node IDs reachable by breadth-first expansion until at least
// contextBases total bases (across contained nodes, not counting the
// center) have been pulled in, and a "periphery" set of node IDs directly
// adjacent to the contained set but not themselves contained. This mirrors
// the original's nonoverlapping_node_context + expand_context_by_length
// pair (spec.md 4.6, GraphSynchronizer.Lock.lock).
func (g *Graph) ContextAround(centerID uint64, contextBases int) (contained map[uint64]bool, periphery map[uint64]bool) {
	adj := g.adjacency()

	contained = map[uint64]bool{centerID: true}
	periphery = map[uint64]bool{}

	frontier := []uint64{centerID}
	basesGathered := 0

	for len(frontier) > 0 && basesGathered < contextBases {
		var next []uint64
		for _, id := range frontier {
			for _, nbr := range adj[id] {
				if contained[nbr] {
					continue
				}
				contained[nbr] = true
				basesGathered += g.nodeLength(nbr)
				next = append(next, nbr)
			}
		}
		frontier = next
	}

	for id := range contained {
		for _, nbr := range adj[id] {
			if !contained[nbr] {
				periphery[nbr] = true
			}
		}
	}

	return contained, periphery
}

func (g *Graph) nodeLength(id uint64) int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return 0
	}
	return len(n.sequence)
}
