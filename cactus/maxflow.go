package cactus

// maxFlow computes the maximum flow from source to sink in the graph
// described by the capacity matrix cap (cap[u][v] is the capacity of the
// arc u->v), using Edmonds-Karp (BFS augmenting paths). cap is treated as
// the working residual graph and is mutated in place; callers that need
// the original capacities afterward must pass a copy. The BFS-for-
// shortest-augmenting-path structure follows the same shape as
// flow/edmonds_karp.go's bfsAugmentingPath/augment loop, adapted from a
// string-keyed adjacency list to a dense rank-indexed matrix since
// mergeThreeEdgeConnected's Gomory-Hu construction rebuilds this matrix
// fresh on every one of its n-1 rounds.
//
// It returns the flow value and, as the byproduct every min-cut algorithm
// gets for free, the set of nodes reachable from source in the final
// residual graph — one side of a minimum source-sink cut.
func maxFlow(cap [][]int, source, sink int) (int, []bool) {
	n := len(cap)
	total := 0

	for {
		parent := make([]int, n)
		for i := range parent {
			parent[i] = -1
		}
		parent[source] = source

		queue := []int{source}
		for len(queue) > 0 && parent[sink] == -1 {
			u := queue[0]
			queue = queue[1:]
			for v := 0; v < n; v++ {
				if parent[v] == -1 && cap[u][v] > 0 {
					parent[v] = u
					queue = append(queue, v)
				}
			}
		}

		if parent[sink] == -1 {
			// No augmenting path left.
			break
		}

		// Find the bottleneck capacity along the path.
		bottleneck := int(^uint(0) >> 1) // max int
		for v := sink; v != source; {
			u := parent[v]
			if cap[u][v] < bottleneck {
				bottleneck = cap[u][v]
			}
			v = u
		}

		// Push that much flow, updating the residual graph.
		for v := sink; v != source; {
			u := parent[v]
			cap[u][v] -= bottleneck
			cap[v][u] += bottleneck
			v = u
		}

		total += bottleneck
	}

	reachable := make([]bool, n)
	reachable[source] = true
	queue := []int{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := 0; v < n; v++ {
			if !reachable[v] && cap[u][v] > 0 {
				reachable[v] = true
				queue = append(queue, v)
			}
		}
	}

	return total, reachable
}
