package cactus

import "testing"

// TestMaxFlow_SimpleTriangle checks max-flow on a 3-node triangle where
// every edge has capacity 1: the min cut between any two nodes is 2 (the
// two edges at either endpoint), matched by the direct edge plus the
// one path around through the third node.
func TestMaxFlow_SimpleTriangle(t *testing.T) {
	cap := [][]int{
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
	}
	flow, reachable := maxFlow(cap, 0, 1)
	if flow != 2 {
		t.Fatalf("expected max flow 2 between two nodes of a unit-capacity triangle, got %d", flow)
	}
	if !reachable[0] {
		t.Fatalf("source must be reachable from itself in the residual graph")
	}
}

// TestMaxFlow_DisconnectedNodesHaveZeroFlow checks the degenerate case of
// no path at all between source and sink.
func TestMaxFlow_DisconnectedNodesHaveZeroFlow(t *testing.T) {
	cap := [][]int{
		{0, 0},
		{0, 0},
	}
	flow, _ := maxFlow(cap, 0, 1)
	if flow != 0 {
		t.Fatalf("expected zero flow with no edges, got %d", flow)
	}
}

// TestMaxFlow_TwoParallelBridges checks that capacity sums correctly
// across two independent two-hop paths.
func TestMaxFlow_TwoParallelBridges(t *testing.T) {
	// 0 -> 1 -> 3, 0 -> 2 -> 3, each hop capacity 1.
	cap := [][]int{
		{0, 1, 1, 0},
		{1, 0, 0, 1},
		{1, 0, 0, 1},
		{0, 1, 1, 0},
	}
	flow, _ := maxFlow(cap, 0, 3)
	if flow != 2 {
		t.Fatalf("expected max flow 2 across two disjoint bridges, got %d", flow)
	}
}
