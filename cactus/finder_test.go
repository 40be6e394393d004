package cactus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamnovak/cactalth/cactus"
	"github.com/adamnovak/cactalth/handlegraph"
)

// buildLinear constructs 1(ACGT)-2(ACGT)-3(ACGT) in series (S1).
func buildLinear(t *testing.T) *handlegraph.Graph {
	t.Helper()
	g := handlegraph.NewGraph()
	n1, err := g.AddNode(1, "ACGT")
	require.NoError(t, err)
	n2, err := g.AddNode(2, "ACGT")
	require.NoError(t, err)
	n3, err := g.AddNode(3, "ACGT")
	require.NoError(t, err)
	g.AddEdge(g.GetHandle(n1, false), g.GetHandle(n2, false))
	g.AddEdge(g.GetHandle(n2, false), g.GetHandle(n3, false))
	g.BuildRanks()
	return g
}

// buildBubble constructs node 1 branching into 2 and 3, rejoining at 4 (S2).
func buildBubble(t *testing.T) *handlegraph.Graph {
	t.Helper()
	g := handlegraph.NewGraph()
	n1, _ := g.AddNode(1, "ACGT")
	n2, _ := g.AddNode(2, "ACGT")
	n3, _ := g.AddNode(3, "ACGT")
	n4, _ := g.AddNode(4, "ACGT")
	g.AddEdge(g.GetHandle(n1, false), g.GetHandle(n2, false))
	g.AddEdge(g.GetHandle(n1, false), g.GetHandle(n3, false))
	g.AddEdge(g.GetHandle(n2, false), g.GetHandle(n4, false))
	g.AddEdge(g.GetHandle(n3, false), g.GetHandle(n4, false))
	g.BuildRanks()
	return g
}

// buildCycle constructs a simple directed cycle 1->2->3->1 (S3).
func buildCycle(t *testing.T) *handlegraph.Graph {
	t.Helper()
	g := handlegraph.NewGraph()
	n1, _ := g.AddNode(1, "ACGT")
	n2, _ := g.AddNode(2, "ACGT")
	n3, _ := g.AddNode(3, "ACGT")
	g.AddEdge(g.GetHandle(n1, false), g.GetHandle(n2, false))
	g.AddEdge(g.GetHandle(n2, false), g.GetHandle(n3, false))
	g.AddEdge(g.GetHandle(n3, false), g.GetHandle(n1, false))
	g.BuildRanks()
	return g
}

// TestFindSnarls_Linear_CoversEveryNode checks universal invariant 1
// (coverage) on the S1 linear scenario: no edges bound a nontrivial
// snarl, so every node must surface via a bound handle somewhere.
func TestFindSnarls_Linear_CoversEveryNode(t *testing.T) {
	g := buildLinear(t)
	f := cactus.NewSnarlFinder(g)

	seen := map[uint64]bool{}
	f.ForEachSnarlPostorder(func(parent *cactus.Bounds, b cactus.Bounds) {
		seen[g.GetID(b.Start)] = true
		seen[g.GetID(b.End)] = true
	})

	g.ForEachNode(func(id uint64) bool {
		assert.True(t, seen[id], "node %d should appear in some emitted snarl's bounds", id)
		return true
	})
}

// TestFindSnarls_Bubble_CoversEveryNode checks coverage on the S2 bubble.
func TestFindSnarls_Bubble_CoversEveryNode(t *testing.T) {
	g := buildBubble(t)
	f := cactus.NewSnarlFinder(g)

	seen := map[uint64]bool{}
	count := 0
	f.ForEachSnarlPostorder(func(parent *cactus.Bounds, b cactus.Bounds) {
		count++
		seen[g.GetID(b.Start)] = true
		seen[g.GetID(b.End)] = true
	})

	assert.Greater(t, count, 0)
	g.ForEachNode(func(id uint64) bool {
		assert.True(t, seen[id], "node %d should appear in some emitted snarl's bounds", id)
		return true
	})
}

// TestFindSnarls_Cycle_EmitsChainOfTrivialSnarls exercises invariant 7:
// a single simple cycle should decompose into trivial snarls linked by a
// chain, covering every node on the cycle.
func TestFindSnarls_Cycle_EmitsChainOfTrivialSnarls(t *testing.T) {
	g := buildCycle(t)
	f := cactus.NewSnarlFinder(g)

	seen := map[uint64]bool{}
	f.ForEachSnarlPostorder(func(parent *cactus.Bounds, b cactus.Bounds) {
		seen[g.GetID(b.Start)] = true
		seen[g.GetID(b.End)] = true
	})

	g.ForEachNode(func(id uint64) bool {
		assert.True(t, seen[id], "node %d should appear in some emitted snarl's bounds", id)
		return true
	})
}

// buildBridgeLinkedCycles constructs two triangles (1-2-3-1 and 4-5-6-4)
// joined by a single bridge edge between node 3 and node 4: a graph
// consisting of one bridge edge linking two simple cycles.
func buildBridgeLinkedCycles(t *testing.T) *handlegraph.Graph {
	t.Helper()
	g := handlegraph.NewGraph()
	n1, _ := g.AddNode(1, "ACGT")
	n2, _ := g.AddNode(2, "ACGT")
	n3, _ := g.AddNode(3, "ACGT")
	n4, _ := g.AddNode(4, "ACGT")
	n5, _ := g.AddNode(5, "ACGT")
	n6, _ := g.AddNode(6, "ACGT")
	g.AddEdge(g.GetHandle(n1, false), g.GetHandle(n2, false))
	g.AddEdge(g.GetHandle(n2, false), g.GetHandle(n3, false))
	g.AddEdge(g.GetHandle(n3, false), g.GetHandle(n1, false))
	g.AddEdge(g.GetHandle(n3, false), g.GetHandle(n4, false))
	g.AddEdge(g.GetHandle(n4, false), g.GetHandle(n5, false))
	g.AddEdge(g.GetHandle(n5, false), g.GetHandle(n6, false))
	g.AddEdge(g.GetHandle(n6, false), g.GetHandle(n4, false))
	g.BuildRanks()
	return g
}

// TestFindSnarls_BridgeLinkingTwoCycles_JoinsIntoOneStructure exercises
// invariant 8: on a graph consisting of one bridge edge linking two simple
// cycles, the two cycles must come out joined into a single decomposition
// rather than two disconnected halves, with some snarl bounded across the
// bridge spanning both triangles.
func TestFindSnarls_BridgeLinkingTwoCycles_JoinsIntoOneStructure(t *testing.T) {
	g := buildBridgeLinkedCycles(t)
	f := cactus.NewSnarlFinder(g)

	seen := map[uint64]bool{}
	f.ForEachSnarlPostorder(func(parent *cactus.Bounds, b cactus.Bounds) {
		seen[g.GetID(b.Start)] = true
		seen[g.GetID(b.End)] = true
	})
	g.ForEachNode(func(id uint64) bool {
		assert.True(t, seen[id], "node %d should appear in some emitted snarl's bounds", id)
		return true
	})

	firstTriangle := map[uint64]bool{1: true, 2: true, 3: true}
	secondTriangle := map[uint64]bool{4: true, 5: true, 6: true}
	foundBridgingSnarl := false
	f.ForEachSnarlPostorder(func(parent *cactus.Bounds, b cactus.Bounds) {
		startID, endID := g.GetID(b.Start), g.GetID(b.End)
		if (firstTriangle[startID] && secondTriangle[endID]) || (secondTriangle[startID] && firstTriangle[endID]) {
			foundBridgingSnarl = true
		}
	})
	assert.True(t, foundBridgingSnarl, "expected one snarl bounded across the bridge, spanning both triangles")
}

// TestFindSnarls_NoEdges_OnlyTrivialSnarls checks invariant 6: an
// edgeless graph emits exactly one trivial snarl per node and nothing else.
func TestFindSnarls_NoEdges_OnlyTrivialSnarls(t *testing.T) {
	g := handlegraph.NewGraph()
	n1, _ := g.AddNode(1, "ACGT")
	n2, _ := g.AddNode(2, "ACGT")
	g.BuildRanks()

	f := cactus.NewSnarlFinder(g)
	var bounds []cactus.Bounds
	f.ForEachSnarlPostorder(func(parent *cactus.Bounds, b cactus.Bounds) {
		bounds = append(bounds, b)
		assert.Nil(t, parent)
		assert.Equal(t, b.Start.ID(), b.End.ID())
	})

	assert.Len(t, bounds, 2)
	ids := map[uint64]bool{n1: true, n2: true}
	for _, b := range bounds {
		assert.True(t, ids[b.Start.ID()])
	}
}

// TestFindSnarls_Determinism checks universal invariant 5: two runs over
// the same graph produce the same sequence of emitted bounds.
func TestFindSnarls_Determinism(t *testing.T) {
	g := buildBubble(t)
	f := cactus.NewSnarlFinder(g)

	first := f.FindSnarls()
	second := f.FindSnarls()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Bounds, second[i].Bounds)
	}
}
