package handlegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamnovak/cactalth/handlegraph"
)

// TestAddNode_AssignsAndRejectsDuplicateIDs checks auto-allocation and the
// duplicate-ID error path.
func TestAddNode_AssignsAndRejectsDuplicateIDs(t *testing.T) {
	g := handlegraph.NewGraph()

	id1, err := g.AddNode(0, "ACGT")
	require.NoError(t, err)
	assert.NotZero(t, id1)

	_, err = g.AddNode(id1, "TTTT")
	assert.ErrorIs(t, err, handlegraph.ErrNodeExists)

	_, err = g.AddNode(0, "")
	assert.ErrorIs(t, err, handlegraph.ErrEmptySequence)
}

// TestGetSequence_ReverseComplementsFlippedHandles verifies the reverse
// handle reads the reverse complement, not just the reversed string.
func TestGetSequence_ReverseComplementsFlippedHandles(t *testing.T) {
	g := handlegraph.NewGraph()
	id, err := g.AddNode(0, "ACGT")
	require.NoError(t, err)

	fwd := g.GetHandle(id, false)
	rev := g.GetHandle(id, true)

	assert.Equal(t, "ACGT", g.GetSequence(fwd))
	assert.Equal(t, "ACGT", g.GetSequence(rev)) // ACGT is its own reverse complement
}

// TestBuildRanks_DenseAscendingOrder checks IDToRank/RankToID round-trip
// in ascending ID order after BuildRanks.
func TestBuildRanks_DenseAscendingOrder(t *testing.T) {
	g := handlegraph.NewGraph()
	idA, _ := g.AddNode(10, "A")
	idB, _ := g.AddNode(3, "C")
	idC, _ := g.AddNode(7, "G")
	g.BuildRanks()

	assert.Equal(t, 1, g.IDToRank(idB))
	assert.Equal(t, 2, g.IDToRank(idC))
	assert.Equal(t, 3, g.IDToRank(idA))
	assert.Equal(t, idB, g.RankToID(1))
}

// TestForEachEdge_VisitsEveryMultiEdge ensures parallel edges are neither
// deduplicated nor dropped.
func TestForEachEdge_VisitsEveryMultiEdge(t *testing.T) {
	g := handlegraph.NewGraph()
	a, _ := g.AddNode(0, "A")
	b, _ := g.AddNode(0, "C")
	ha, hb := g.GetHandle(a, false), g.GetHandle(b, false)
	g.AddEdge(ha, hb)
	g.AddEdge(ha, hb)

	count := 0
	g.ForEachEdge(func(x, y handlegraph.Handle) bool {
		count++
		return true
	})
	assert.Equal(t, 2, count)
}

// TestApplyEdit_ReplacesNodeAndRewiresEdges checks that ApplyEdit swaps
// the node's identity while preserving its edges under the new ID.
func TestApplyEdit_ReplacesNodeAndRewiresEdges(t *testing.T) {
	g := handlegraph.NewGraph()
	a, _ := g.AddNode(0, "AAAA")
	b, _ := g.AddNode(0, "CCCC")
	g.AddEdge(g.GetHandle(a, false), g.GetHandle(b, false))

	tr, err := g.ApplyEdit(handlegraph.Edit{Path: "p", NodeID: a, NewSequence: "GGGG"})
	require.NoError(t, err)
	assert.Equal(t, a, tr.From.Mappings[0].NodeID)

	newID := tr.To.Mappings[0].NodeID
	assert.False(t, g.HasNode(a))
	require.True(t, g.HasNode(newID))
	assert.Equal(t, "GGGG", g.GetSequence(g.GetHandle(newID, false)))

	found := false
	g.ForEachEdge(func(x, y handlegraph.Handle) bool {
		if x.ID() == newID && y.ID() == b {
			found = true
		}
		return true
	})
	assert.True(t, found, "edit should rewire the old node's edges onto the new node")
}

// TestApplyEdit_UnknownNode returns ErrEditUnknownNode.
func TestApplyEdit_UnknownNode(t *testing.T) {
	g := handlegraph.NewGraph()
	_, err := g.ApplyEdit(handlegraph.Edit{NodeID: 999})
	assert.ErrorIs(t, err, handlegraph.ErrEditUnknownNode)
}
