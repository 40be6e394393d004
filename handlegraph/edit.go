package handlegraph

import "errors"

// ErrEditUnknownNode indicates an Edit named a node ID the graph does not have.
var ErrEditUnknownNode = errors.New("handlegraph: edit references unknown node")

// Edit describes a single-node replacement: the node named by NodeID is
// removed and replaced by one freshly allocated node carrying NewSequence,
// inheriting all of the old node's edges. This is the minimal edit shape
// syncgraph.Lock.ApplyEdit needs to exercise (spec.md 4.6): enough to
// produce a real Translation and to require path indices to be replayed.
type Edit struct {
	Path       string
	NodeID     uint64
	NewSequence string
}

// ApplyEdit performs the replacement described by e and returns the
// Translation describing the change. Callers (syncgraph.Lock) are
// responsible for verifying NodeID is one they hold locked before calling
// this; ApplyEdit itself only checks the node exists.
func (g *Graph) ApplyEdit(e Edit) (Translation, error) {
	g.muNodes.Lock()
	old, ok := g.nodes[e.NodeID]
	if !ok {
		g.muNodes.Unlock()
		return Translation{}, ErrEditUnknownNode
	}
	newID := g.nextID
	g.nextID++
	g.nodes[newID] = &node{id: newID, sequence: e.NewSequence}
	delete(g.nodes, e.NodeID)
	g.rankByID = nil
	g.idByRank = nil
	g.muNodes.Unlock()

	g.muEdges.Lock()
	for i := range g.edges {
		if g.edges[i].Left.ID() == old.id {
			g.edges[i].Left = NewHandle(newID, g.edges[i].Left.IsReverse())
		}
		if g.edges[i].Right.ID() == old.id {
			g.edges[i].Right = NewHandle(newID, g.edges[i].Right.IsReverse())
		}
	}
	g.muEdges.Unlock()

	g.RenumberPathStep(e.NodeID, newID)

	return Translation{
		From: PathMapping{Path: e.Path, Mappings: []NodeOffset{{NodeID: e.NodeID, Offset: 0}}},
		To:   PathMapping{Path: e.Path, Mappings: []NodeOffset{{NodeID: newID, Offset: 0}}},
	}, nil
}
