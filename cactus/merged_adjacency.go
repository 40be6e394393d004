package cactus

import (
	"github.com/adamnovak/cactalth/handlegraph"
	"github.com/adamnovak/cactalth/unionfind"
)

// MergedAdjacencyGraph is a union-find over the oriented handles of a
// handlegraph.SequenceGraph, with domain-specific iteration (spec.md 4.1).
// It starts with one group per (node, orientation) and is built up by
// merging groups that share an edge endpoint (adjacency components), and
// later by whatever further merges the caller performs (3-edge-connected
// merges, bridge-forest cycle merges, pinches during emission).
//
// A handle's index into the union-find is (rank(h)-1)*2 + orientationBit,
// so the whole node/orientation space is a dense array, never a hash map
// (spec.md 9, "represent graphs by indices into arenas").
type MergedAdjacencyGraph struct {
	graph handlegraph.SequenceGraph
	uf    *unionfind.DisjointSet
}

// NewMergedAdjacencyGraph builds the adjacency-component graph of g: one
// initial merge per edge, unioning the handle reading into one endpoint
// with the flipped handle reading into the other (spec.md 4.1).
func NewMergedAdjacencyGraph(g handlegraph.SequenceGraph) *MergedAdjacencyGraph {
	m := &MergedAdjacencyGraph{
		graph: g,
		uf:    unionfind.New(g.GetNodeCount() * 2),
	}
	g.ForEachEdge(func(a, b handlegraph.Handle) bool {
		m.Merge(a, g.Flip(b))
		return true
	})
	return m
}

// Copy builds an independent MergedAdjacencyGraph over the same underlying
// graph, replaying every (head, other-member) pairing of other as a merge
// onto a fresh union-find (spec.md 4.1's copy constructor). The result
// shares no state with other: further merges on either do not affect the
// other.
func Copy(other *MergedAdjacencyGraph) *MergedAdjacencyGraph {
	m := &MergedAdjacencyGraph{
		graph: other.graph,
		uf:    unionfind.New(other.uf.Size()),
	}
	other.ForEachMembership(func(head, member handlegraph.Handle) {
		m.Merge(head, member)
	})
	return m
}

func (m *MergedAdjacencyGraph) index(h handlegraph.Handle) int {
	rank := m.graph.IDToRank(h.ID())
	bit := 0
	if h.IsReverse() {
		bit = 1
	}
	return (rank-1)*2 + bit
}

func (m *MergedAdjacencyGraph) handle(idx int) handlegraph.Handle {
	rank := idx/2 + 1
	isReverse := idx%2 == 1
	id := m.graph.RankToID(rank)
	return m.graph.GetHandle(id, isReverse)
}

// Merge unions the groups of two handles reading into two components.
func (m *MergedAdjacencyGraph) Merge(intoA, intoB handlegraph.Handle) {
	m.uf.Union(m.index(intoA), m.index(intoB))
}

// Find returns the canonical head handle of h's group. Head identity is
// whatever the union-find elects and is not stable across further merges
// (spec.md 4.1).
func (m *MergedAdjacencyGraph) Find(h handlegraph.Handle) handlegraph.Handle {
	return m.handle(m.uf.Find(m.index(h)))
}

// ForEachHead visits each group head exactly once.
func (m *MergedAdjacencyGraph) ForEachHead(visit func(head handlegraph.Handle)) {
	m.uf.Heads(func(idx int) { visit(m.handle(idx)) })
}

// ForEachMember visits every handle in head's group, including head
// itself.
func (m *MergedAdjacencyGraph) ForEachMember(head handlegraph.Handle, visit func(member handlegraph.Handle)) {
	for _, idx := range m.uf.Group(m.index(head)) {
		visit(m.handle(idx))
	}
}

// ForEachOtherMember visits every handle in head's group other than head
// itself.
func (m *MergedAdjacencyGraph) ForEachOtherMember(head handlegraph.Handle, visit func(member handlegraph.Handle)) {
	headIdx := m.index(head)
	for _, idx := range m.uf.Group(headIdx) {
		if idx != headIdx {
			visit(m.handle(idx))
		}
	}
}

// ForEachMembership visits every (head, non-head member) pair exactly
// once, across all groups.
func (m *MergedAdjacencyGraph) ForEachMembership(visit func(head, member handlegraph.Handle)) {
	for _, g := range m.uf.Groups() {
		headHandle := m.handle(g.Head)
		for _, idx := range g.Members {
			if idx == g.Head {
				continue
			}
			visit(headHandle, m.handle(idx))
		}
	}
}

// Graph returns the underlying sequence graph this union-find indexes.
func (m *MergedAdjacencyGraph) Graph() handlegraph.SequenceGraph { return m.graph }
