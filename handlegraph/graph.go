package handlegraph

import (
	"sort"
	"sync"
)

// node holds one node's storage: its ID and sequence.
type node struct {
	id       uint64
	sequence string
}

// Graph is a mutable, in-memory bidirected sequence graph. It implements
// SequenceGraph and additionally supports the mutations the syncgraph
// package needs (adding nodes, replacing them via ApplyEdit).
//
// Following core.Graph's lead, node storage and edge storage are guarded
// by separate RWMutexes (muNodes, muEdges) so that a reader walking edges
// never blocks on a concurrent node lookup and vice versa. No method holds
// both at once (ApplyEdit releases muNodes before taking muEdges), so a
// caller that needs a consistent view across nodes and edges must
// serialize edits itself, as syncgraph does with its graph-wide RWMutex.
type Graph struct {
	muNodes sync.RWMutex
	muEdges sync.RWMutex

	nodes    map[uint64]*node
	edges    []Edge
	nextID   uint64
	rankByID map[uint64]int
	idByRank []uint64

	paths pathSet
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:  make(map[uint64]*node),
		nextID: 1,
	}
}

// AddNode inserts a node with the given ID and sequence. If id is zero, a
// fresh ID is allocated. AddNode invalidates any previously built rank
// index; callers must call BuildRanks again before using IDToRank/RankToID.
func (g *Graph) AddNode(id uint64, sequence string) (uint64, error) {
	if sequence == "" {
		return 0, ErrEmptySequence
	}

	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	if id == 0 {
		id = g.nextID
	}
	if _, exists := g.nodes[id]; exists {
		return 0, ErrNodeExists
	}
	g.nodes[id] = &node{id: id, sequence: sequence}
	if id >= g.nextID {
		g.nextID = id + 1
	}
	// Rank index is now stale.
	g.rankByID = nil
	g.idByRank = nil

	return id, nil
}

// AddEdge records a bidirected edge between two handles. Multi-edges
// (repeated identical edges) are permitted; the cactus decomposer relies
// on them being preserved, not deduplicated (spec 4.2).
func (g *Graph) AddEdge(a, b Handle) {
	g.muEdges.Lock()
	defer g.muEdges.Unlock()
	g.edges = append(g.edges, Edge{Left: a, Right: b})
}

// BuildRanks assigns a dense, 1-based rank to every current node ID, in
// ascending ID order. It must be called after the node set is final and
// before any IDToRank/RankToID/decomposition call. Adding a node after
// BuildRanks invalidates the index (IDToRank/RankToID will panic).
func (g *Graph) BuildRanks() {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	ids := make([]uint64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	g.idByRank = ids
	g.rankByID = make(map[uint64]int, len(ids))
	for i, id := range ids {
		g.rankByID[id] = i + 1
	}
}

// GetNodeCount implements SequenceGraph.
func (g *Graph) GetNodeCount() int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	return len(g.nodes)
}

// ForEachEdge implements SequenceGraph.
func (g *Graph) ForEachEdge(visit func(a, b Handle) bool) {
	g.muEdges.RLock()
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	g.muEdges.RUnlock()

	for _, e := range edges {
		if !visit(e.Left, e.Right) {
			return
		}
	}
}

// ForEachNode implements SequenceGraph, visiting node IDs in ascending order.
func (g *Graph) ForEachNode(visit func(id uint64) bool) {
	g.muNodes.RLock()
	ids := make([]uint64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	g.muNodes.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if !visit(id) {
			return
		}
	}
}

// IDToRank implements SequenceGraph. Panics if BuildRanks has not been
// called since the node set last changed, mirroring ErrRankNotBuilt as a
// programmer error rather than a runtime condition callers can recover from.
func (g *Graph) IDToRank(id uint64) int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	rank, ok := g.rankByID[id]
	if !ok {
		panic(ErrRankNotBuilt)
	}
	return rank
}

// RankToID implements SequenceGraph.
func (g *Graph) RankToID(rank int) uint64 {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	if rank < 1 || rank > len(g.idByRank) {
		panic(ErrRankNotBuilt)
	}
	return g.idByRank[rank-1]
}

// GetHandle implements SequenceGraph.
func (g *Graph) GetHandle(id uint64, isReverse bool) Handle {
	return NewHandle(id, isReverse)
}

// GetID implements SequenceGraph.
func (g *Graph) GetID(h Handle) uint64 { return h.ID() }

// GetIsReverse implements SequenceGraph.
func (g *Graph) GetIsReverse(h Handle) bool { return h.IsReverse() }

// Flip implements SequenceGraph.
func (g *Graph) Flip(h Handle) Handle { return h.Flip() }

// Forward implements SequenceGraph.
func (g *Graph) Forward(h Handle) Handle { return NewHandle(h.ID(), false) }

// GetLength implements SequenceGraph.
func (g *Graph) GetLength(h Handle) int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, ok := g.nodes[h.ID()]
	if !ok {
		panic(ErrNodeNotFound)
	}
	return len(n.sequence)
}

// GetSequence returns the node's sequence, reverse-complemented if the
// handle reads the reverse side.
func (g *Graph) GetSequence(h Handle) string {
	g.muNodes.RLock()
	n, ok := g.nodes[h.ID()]
	g.muNodes.RUnlock()
	if !ok {
		panic(ErrNodeNotFound)
	}
	if !h.IsReverse() {
		return n.sequence
	}
	return reverseComplement(n.sequence)
}

// HasNode reports whether id names a node currently in the graph.
func (g *Graph) HasNode(id uint64) bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

func reverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[len(seq)-1-i] = complementBase(seq[i])
	}
	return string(out)
}

func complementBase(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return b
	}
}
