package handlegraph

import "errors"

// Sentinel errors for handlegraph operations.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node ID.
	ErrNodeNotFound = errors.New("handlegraph: node not found")

	// ErrNodeExists indicates AddNode was called with an ID already in use.
	ErrNodeExists = errors.New("handlegraph: node already exists")

	// ErrEmptySequence indicates a node was created with a zero-length sequence.
	ErrEmptySequence = errors.New("handlegraph: node sequence is empty")

	// ErrRankNotBuilt indicates IDToRank/RankToID was called before BuildRanks.
	ErrRankNotBuilt = errors.New("handlegraph: rank index not built")
)

// Handle names one oriented side ("end") of a node: the node's ID plus
// whether it is being read in reverse-complement orientation. Handle is a
// small value type, safe to copy and use as a map key.
type Handle struct {
	id        uint64
	isReverse bool
}

// NewHandle constructs a Handle directly from a node ID and orientation.
// Graph.GetHandle returns the same value; neither checks that the ID
// names a node in any graph.
func NewHandle(id uint64, isReverse bool) Handle {
	return Handle{id: id, isReverse: isReverse}
}

// ID returns the node ID this Handle names a side of.
func (h Handle) ID() uint64 { return h.id }

// IsReverse reports whether this Handle reads the node's sequence
// reverse-complemented.
func (h Handle) IsReverse() bool { return h.isReverse }

// Flip returns the Handle for the opposite side of the same node.
func (h Handle) Flip() Handle { return Handle{id: h.id, isReverse: !h.isReverse} }

// Edge is a single bidirected connection between two node sides, as
// visited by SequenceGraph.ForEachEdge. By convention an edge (A, B)
// means A's side connects to B's side; the decomposer treats it as
// connecting into A and, via Flip(B), out of B.
type Edge struct {
	Left  Handle
	Right Handle
}

// Translation records how one path (From) in the graph was replaced by
// another (To) after an edit, as produced by Graph.ApplyEdit. Each mapping
// names the node a segment of the new or old path lies on and the base
// offset within that node where the segment starts.
type Translation struct {
	From PathMapping
	To   PathMapping
}

// PathMapping is one entry of a Translation: a path fragment expressed as
// an ordered list of (node, offset) steps.
type PathMapping struct {
	Path     string
	Mappings []NodeOffset
}

// NodeOffset names a base position within a node: the node ID and the
// 0-based offset of a base within that node's forward-strand sequence.
type NodeOffset struct {
	NodeID uint64
	Offset int
}

// SequenceGraph is the capability set the cactus decomposer requires of
// its input. It exposes only read operations: the decomposer never
// mutates the graph it decomposes (spec Non-goal).
type SequenceGraph interface {
	// GetNodeCount returns the number of nodes in the graph.
	GetNodeCount() int

	// ForEachEdge calls visit once per edge, in the graph's own edge
	// order. If visit returns false, iteration stops early.
	ForEachEdge(visit func(a, b Handle) bool)

	// ForEachNode calls visit once per node ID, in the graph's own node
	// order. If visit returns false, iteration stops early.
	ForEachNode(visit func(id uint64) bool)

	// IDToRank returns the dense 1-based rank of the given node ID.
	IDToRank(id uint64) int

	// RankToID is the inverse of IDToRank.
	RankToID(rank int) uint64

	// GetHandle returns the Handle for the given node ID and orientation.
	GetHandle(id uint64, isReverse bool) Handle

	// GetID returns the node ID a Handle names a side of.
	GetID(h Handle) uint64

	// GetIsReverse reports a Handle's orientation.
	GetIsReverse(h Handle) bool

	// Flip returns the Handle for the opposite side of the same node.
	Flip(h Handle) Handle

	// GetLength returns the node's base length. It does not depend on
	// orientation: GetLength(h) == GetLength(Flip(h)).
	GetLength(h Handle) int

	// Forward returns the forward-orientation Handle for whatever node h
	// names, regardless of h's own orientation.
	Forward(h Handle) Handle
}
