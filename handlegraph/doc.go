// Package handlegraph defines the bidirected sequence-graph capability set
// consumed by the cactus and syncgraph packages, plus one concrete,
// thread-safe, in-memory implementation of it.
//
// A sequence graph is a bidirected multigraph: every node has two sides
// (forward and reverse), and an edge connects a side of one node to a
// side of another. A Handle names one such side — a (node ID, orientation)
// pair — and Flip toggles which side a Handle names.
//
// SequenceGraph is deliberately a small interface (a capability set, not a
// base class) so that callers can plug in their own storage — an on-disk
// graph, a memory-mapped one, or (as here) a plain map-backed Graph — as
// long as it can answer the handful of questions the decomposer needs:
// how many nodes, what the edges are, how long each node's sequence is,
// and a dense 1-based rank for each node so union-find can index into a
// flat array instead of a hash map.
//
// Graph, the concrete implementation, follows the same locking shape as
// lvlath's core.Graph: one sync.RWMutex for the node table, one for the
// edge table, so that reads of the two never contend with each other.
package handlegraph
