// Package unionfind provides a disjoint-set (union-find) data structure
// over a dense integer rank space, with path compression, union by rank,
// and — beyond the minimal Find/Union most graph algorithms need — group
// enumeration: iterating every group's head, every member of a group, and
// every (head, member) pairing.
//
// The cactus package needs that enumeration because a MergedAdjacencyGraph
// is, at its heart, a DisjointSet over handle-derived indices: the
// three-edge-connected merge, the simple-cycle DFS, and the bridge-forest
// DFS all need to walk "everything in this component," not just answer
// "are these two things in the same component."
//
// Grounded on the disjoint-set used inline in prim_kruskal.Kruskal
// (path compression + union by rank over a map), generalized here to a
// dense []int-backed structure so it can be built once for a graph with
// tens of thousands of nodes without per-union map allocation.
package unionfind
