// Package cactalth decomposes bidirected sequence graphs into a
// hierarchical tree of snarls and chains, and hands out mutually
// exclusive locks on graph subregions for concurrent editing.
//
// Two embeddable cores live here:
//
//	cactus/     — the Integrated Snarl Finder: MergedAdjacencyGraph,
//	              three-edge-connected merge, simple-cycle enumeration,
//	              bridge-forest longest-path finding, and the
//	              snarl/chain emission state machine
//	syncgraph/  — the Graph Region Synchronizer: reader/writer locks on
//	              contextual node-id sets, with path-index replay on edit
//
// Supporting packages:
//
//	handlegraph/ — Handle, SequenceGraph, and a mutable in-memory Graph
//	pathindex/   — path-offset-to-handle indexing, singleflight-cached
//	unionfind/   — rank-space disjoint-set with group enumeration
//
// Neither core mutates what it doesn't own: the snarl finder is a pure
// function of a graph snapshot, and the synchronizer only mutates the
// node ids a caller's Lock currently holds. There is no CLI, no config
// file, and no wire protocol in scope; both cores are meant to be
// embedded in a larger genome-graph service.
//
//	go get github.com/adamnovak/cactalth
package cactalth
