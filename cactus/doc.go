// Package cactus implements the Integrated Snarl Finder: a three-pass
// decomposition of a bidirected handlegraph.SequenceGraph into a
// hierarchical tree of snarls (generalized bubbles) and chains.
//
// The three passes, run in order by SnarlFinder.ForEachSnarlPostorder:
//
//  1. Adjacency-component union (MergedAdjacencyGraph): collapse every
//     maximal set of handles mutually reachable via the "other end"
//     relation into one node of a derived multigraph.
//  2. Three-edge-connected merge (mergeThreeEdgeConnected, a Gomory-Hu
//     tree built with Gusfield's algorithm): further collapse pairwise
//     3-edge-connected nodes, producing a cactus graph in which every
//     edge lies on at most one simple cycle.
//  3. Bridge-forest construction and rooting (findCycles,
//     findLongestForestPaths) followed by guided emission (runEmission):
//     collapse every simple cycle to a point to get a forest, root each
//     tree/cycle at its longest path or cycle, and walk child-before-
//     parent to emit snarls and chains.
//
// All three passes are iterative — explicit frame stacks, never Go call
// recursion — because input graphs can be tens of thousands of nodes deep
// (spec.md 9, "Deep recursion"). The whole package is read-only with
// respect to the input SequenceGraph: it builds its own union-finds and
// maps and never calls a mutating method on the graph it decomposes.
package cactus
