// Package syncgraph hands out mutually exclusive locks on node-id sets
// covering a contextual region around a named path position, while
// permitting concurrent read-only use of disjoint regions and replaying
// edits into cached path indices in place.
//
// A GraphSynchronizer composes three layers of synchronization (spec.md
// §5): a reader/writer mutex over the whole graph, a reader/writer mutex
// over the path-index cache, and a plain mutex plus condition variable
// guarding the set of currently locked node ids. Callers acquire a Lock,
// optionally ApplyEdit through it, and Unlock it; GetPathSequence and
// GetPathIndex read cached path indices under the graph's read lease.
package syncgraph
