package syncgraph

import (
	"fmt"
	"sync"

	"github.com/adamnovak/cactalth/handlegraph"
	"github.com/adamnovak/cactalth/pathindex"
)

// Graph is the capability set GraphSynchronizer requires: read access for
// context extraction and path indexing, plus the one mutation entry point
// (ApplyEdit) a Lock uses once it holds every node id an edit touches.
type Graph interface {
	pathindex.Graph
	HasNode(id uint64) bool
	GetHandle(id uint64, isReverse bool) handlegraph.Handle
	ContextAround(centerID uint64, contextBases int) (contained map[uint64]bool, periphery map[uint64]bool)
	ApplyEdit(e handlegraph.Edit) (handlegraph.Translation, error)
}

// GraphSynchronizer hands out mutually exclusive Locks on node-id sets
// covering a contextual region of graph, while letting disjoint regions
// proceed concurrently (spec.md §4.6).
type GraphSynchronizer struct {
	graph Graph

	// graphMu is the reader/writer mutex over the whole graph (spec.md §5
	// item 1). Readers include context extraction, path indexing, and
	// lock acquisition; the writer lease is held only briefly, during
	// Lock.ApplyEdit.
	graphMu sync.RWMutex

	// indexes is the path-index cache; its own internal locking covers
	// spec.md §5 item 2 (the reader/writer mutex over the index map).
	indexes *pathindex.Cache

	// lockedMu/lockedCond guard lockedIDs, the shared set of node ids
	// currently owned by some outstanding Lock (spec.md §5 item 3).
	lockedMu   sync.Mutex
	lockedCond *sync.Cond
	lockedIDs  map[uint64]bool
}

// New returns a GraphSynchronizer over g. includeSequence is forwarded to
// every path index the synchronizer builds.
func New(g Graph, includeSequence bool) *GraphSynchronizer {
	s := &GraphSynchronizer{
		graph:     g,
		indexes:   pathindex.NewCache(g, includeSequence),
		lockedIDs: make(map[uint64]bool),
	}
	s.lockedCond = sync.NewCond(&s.lockedMu)
	return s
}

// GetPathSequence returns the named path's cached full base sequence,
// under a read lease on the graph (spec.md §4.6 get_path_sequence).
func (s *GraphSynchronizer) GetPathSequence(name string) (string, error) {
	s.graphMu.RLock()
	defer s.graphMu.RUnlock()

	pi, err := s.indexes.Get(name)
	if err != nil {
		return "", fmt.Errorf("syncgraph: get path sequence %q: %w", name, err)
	}
	return pi.Sequence(), nil
}

// GetPathIndex returns the named path's PathIndex, building and caching
// it on first use (spec.md §4.6 get_path_index). The double-checked-
// locking contract itself lives in pathindex.Cache.Get; this method's
// only job is to hold the graph's read lease while that happens, since
// building an index is a graph read.
func (s *GraphSynchronizer) GetPathIndex(name string) (*pathindex.PathIndex, error) {
	s.graphMu.RLock()
	defer s.graphMu.RUnlock()

	pi, err := s.indexes.Get(name)
	if err != nil {
		return nil, fmt.Errorf("syncgraph: get path index %q: %w", name, err)
	}
	return pi, nil
}

// Lock builds a new, unacquired Lock over the neighborhood of
// (pathName, pathOffset). Call its Lock method to acquire it, mirroring
// spec.md §4.6's `Lock(path_name, path_offset, context_bases,
// reflect).lock()`.
//
// reflect is accepted for interface fidelity with the original
// contract but has no observable effect here: this module's context
// extraction (handlegraph.Graph.ContextAround) walks plain node-id
// adjacency rather than the original's tip-aware, orientation-sensitive
// traversal, so there is no dead end for reflection to turn around at.
func (s *GraphSynchronizer) Lock(pathName string, pathOffset, contextBases int, reflect bool) *Lock {
	return &Lock{
		sync:         s,
		pathName:     pathName,
		pathOffset:   pathOffset,
		contextBases: contextBases,
		reflect:      reflect,
	}
}
