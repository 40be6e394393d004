package pathindex

import (
	"errors"
	"fmt"
	"sync"

	"github.com/adamnovak/cactalth/handlegraph"
)

// ErrOffsetOutOfRange indicates AtPosition was called with an offset past
// the end of the path.
var ErrOffsetOutOfRange = errors.New("pathindex: offset out of range")

// Graph is the capability set PathIndex needs from a sequence graph:
// enough to walk one named embedded path and read node lengths/sequence.
type Graph interface {
	PathSteps(name string) ([]handlegraph.Handle, error)
	GetLength(h handlegraph.Handle) int
	GetSequence(h handlegraph.Handle) string
	Flip(h handlegraph.Handle) handlegraph.Handle
	GetID(h handlegraph.Handle) uint64
}

// step is one entry of a PathIndex's offset table: the handle occupying
// the path at Offset, running for Length bases.
type step struct {
	Offset int
	Length int
	Handle handlegraph.Handle
}

// PathIndex maps base offsets along one named path to the node-side
// occupying that offset, mirroring the C++ PathIndex's at_position
// contract (spec.md §6). Construction walks the whole path once; lookups
// afterward are a binary search over the offset table.
//
// A PathIndex is immutable once built except for ApplyTranslations, which
// rebuilds the whole offset table in place under mu. All exported methods are
// safe for concurrent use.
type PathIndex struct {
	mu       sync.RWMutex
	graph    Graph
	name     string
	steps    []step
	sequence string
	withSeq  bool
	total    int
}

// New builds a PathIndex over the named path. includeSequence controls
// whether the path's concatenated base sequence is also materialized (the
// synchronizer's get_path_sequence needs it; at_position alone does not).
func New(g Graph, pathName string, includeSequence bool) (*PathIndex, error) {
	pi := &PathIndex{graph: g, name: pathName, withSeq: includeSequence}
	if err := pi.rebuild(); err != nil {
		return nil, err
	}
	return pi, nil
}

// rebuild walks the path fresh and replaces the offset table and cached
// sequence. It takes no lock itself: ApplyTranslations calls it under mu,
// and New calls it before the index is shared with anyone.
func (pi *PathIndex) rebuild() error {
	steps, err := pi.graph.PathSteps(pi.name)
	if err != nil {
		return fmt.Errorf("pathindex: build %q: %w", pi.name, err)
	}

	table := make([]step, 0, len(steps))
	var seq []byte
	offset := 0
	for _, h := range steps {
		length := pi.graph.GetLength(h)
		table = append(table, step{Offset: offset, Length: length, Handle: h})
		if pi.withSeq {
			seq = append(seq, pi.graph.GetSequence(h)...)
		}
		offset += length
	}

	pi.steps = table
	pi.total = offset
	if pi.withSeq {
		pi.sequence = string(seq)
	}
	return nil
}

// AtPosition maps a 0-based path base offset to the node-side handle
// occupying that base, per spec.md §6's at_position contract.
func (pi *PathIndex) AtPosition(offset int) (handlegraph.Handle, error) {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	if offset < 0 || offset >= pi.total {
		var zero handlegraph.Handle
		return zero, ErrOffsetOutOfRange
	}

	// Binary search the offset table for the step containing offset.
	lo, hi := 0, len(pi.steps)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if pi.steps[mid].Offset <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return pi.steps[lo].Handle, nil
}

// Sequence returns the path's cached concatenated base sequence. Only
// meaningful if the index was built with includeSequence true.
func (pi *PathIndex) Sequence() string {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	return pi.sequence
}

// Len returns the path's total base length.
func (pi *PathIndex) Len() int {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	return pi.total
}

// ApplyTranslations replays a batch of from/to path-replacement records
// against this index in place (spec.md §6). Only translations naming this
// index's own path are relevant; the rest are ignored, since a
// synchronizer replays the same batch against every cached index.
func (pi *PathIndex) ApplyTranslations(translations []handlegraph.Translation) error {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	touches := false
	for _, tr := range translations {
		if tr.From.Path == pi.name || tr.To.Path == pi.name {
			touches = true
			break
		}
	}
	if !touches {
		return nil
	}
	return pi.rebuild()
}
