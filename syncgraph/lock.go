package syncgraph

import (
	"errors"
	"fmt"

	"github.com/adamnovak/cactalth/handlegraph"
)

// ErrNodeNotLocked indicates ApplyEdit named a node id the Lock does not
// own (spec.md §7's "precondition breach").
var ErrNodeNotLocked = errors.New("syncgraph: edit references a node not covered by this lock")

// ErrAlreadyLocked indicates Lock was called twice on the same Lock value.
var ErrAlreadyLocked = errors.New("syncgraph: lock already acquired")

// ErrNotLocked indicates Unlock or ApplyEdit was called before Lock.
var ErrNotLocked = errors.New("syncgraph: lock not held")

// Lock is a graph region lock (spec.md §3): the node ids it reserves, the
// periphery it computed those ids from, and (once acquired) an implicit
// read lease on the global graph held only transiently during
// acquisition, not for the Lock's whole lifetime.
type Lock struct {
	sync *GraphSynchronizer

	pathName     string
	pathOffset   int
	contextBases int
	reflect      bool

	locked    bool
	contained map[uint64]bool
	periphery map[uint64]bool
	ids       map[uint64]bool
}

// Lock acquires the region lock: it extracts the neighborhood subgraph
// around the path position, computes contained and periphery ids, and
// atomically reserves every one of those ids in the synchronizer's shared
// locked-id set, blocking on a condition variable for as long as any
// required id is already owned by another outstanding Lock (spec.md
// §4.6). Invariant: no two outstanding locks share any node id.
//
// The graph read lease is re-taken fresh on every wait-loop iteration,
// not just once up front: a concurrent ApplyEdit can land while this
// goroutine is asleep on the condition variable and change which node ids
// the requested context actually covers, so the context must be
// recomputed under a fresh lease each time the predicate is evaluated
// (spec.md §5 item 3, §9 design notes). The read lease is held alongside
// lockedMu from the moment the predicate is satisfied through the id
// reservation, so no edit can land in that gap either.
func (l *Lock) Lock() error {
	if l.locked {
		return ErrAlreadyLocked
	}

	s := l.sync

	s.lockedMu.Lock()
	defer s.lockedMu.Unlock()

	var contained, periphery, ids map[uint64]bool
	for {
		s.graphMu.RLock()
		pi, err := s.indexes.Get(l.pathName)
		if err != nil {
			s.graphMu.RUnlock()
			return fmt.Errorf("syncgraph: lock %q@%d: %w", l.pathName, l.pathOffset, err)
		}
		center, err := pi.AtPosition(l.pathOffset)
		if err != nil {
			s.graphMu.RUnlock()
			return fmt.Errorf("syncgraph: lock %q@%d: %w", l.pathName, l.pathOffset, err)
		}
		centerID := s.graph.GetID(center)
		contained, periphery = s.graph.ContextAround(centerID, l.contextBases)

		ids = make(map[uint64]bool, len(contained)+len(periphery))
		for id := range contained {
			ids[id] = true
		}
		for id := range periphery {
			ids[id] = true
		}

		if !idsIntersect(s.lockedIDs, ids) {
			for id := range ids {
				s.lockedIDs[id] = true
			}
			s.graphMu.RUnlock()
			break
		}
		s.graphMu.RUnlock()
		s.lockedCond.Wait()
	}

	l.contained = contained
	l.periphery = periphery
	l.ids = ids
	l.locked = true
	return nil
}

// idsIntersect reports whether any id in want is already present in held.
func idsIntersect(held, want map[uint64]bool) bool {
	for id := range want {
		if held[id] {
			return true
		}
	}
	return false
}

// ApplyEdit promotes to a graph writer lease, validates that the edit's
// node id is currently locked, applies it, auto-extends this Lock to any
// newly created node id the edit produced, and replays the resulting
// translation into every cached path index (spec.md §4.6).
func (l *Lock) ApplyEdit(edit handlegraph.Edit) (handlegraph.Translation, error) {
	if !l.locked {
		return handlegraph.Translation{}, ErrNotLocked
	}
	if !l.ids[edit.NodeID] {
		return handlegraph.Translation{}, fmt.Errorf("syncgraph: apply edit to node %d: %w", edit.NodeID, ErrNodeNotLocked)
	}

	s := l.sync
	s.graphMu.Lock()
	translation, err := s.graph.ApplyEdit(edit)
	s.graphMu.Unlock()
	if err != nil {
		return handlegraph.Translation{}, fmt.Errorf("syncgraph: apply edit: %w", err)
	}

	// Auto-extend the lock to every node id the translation's "to" side
	// introduced, so a subsequent edit against the replacement node is
	// still covered by this same lock.
	s.lockedMu.Lock()
	for _, m := range translation.To.Mappings {
		if !l.ids[m.NodeID] {
			l.ids[m.NodeID] = true
			s.lockedIDs[m.NodeID] = true
		}
	}
	s.lockedMu.Unlock()

	if err := s.indexes.ApplyTranslations([]handlegraph.Translation{translation}); err != nil {
		return handlegraph.Translation{}, fmt.Errorf("syncgraph: replay translation: %w", err)
	}

	return translation, nil
}

// Unlock releases every id this Lock owns and wakes every goroutine
// waiting on the synchronizer's condition variable so they can
// re-evaluate their own availability predicates (spec.md §4.6).
func (l *Lock) Unlock() error {
	if !l.locked {
		return ErrNotLocked
	}

	s := l.sync
	s.lockedMu.Lock()
	for id := range l.ids {
		delete(s.lockedIDs, id)
	}
	s.lockedCond.Broadcast()
	s.lockedMu.Unlock()

	l.locked = false
	return nil
}
