package handlegraph

import (
	"errors"
	"sync"
)

// ErrPathNotFound indicates a path name has no embedded path in the graph.
var ErrPathNotFound = errors.New("handlegraph: path not found")

// ErrPathExists indicates AddPath was called with a name already in use.
var ErrPathExists = errors.New("handlegraph: path already exists")

// pathSet stores every embedded path under its own RWMutex, separate from
// muNodes/muEdges: reading a path's steps never contends with an unrelated
// node or edge lookup, matching Graph's existing per-concern locking split.
type pathSet struct {
	mu    sync.RWMutex
	paths map[string][]Handle
}

// AddPath embeds a named path as an ordered list of steps (handles into
// nodes already present in the graph). Node existence is not validated
// here; callers build paths after populating nodes.
func (g *Graph) AddPath(name string, steps []Handle) error {
	g.paths.mu.Lock()
	defer g.paths.mu.Unlock()
	if g.paths.paths == nil {
		g.paths.paths = make(map[string][]Handle)
	}
	if _, exists := g.paths.paths[name]; exists {
		return ErrPathExists
	}
	stored := make([]Handle, len(steps))
	copy(stored, steps)
	g.paths.paths[name] = stored
	return nil
}

// PathSteps returns a copy of the named path's ordered steps.
func (g *Graph) PathSteps(name string) ([]Handle, error) {
	g.paths.mu.RLock()
	defer g.paths.mu.RUnlock()
	steps, ok := g.paths.paths[name]
	if !ok {
		return nil, ErrPathNotFound
	}
	out := make([]Handle, len(steps))
	copy(out, steps)
	return out, nil
}

// RenumberPathStep replaces every step of oldID in every embedded path with
// newID, preserving orientation. Called by ApplyEdit itself after a node
// replacement, so path indices built over the old node id can
// be rebuilt against the new one via ApplyTranslations instead.
func (g *Graph) RenumberPathStep(oldID, newID uint64) {
	g.paths.mu.Lock()
	defer g.paths.mu.Unlock()
	for name, steps := range g.paths.paths {
		for i, h := range steps {
			if h.ID() == oldID {
				steps[i] = NewHandle(newID, h.IsReverse())
			}
		}
		g.paths.paths[name] = steps
	}
}
