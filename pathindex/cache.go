package pathindex

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/adamnovak/cactalth/handlegraph"
)

// Cache holds one PathIndex per path name, built lazily on first request
// and kept alive until the cache itself is discarded (spec.md §4.6:
// "Built indices live until teardown").
//
// Get implements the get_path_index double-checked-locking contract: a
// cache hit returns under a read lease without ever taking the write
// lease (resolving the Open Question spec.md flags — see DESIGN.md).
// Concurrent misses on the same name are collapsed into a single build via
// singleflight rather than a second locking layer: letting N callers race
// to build and insert the same entry would either duplicate work or
// require yet another mutex around the map write.
type Cache struct {
	mu      sync.RWMutex
	byName  map[string]*PathIndex
	group   singleflight.Group
	graph   Graph
	withSeq bool
}

// NewCache returns an empty Cache over g. includeSequence is forwarded to
// every PathIndex this cache builds.
func NewCache(g Graph, includeSequence bool) *Cache {
	return &Cache{
		byName:  make(map[string]*PathIndex),
		graph:   g,
		withSeq: includeSequence,
	}
}

// Get returns the PathIndex for name, building and caching it on first
// use. Concurrent callers requesting the same uncached name block on the
// same build and receive the same *PathIndex.
func (c *Cache) Get(name string) (*PathIndex, error) {
	c.mu.RLock()
	pi, ok := c.byName[name]
	c.mu.RUnlock()
	if ok {
		return pi, nil
	}

	v, err, _ := c.group.Do(name, func() (interface{}, error) {
		c.mu.RLock()
		if existing, ok := c.byName[name]; ok {
			c.mu.RUnlock()
			return existing, nil
		}
		c.mu.RUnlock()

		built, err := New(c.graph, name, c.withSeq)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.byName[name] = built
		c.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*PathIndex), nil
}

// ApplyTranslations replays translations into every currently cached
// index, matching spec.md §4.6's Lock.apply_edit contract ("replays the
// translations into every cached path index in place").
func (c *Cache) ApplyTranslations(translations []handlegraph.Translation) error {
	c.mu.RLock()
	indexes := make([]*PathIndex, 0, len(c.byName))
	for _, pi := range c.byName {
		indexes = append(indexes, pi)
	}
	c.mu.RUnlock()

	for _, pi := range indexes {
		if err := pi.ApplyTranslations(translations); err != nil {
			return err
		}
	}
	return nil
}
