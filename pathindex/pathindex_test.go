package pathindex_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamnovak/cactalth/handlegraph"
	"github.com/adamnovak/cactalth/pathindex"
)

func buildLinearPath(t *testing.T) (*handlegraph.Graph, []handlegraph.Handle) {
	t.Helper()
	g := handlegraph.NewGraph()
	a, err := g.AddNode(1, "AAAA")
	require.NoError(t, err)
	b, err := g.AddNode(2, "CCCCCC")
	require.NoError(t, err)
	c, err := g.AddNode(3, "GG")
	require.NoError(t, err)
	steps := []handlegraph.Handle{
		g.GetHandle(a, false),
		g.GetHandle(b, false),
		g.GetHandle(c, false),
	}
	require.NoError(t, g.AddPath("chr1", steps))
	return g, steps
}

// TestNew_BuildsOffsetTable checks that AtPosition maps offsets to the
// right node-side across step boundaries.
func TestNew_BuildsOffsetTable(t *testing.T) {
	g, steps := buildLinearPath(t)
	pi, err := pathindex.New(g, "chr1", true)
	require.NoError(t, err)

	assert.Equal(t, 12, pi.Len())
	assert.Equal(t, "AAAACCCCCCGG", pi.Sequence())

	h, err := pi.AtPosition(0)
	require.NoError(t, err)
	assert.Equal(t, steps[0], h)

	h, err = pi.AtPosition(3)
	require.NoError(t, err)
	assert.Equal(t, steps[0], h)

	h, err = pi.AtPosition(4)
	require.NoError(t, err)
	assert.Equal(t, steps[1], h)

	h, err = pi.AtPosition(11)
	require.NoError(t, err)
	assert.Equal(t, steps[2], h)
}

// TestAtPosition_OutOfRange checks the error path for offsets beyond the
// path's total length.
func TestAtPosition_OutOfRange(t *testing.T) {
	g, _ := buildLinearPath(t)
	pi, err := pathindex.New(g, "chr1", false)
	require.NoError(t, err)

	_, err = pi.AtPosition(-1)
	assert.ErrorIs(t, err, pathindex.ErrOffsetOutOfRange)

	_, err = pi.AtPosition(12)
	assert.ErrorIs(t, err, pathindex.ErrOffsetOutOfRange)
}

// TestNew_UnknownPath checks that building an index over an unembedded
// path name fails.
func TestNew_UnknownPath(t *testing.T) {
	g := handlegraph.NewGraph()
	_, err := pathindex.New(g, "missing", false)
	assert.Error(t, err)
}

// TestApplyTranslations_IgnoresUnrelatedPath checks that a translation
// naming a different path leaves the index untouched.
func TestApplyTranslations_IgnoresUnrelatedPath(t *testing.T) {
	g, _ := buildLinearPath(t)
	pi, err := pathindex.New(g, "chr1", true)
	require.NoError(t, err)

	before := pi.Sequence()
	err = pi.ApplyTranslations([]handlegraph.Translation{
		{From: handlegraph.PathMapping{Path: "chr2"}, To: handlegraph.PathMapping{Path: "chr2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, before, pi.Sequence())
}

// TestCache_GetBuildsOnce checks that concurrent Get calls for the same
// name all observe the same *PathIndex and the underlying graph is walked
// exactly once (verified indirectly: singleflight collapses the misses,
// so this mainly guards against a panic or a race under -race).
func TestCache_GetBuildsOnce(t *testing.T) {
	g, _ := buildLinearPath(t)
	cache := pathindex.NewCache(g, false)

	const n = 20
	results := make([]*pathindex.PathIndex, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			pi, err := cache.Get("chr1")
			require.NoError(t, err)
			results[i] = pi
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
}

// TestCache_ApplyTranslations_RebuildsCachedIndex checks that replaying a
// translation naming a cached index's path rebuilds that index in place
// without error; the underlying path is not edited, so the rebuilt
// sequence is unchanged.
func TestCache_ApplyTranslations_RebuildsCachedIndex(t *testing.T) {
	g, steps := buildLinearPath(t)
	cache := pathindex.NewCache(g, true)

	pi, err := cache.Get("chr1")
	require.NoError(t, err)
	assert.Equal(t, "AAAACCCCCCGG", pi.Sequence())

	// Simulate an edit that replaced the middle node's sequence: append a
	// fresh node under the same id-slot semantics by adding a new path
	// with the same name is not possible (AddPath rejects duplicates), so
	// instead exercise the translation-touches-this-path branch directly.
	err = cache.ApplyTranslations([]handlegraph.Translation{
		{From: handlegraph.PathMapping{Path: "chr1"}, To: handlegraph.PathMapping{Path: "chr1"}},
	})
	require.NoError(t, err)
	// Sequence is unchanged since the underlying steps didn't move, but
	// the rebuild path must not error and must preserve correctness.
	assert.Equal(t, "AAAACCCCCCGG", pi.Sequence())
	_ = steps
}
