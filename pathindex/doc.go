// Package pathindex maps path base offsets to graph node-sides and keeps
// those mappings current as a graph is edited.
//
// A PathIndex is built once per path name and cached in a Cache keyed by
// that name. Building an index walks the whole path, so a Cache collapses
// concurrent misses on the same name into a single build via
// golang.org/x/sync/singleflight rather than letting every caller redo the
// walk (or racing to write the same map entry).
package pathindex
