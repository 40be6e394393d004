package cactus

import (
	"sort"

	"github.com/adamnovak/cactalth/handlegraph"
)

// bridgeFrame is one stack frame of the iterative longest-path DFS over
// the bridge forest (spec.md 4.4).
type bridgeFrame struct {
	head        handlegraph.Handle
	parentEdge  handlegraph.Handle
	hasParent   bool
	outgoing    []handlegraph.Handle
	pos         int
	leafPathLen int

	deepestChildEdge       handlegraph.Handle
	hasDeepestChild        bool
	deepestLen             int
	secondDeepestChildEdge handlegraph.Handle
	hasSecondDeepestChild  bool
	secondDeepestLen       int

	longestSubtreeRoot   handlegraph.Handle
	longestSubtreeLength int
}

// deepestChild records, per bridge-forest head, the outgoing edge toward
// its deepest and second-deepest child, as maintained by
// findLongestForestPaths and consulted (and rewritten) by the emission
// state machine.
type deepestChild struct {
	Deepest       handlegraph.Handle
	HasDeepest    bool
	SecondDeepest handlegraph.Handle
	HasSecond     bool
}

// forestPathResult is what findLongestForestPaths reports for a single
// connected component (tree) of the bridge forest.
type forestPathResult struct {
	root         handlegraph.Handle
	pathLength   int
	pathEdges    []handlegraph.Handle // ordered edge list of the longest leaf-leaf path, or nil
	usedPath     bool                 // true if the leaf-leaf path beat the seeding cycle
}

// findLongestForestPaths implements spec.md 4.4: for every connected
// component of the bridge forest, find the longest leaf-to-leaf path,
// compare it against the longest simple cycle already found for that
// component (cycles collapse to single bridge-forest nodes, so a
// component's seeding cycle length is looked up by its root head), and
// re-root the deepest-child map toward that path when it wins.
func findLongestForestPaths(
	forest *MergedAdjacencyGraph,
	cycles []componentCycle,
) (map[handlegraph.Handle]*deepestChild, []forestPathResult) {
	deepest := make(map[handlegraph.Handle]*deepestChild)
	visited := make(map[handlegraph.Handle]bool)

	cycleLenByRoot := make(map[handlegraph.Handle]int)
	for _, c := range cycles {
		if c.hasCycle {
			cycleLenByRoot[forest.Find(c.root)] = c.length
		}
	}

	// Root selection: longest cycles first (descending), then whatever is
	// left, matching spec.md 4.4's rooting bias toward backbone structure.
	var roots []handlegraph.Handle
	seenRoot := make(map[handlegraph.Handle]bool)
	sortedCycles := append([]componentCycle(nil), cycles...)
	sort.SliceStable(sortedCycles, func(i, j int) bool { return sortedCycles[i].length > sortedCycles[j].length })
	for _, c := range sortedCycles {
		if !c.hasCycle {
			continue
		}
		r := forest.Find(c.root)
		if !seenRoot[r] {
			seenRoot[r] = true
			roots = append(roots, r)
		}
	}
	forest.ForEachHead(func(h handlegraph.Handle) {
		if !seenRoot[h] {
			seenRoot[h] = true
			roots = append(roots, h)
		}
	})

	var results []forestPathResult
	for _, root := range roots {
		if visited[root] {
			continue
		}
		results = append(results, dfsForest(forest, root, visited, deepest, cycleLenByRoot[root]))
	}
	return deepest, results
}

func dfsForest(
	forest *MergedAdjacencyGraph,
	root handlegraph.Handle,
	visited map[handlegraph.Handle]bool,
	deepest map[handlegraph.Handle]*deepestChild,
	rootCycleLength int,
) forestPathResult {
	g := forest.Graph()

	var stack []*bridgeFrame
	push := func(head, parentEdge handlegraph.Handle, hasParent bool) {
		var skip handlegraph.Handle
		if hasParent {
			skip = g.Flip(parentEdge)
		}
		var outgoing []handlegraph.Handle
		forest.ForEachMember(head, func(member handlegraph.Handle) {
			if hasParent && member == skip {
				return
			}
			outgoing = append(outgoing, member)
		})
		stack = append(stack, &bridgeFrame{head: head, parentEdge: parentEdge, hasParent: hasParent, outgoing: outgoing})
		visited[head] = true
		deepest[head] = &deepestChild{}
	}

	var zero handlegraph.Handle
	push(root, zero, false)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.pos >= len(top.outgoing) {
			// Post-order: fold this frame into its parent.
			finishFrame(g, top)
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				absorbChild(g, deepest, parent, top)
			} else {
				// Root frame: record its final state for the caller.
				dc := deepest[top.head]
				dc.Deepest, dc.HasDeepest = top.deepestChildEdge, top.hasDeepestChild
				dc.SecondDeepest, dc.HasSecond = top.secondDeepestChildEdge, top.hasSecondDeepestChild

				result := forestPathResult{root: root, pathLength: rootCycleLength}
				if top.longestSubtreeLength > rootCycleLength {
					result.pathLength = top.longestSubtreeLength
					result.usedPath = true
					result.pathEdges = materializePath(g, deepest, root, top.longestSubtreeRoot)
					rerootDeepest(g, deepest, root, top.longestSubtreeRoot)
				}
				return result
			}
			continue
		}

		member := top.outgoing[top.pos]
		top.pos++
		other := g.Flip(member)
		childHead := forest.Find(other)
		if childHead == top.head || visited[childHead] {
			continue
		}
		push(childHead, member, true)
	}

	return forestPathResult{root: root, pathLength: rootCycleLength}
}

// finishFrame commits a frame's own deepest/second-deepest state into its
// longestSubtreeLength/Root convergence tracking (spec.md 4.4 step 2),
// before the frame is folded into its parent.
func finishFrame(g handlegraph.SequenceGraph, f *bridgeFrame) {
	f.longestSubtreeRoot = f.head
	f.longestSubtreeLength = 0
	if f.hasDeepestChild && f.hasSecondDeepestChild {
		converge := deepestLeafLen(g, f, f.deepestChildEdge) + deepestLeafLen(g, f, f.secondDeepestChildEdge)
		if converge > f.longestSubtreeLength {
			f.longestSubtreeLength = converge
		}
	}
}

// deepestLeafLen returns the leaf path length recorded for edge when it is
// f's deepest or second-deepest child edge, and 0 otherwise. absorbChild
// stores those lengths in deepestLen/secondDeepestLen as each child
// finishes, so nothing is recomputed here.
func deepestLeafLen(_ handlegraph.SequenceGraph, f *bridgeFrame, edge handlegraph.Handle) int {
	if f.hasDeepestChild && edge == f.deepestChildEdge {
		return f.deepestLen
	}
	if f.hasSecondDeepestChild && edge == f.secondDeepestChildEdge {
		return f.secondDeepestLen
	}
	return 0
}

// absorbChild folds a just-finished child frame into its parent's
// deepest/second-deepest tracking and propagates the best leaf-leaf
// convergence point seen so far upward (spec.md 4.4 steps 1-2).
func absorbChild(g handlegraph.SequenceGraph, deepest map[handlegraph.Handle]*deepestChild, parent, child *bridgeFrame) {
	childLen := child.leafPathLen + g.GetLength(child.parentEdge)

	switch {
	case !parent.hasDeepestChild:
		parent.deepestChildEdge, parent.hasDeepestChild = child.parentEdge, true
		parent.deepestLen = childLen
	case childLen > parent.deepestLen:
		parent.secondDeepestChildEdge, parent.hasSecondDeepestChild = parent.deepestChildEdge, parent.hasDeepestChild
		parent.secondDeepestLen = parent.deepestLen
		parent.deepestChildEdge = child.parentEdge
		parent.deepestLen = childLen
	case !parent.hasSecondDeepestChild || childLen > parent.secondDeepestLen:
		parent.secondDeepestChildEdge, parent.hasSecondDeepestChild = child.parentEdge, true
		parent.secondDeepestLen = childLen
	}
	if childLen > parent.leafPathLen {
		parent.leafPathLen = childLen
	}

	if child.longestSubtreeLength > parent.longestSubtreeLength {
		parent.longestSubtreeLength = child.longestSubtreeLength
		parent.longestSubtreeRoot = child.longestSubtreeRoot
	}

	deepest[child.head].Deepest, deepest[child.head].HasDeepest = child.deepestChildEdge, child.hasDeepestChild
	deepest[child.head].SecondDeepest, deepest[child.head].HasSecond = child.secondDeepestChildEdge, child.hasSecondDeepestChild
}

// materializePath walks second_deepest_child_edge down one side of the
// convergence point and deepest_child_edge down the other, reversing and
// flipping the first half, to produce the ordered edge list of the
// longest leaf-leaf path (spec.md 4.4).
func materializePath(g handlegraph.SequenceGraph, deepest map[handlegraph.Handle]*deepestChild, root, convergence handlegraph.Handle) []handlegraph.Handle {
	var firstHalf []handlegraph.Handle
	cur := convergence
	for {
		dc, ok := deepest[cur]
		if !ok || !dc.HasSecond {
			break
		}
		firstHalf = append(firstHalf, dc.SecondDeepest)
		cur = g.Flip(dc.SecondDeepest)
	}
	for i, j := 0, len(firstHalf)-1; i < j; i, j = i+1, j-1 {
		firstHalf[i], firstHalf[j] = firstHalf[j], firstHalf[i]
	}
	for i := range firstHalf {
		firstHalf[i] = firstHalf[i].Flip()
	}

	var secondHalf []handlegraph.Handle
	cur = convergence
	for {
		dc, ok := deepest[cur]
		if !ok || !dc.HasDeepest {
			break
		}
		secondHalf = append(secondHalf, dc.Deepest)
		cur = g.Flip(dc.Deepest)
	}

	return append(firstHalf, secondHalf...)
}

// rerootDeepest re-roots the deepest-child map along the path from root
// to convergence so downstream emission can walk outward from the new
// backbone (spec.md 4.4's "Re-root" step). For each edge on that path we
// recompute the endpoints' deepest/second-deepest so the relationship
// points away from the new root rather than the DFS root.
func rerootDeepest(g handlegraph.SequenceGraph, deepest map[handlegraph.Handle]*deepestChild, root, convergence handlegraph.Handle) {
	// Walk root -> convergence by repeatedly following whichever of
	// deepest/second-deepest heads toward convergence; since the DFS
	// only recorded convergence as a descendant of root, following
	// "deepest" from root reaches it (that is how longestSubtreeRoot
	// propagated up in absorbChild).
	cur := root
	for cur != convergence {
		dc, ok := deepest[cur]
		if !ok || !dc.HasDeepest {
			return
		}
		next := g.Flip(dc.Deepest)
		// Flip the parent/child relationship: next's deepest edge now
		// points back at cur via the reverse of the edge we just walked.
		reverse := dc.Deepest.Flip()
		nextDC := deepest[next]
		if nextDC == nil {
			nextDC = &deepestChild{}
			deepest[next] = nextDC
		}
		if !nextDC.HasDeepest {
			nextDC.Deepest, nextDC.HasDeepest = reverse, true
		} else if !nextDC.HasSecond {
			nextDC.SecondDeepest, nextDC.HasSecond = reverse, true
		}
		cur = next
	}
}
