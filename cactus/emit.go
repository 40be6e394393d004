package cactus

import "github.com/adamnovak/cactalth/handlegraph"

// Bounds names a snarl's two boundary handles: Start reads out of the
// snarl into its interior, End reads out of the snarl the other way.
// The zero Bounds (both handles zero-valued) is the sentinel used for
// the top-level root snarl of a connected component, which has no
// enclosing parent.
type Bounds struct {
	Start handlegraph.Handle
	End   handlegraph.Handle
}

func (b Bounds) isRoot() bool {
	var zero handlegraph.Handle
	return b.Start == zero && b.End == zero
}

// emitFrame is one stack frame of the snarl/chain emission state machine
// (spec.md 4.5).
type emitFrame struct {
	kind        frameKind
	bounds      Bounds
	parent      Bounds
	sawChildren bool
	expanded    bool
	todo        []handlegraph.Handle
}

type frameKind int

const (
	frameSnarl frameKind = iota
	frameChain
)

// emitState carries every structure the emission state machine reads or
// mutates while walking one connected component.
type emitState struct {
	cactus         *MergedAdjacencyGraph
	forest         *MergedAdjacencyGraph
	nextAlongCycle map[handlegraph.Handle]handlegraph.Handle
	deepest        map[handlegraph.Handle]*deepestChild
	visitedNode    map[uint64]bool
	emit           func(parent *Bounds, bounds Bounds)
}

// runEmission drives the emission state machine for every connected
// component of the graph that still has unvisited nodes, per spec.md
// 4.5's termination rule.
func runEmission(
	g handlegraph.SequenceGraph,
	cactus *MergedAdjacencyGraph,
	forest *MergedAdjacencyGraph,
	nextAlongCycle map[handlegraph.Handle]handlegraph.Handle,
	deepest map[handlegraph.Handle]*deepestChild,
	cycles []componentCycle,
	paths []forestPathResult,
	emit func(parent *Bounds, bounds Bounds),
) {
	st := &emitState{
		cactus:         cactus,
		forest:         forest,
		nextAlongCycle: nextAlongCycle,
		deepest:        deepest,
		visitedNode:    make(map[uint64]bool),
		emit:           emit,
	}

	cycleByRoot := make(map[handlegraph.Handle]componentCycle)
	for _, c := range cycles {
		if c.hasCycle {
			cycleByRoot[forest.Find(c.root)] = c
		}
	}

	for _, p := range paths {
		root := forest.Find(p.root)
		var seed Bounds
		if p.usedPath && len(p.pathEdges) > 0 {
			first := p.pathEdges[0]
			last := p.pathEdges[len(p.pathEdges)-1]
			seed = Bounds{Start: first, End: last}
		} else if c, ok := cycleByRoot[root]; ok {
			// Seed a synthetic chain whose start and end are both the
			// cycle's representative edge, forcing decomposition of the
			// cycle as a chain (spec.md 4.5).
			seed = Bounds{Start: c.closingEdge, End: c.closingEdge}
		} else {
			continue
		}
		st.walkComponent(seed)
	}

	// Any node the pipeline never reached (isolated nodes with no edges
	// at all, or connected components with neither a cycle nor a path
	// seed) still needs a trivial containing snarl, per spec.md 4.5's
	// termination rule ("repeat the per-component traversal while any
	// node in the original graph remains unvisited").
	g.ForEachNode(func(id uint64) bool {
		if st.visitedNode[id] {
			return true
		}
		st.visitedNode[id] = true
		emit(nil, Bounds{
			Start: g.GetHandle(id, false),
			End:   g.GetHandle(id, true),
		})
		return true
	})
}

// walkComponent runs one component's stack-based emission starting from
// a synthetic top-level chain frame seeded at seed.
func (st *emitState) walkComponent(seed Bounds) {
	root := &emitFrame{kind: frameChain, bounds: seed}
	stack := []*emitFrame{root}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if !top.expanded {
			st.expand(top)
			top.expanded = true
		}
		if len(top.todo) == 0 {
			// Frame fully processed: emit (if it's a real snarl bound)
			// and pop.
			if top.kind == frameSnarl && !top.bounds.isRoot() {
				if top.parent.isRoot() {
					st.emit(nil, top.bounds)
				} else {
					parent := top.parent
					st.emit(&parent, top.bounds)
				}
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1].sawChildren = true
			}
			continue
		}

		edge := top.todo[0]
		top.todo = top.todo[1:]

		switch top.kind {
		case frameSnarl:
			stack = st.dispatchSnarlEdge(stack, top, edge)
		case frameChain:
			// The child snarl's reported parent is this chain's own
			// enclosing snarl (its grandparent in the frame stack), not
			// the chain frame itself: chains are bookkeeping, not part
			// of the reported snarl tree.
			child := &emitFrame{
				kind:   frameSnarl,
				bounds: Bounds{Start: edge, End: st.nextAlongCycle[edge]},
				parent: top.parent,
			}
			stack = append(stack, child)
		}
	}
}

// expand fills in a frame's todo list on first visit, per spec.md 4.5's
// "Frame behavior on first expansion".
func (st *emitState) expand(f *emitFrame) {
	switch f.kind {
	case frameSnarl:
		if !f.bounds.isRoot() {
			st.visitedNode[st.cactus.Graph().GetID(f.bounds.Start)] = true
			st.visitedNode[st.cactus.Graph().GetID(f.bounds.End)] = true
		}
		startHead := st.cactus.Find(f.bounds.Start)
		g := st.cactus.Graph()
		st.cactus.ForEachMember(startHead, func(member handlegraph.Handle) {
			if !f.bounds.isRoot() {
				if member == f.bounds.Start || member == g.Flip(f.bounds.End) {
					return // bounding edge
				}
			}
			f.todo = append(f.todo, member)
		})
	case frameChain:
		// Walk bounds.Start -> ... -> bounds.End following
		// next_along_cycle, collecting every edge on the way. bounds.Start
		// names the departure half of the edge at the chain's first head;
		// each subsequent hop crosses into the next head (a flip) before
		// looking up that head's own next_along_cycle pairing. Every
		// pushed todo item is normalized to whichever orientation is
		// actually a next_along_cycle key, since that is what later
		// dispatch (next_along_cycle[t]) requires.
		visited := make(map[handlegraph.Handle]bool)
		cur := f.bounds.Start
		first := true
		for {
			key := cur
			if _, ok := st.nextAlongCycle[key]; !ok {
				key = key.Flip()
			}
			if visited[key] {
				break // defensive: avoid an infinite loop on a malformed cycle
			}
			visited[key] = true
			f.todo = append(f.todo, key)

			if key == f.bounds.End && !first {
				break
			}
			first = false

			next, ok := st.nextAlongCycle[key]
			if !ok {
				break
			}
			cur = next.Flip()
		}
	}
}

// dispatchSnarlEdge classifies one queued snarl edge and either queues a
// child frame or handles it inline, per spec.md 4.5's per-task dispatch.
func (st *emitState) dispatchSnarlEdge(stack []*emitFrame, top *emitFrame, edge handlegraph.Handle) []*emitFrame {
	g := st.cactus.Graph()
	other := g.Flip(edge)
	incomingHead := st.cactus.Find(edge)
	outgoingHead := st.cactus.Find(other)

	if outgoingHead == incomingHead {
		// Self-loop: trivial contained chain. Its node counts as visited
		// so it is not reported as a snarl later.
		st.visitedNode[g.GetID(edge)] = true
		return stack
	}

	if next, ok := st.nextAlongCycle[edge]; ok {
		// Cycle edge: recurse as a chain bounded by (next, edge).
		child := &emitFrame{kind: frameChain, bounds: Bounds{Start: next, End: edge}, parent: top.bounds}
		return append(stack, child)
	}

	incomingForestHead := st.forest.Find(edge)
	outgoingForestHead := st.forest.Find(other)
	if incomingForestHead != outgoingForestHead {
		// Bridge edge: walk the deepest-child map outward, pinching any
		// bridge-forest cycle it skips over, until we reach the far end.
		return st.walkBridge(stack, top, edge)
	}

	return stack
}

// walkBridge follows the bridge-forest deepest-child chain from edge
// outward, synthesizing a next_along_cycle chain for the bridge path and
// merging cactus components as it goes, per spec.md 4.5's bridge-edge
// dispatch rule.
func (st *emitState) walkBridge(stack []*emitFrame, top *emitFrame, edge handlegraph.Handle) []*emitFrame {
	g := st.cactus.Graph()

	head := st.forest.Find(g.Flip(edge))
	var walked []handlegraph.Handle
	cur := g.Flip(edge)

	for {
		dc, ok := st.deepest[head]
		if !ok || !dc.HasDeepest {
			break
		}
		step := dc.Deepest
		expectedHead := st.forest.Find(step)
		if expectedHead != head {
			// A bridge-forest cycle was skipped: locate the shared
			// cactus cycle and pinch it before continuing.
			st.pinch(head, expectedHead)
		}
		walked = append(walked, step)
		st.nextAlongCycle[cur] = step
		cur = step
		head = st.forest.Find(g.Flip(step))
	}

	if len(walked) == 0 {
		// Single-edge bridge path: contained self-loop, nothing to chain.
		return stack
	}
	// Close the synthetic cycle by linking the last walked edge back to
	// flip(edge).
	st.nextAlongCycle[cur] = edge.Flip()

	farEdge := walked[len(walked)-1]
	st.cactus.Merge(edge, g.Flip(farEdge))

	// Inherit any cycle edges now touching the merged component.
	newHead := st.cactus.Find(edge)
	st.cactus.ForEachMember(newHead, func(member handlegraph.Handle) {
		if member == edge {
			return
		}
		if _, isCycle := st.nextAlongCycle[member]; isCycle {
			top.todo = append(top.todo, member)
		}
	})

	return stack
}

// pinch splits the unique simple cycle shared between two cactus
// components by swapping their next_along_cycle successors at the two
// crossing points, then merges the components (spec.md 4.5).
func (st *emitState) pinch(headA, headB handlegraph.Handle) {
	g := st.cactus.Graph()

	var crossA, crossB handlegraph.Handle
	found := false

	st.cactus.ForEachMember(headA, func(member handlegraph.Handle) {
		if found {
			return
		}
		next, ok := st.nextAlongCycle[member]
		if !ok {
			return
		}
		if st.cactus.Find(next) == headB {
			crossA, crossB = member, next
			found = true
		}
	})
	if !found {
		return
	}

	succA := st.nextAlongCycle[crossA]
	succB := st.nextAlongCycle[crossB]
	st.nextAlongCycle[crossA] = succB
	st.nextAlongCycle[crossB] = succA

	st.cactus.Merge(crossA, g.Flip(crossB))
}
