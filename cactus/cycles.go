package cactus

import "github.com/adamnovak/cactalth/handlegraph"

// componentCycle is the longest simple cycle found in one connected
// component of the cactus, as produced by findCycles (spec.md 4.3).
type componentCycle struct {
	// root is the head the enumeration DFS started from for this
	// component; every other head in the component was reached from it.
	root handlegraph.Handle
	// length is the summed base length of the longest cycle found, or 0
	// if the component contains no cycle at all.
	length int
	// closingEdge is one arc on the longest cycle (the back edge that
	// closed it), enough to seed a walk around next_along_cycle later.
	closingEdge handlegraph.Handle
	hasCycle    bool
}

// cycleFrame is one stack frame of the iterative cycle-enumeration DFS.
type cycleFrame struct {
	head        handlegraph.Handle
	incoming    handlegraph.Handle
	hasIncoming bool
	outgoing    []handlegraph.Handle
	pos         int
}

// findCycles runs the simple-cycle enumerator of spec.md 4.3 over the
// whole cactus, one connected component at a time. It returns the
// next_along_cycle linkage built while walking cycles closed and, per
// component, the longest cycle found (if any).
func findCycles(macg *MergedAdjacencyGraph) (map[handlegraph.Handle]handlegraph.Handle, [][]handlegraph.Handle, []componentCycle) {
	nextAlongCycle := make(map[handlegraph.Handle]handlegraph.Handle)
	everVisited := make(map[handlegraph.Handle]bool)
	var components []componentCycle
	var cycleGroups [][]handlegraph.Handle

	macg.ForEachHead(func(root handlegraph.Handle) {
		if everVisited[root] {
			return
		}
		components = append(components, dfsCycles(macg, root, everVisited, nextAlongCycle, &cycleGroups))
	})

	return nextAlongCycle, cycleGroups, components
}

func dfsCycles(
	macg *MergedAdjacencyGraph,
	root handlegraph.Handle,
	everVisited map[handlegraph.Handle]bool,
	nextAlongCycle map[handlegraph.Handle]handlegraph.Handle,
	cycleGroups *[][]handlegraph.Handle,
) componentCycle {
	g := macg.Graph()
	result := componentCycle{root: root}

	var stack []*cycleFrame
	liveDepth := make(map[handlegraph.Handle]int)

	push := func(head, incoming handlegraph.Handle, hasIncoming bool) {
		var skip handlegraph.Handle
		if hasIncoming {
			skip = g.Flip(incoming)
		}
		var outgoing []handlegraph.Handle
		macg.ForEachMember(head, func(member handlegraph.Handle) {
			if hasIncoming && member == skip {
				return
			}
			outgoing = append(outgoing, member)
		})
		stack = append(stack, &cycleFrame{head: head, incoming: incoming, hasIncoming: hasIncoming, outgoing: outgoing})
		liveDepth[head] = len(stack) - 1
		everVisited[head] = true
	}

	var zero handlegraph.Handle
	push(root, zero, false)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.pos >= len(top.outgoing) {
			delete(liveDepth, top.head)
			stack = stack[:len(stack)-1]
			continue
		}
		member := top.outgoing[top.pos]
		top.pos++

		other := g.Flip(member)
		targetHead := macg.Find(other)

		if targetHead == top.head {
			// Self-loop: rule 1 skips it for cycle purposes.
			continue
		}

		depth, isLive := liveDepth[targetHead]
		if isLive {
			topDepth := len(stack) - 1
			if depth < topDepth {
				length := closeCycle(g, stack, depth, topDepth, other)
				if length > result.length {
					result.length = length
					// other (= flip(member)) is a member of the ancestor
					// frame's head, so it is a valid next_along_cycle key
					// to seed a walk of this cycle from.
					result.closingEdge = other
					result.hasCycle = true
				}
				linkCycle(nextAlongCycle, stack, depth, topDepth, member)

				heads := make([]handlegraph.Handle, 0, topDepth-depth+1)
				for i := depth; i <= topDepth; i++ {
					heads = append(heads, stack[i].head)
				}
				*cycleGroups = append(*cycleGroups, heads)
			}
			continue
		}

		if everVisited[targetHead] {
			continue
		}

		push(targetHead, member, true)
	}

	return result
}

// closeCycle computes the base length of the cycle running from stack
// index depth up to topDepth and back via the closing back edge. Lengths
// are charged to the specific handle each frame was actually reached
// through, never to a frame's union-find head: the head is whatever the
// union-find elects and can be a node with an unrelated base length. The
// depth frame's own push-time incoming edge isn't on this cycle at all
// (it's how the DFS first reached that frame, from a different branch),
// so it is charged the current closing edge's arrival handle instead.
func closeCycle(g handlegraph.SequenceGraph, stack []*cycleFrame, depth, topDepth int, closingArrival handlegraph.Handle) int {
	total := g.GetLength(closingArrival)
	for i := depth + 1; i <= topDepth; i++ {
		total += g.GetLength(stack[i].incoming.Flip())
	}
	return total
}

// linkCycle writes next_along_cycle for every arc on the newly closed
// cycle, forming a cyclic chain of (arrival, departure) pairs at each
// group head the cycle passes through (spec.md 4.3 rule 4).
func linkCycle(
	nextAlongCycle map[handlegraph.Handle]handlegraph.Handle,
	stack []*cycleFrame,
	depth, topDepth int,
	member handlegraph.Handle,
) {
	// path[0] is the ancestor frame the back edge returns to; path[len-1]
	// is the frame the back edge departs from.
	path := stack[depth : topDepth+1]

	for k := 0; k < len(path); k++ {
		var arrival, departure handlegraph.Handle
		if k == 0 {
			// The back edge arrives at path[0]'s head via flip(member).
			arrival = member.Flip()
		} else {
			arrival = path[k].incoming.Flip()
		}
		if k == len(path)-1 {
			departure = member
		} else {
			departure = path[k+1].incoming
		}
		nextAlongCycle[arrival] = departure
	}
}
