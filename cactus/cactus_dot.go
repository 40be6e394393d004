package cactus

import (
	"fmt"
	"io"

	"github.com/adamnovak/cactalth/handlegraph"
)

// WriteDOT dumps the adjacency-component structure of m as Graphviz DOT,
// one edge per (head, member) pairing recorded in the union-find. This is
// a debugging aid for inspecting intermediate decomposition state; it is
// not part of the snarl-finding algorithm itself.
func (m *MergedAdjacencyGraph) WriteDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "graph cactus {"); err != nil {
		return err
	}
	var writeErr error
	m.ForEachHead(func(head handlegraph.Handle) {
		m.ForEachOtherMember(head, func(member handlegraph.Handle) {
			if writeErr != nil {
				return
			}
			_, writeErr = fmt.Fprintf(w, "  \"%d:%v\" -- \"%d:%v\";\n",
				m.graph.GetID(head), m.graph.GetIsReverse(head),
				m.graph.GetID(member), m.graph.GetIsReverse(member))
		})
	})
	if writeErr != nil {
		return writeErr
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
