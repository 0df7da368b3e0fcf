package scheduler

import (
	"slices"

	"github.com/vk/kiwigraph/internal/graph"
)

// walker does the post-order traversal shared by Order and DetectCycles.
type walker struct {
	done    map[*graph.Node]bool
	stack   []*graph.Node
	onStack map[*graph.Node]int
	order   []*graph.Node
}

func newWalker(dst []*graph.Node) *walker {
	return &walker{
		done:    make(map[*graph.Node]bool),
		onStack: make(map[*graph.Node]int),
		order:   dst[:0],
	}
}

func (w *walker) visit(n *graph.Node) error {
	if w.done[n] {
		return nil
	}
	if i, ok := w.onStack[n]; ok {
		// The stack runs against the data flow, from consumer to producer.
		path := append(slices.Clone(w.stack[i:]), n)
		slices.Reverse(path)
		return &CycleError{Path: path}
	}

	w.onStack[n] = len(w.stack)
	w.stack = append(w.stack, n)
	for _, prev := range n.PreviousNodes() {
		if err := w.visit(prev); err != nil {
			return err
		}
	}
	w.stack = w.stack[:len(w.stack)-1]
	delete(w.onStack, n)

	w.done[n] = true
	w.order = append(w.order, n)
	return nil
}

// Order returns the nodes terminal depends on, terminal last, such that every
// node comes after all of its predecessors. Among independent nodes the order
// is the order of discovery through input ports.
func Order(terminal *graph.Node) ([]*graph.Node, error) {
	w := newWalker(nil)
	if err := w.visit(terminal); err != nil {
		return nil, err
	}
	return w.order, nil
}

// DetectCycles reports the first cycle reachable backwards from any of nodes.
// Graph builders call it after wiring to reject cyclic graphs up front.
func DetectCycles(nodes ...*graph.Node) error {
	w := newWalker(nil)
	for _, n := range nodes {
		if err := w.visit(n); err != nil {
			return err
		}
	}
	return nil
}
