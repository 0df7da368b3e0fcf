package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/kiwigraph/internal/graph"
)

var (
	// ErrCycleDetected is returned when the nodes feeding a terminal form a
	// cycle. No node is updated in that case.
	ErrCycleDetected = errors.New("cycle detected")
	// ErrPassInFlight is returned by Evaluate while another pass is running
	// on the same Scheduler.
	ErrPassInFlight = errors.New("evaluation pass already in flight")
	// ErrNoTerminal is returned when Evaluate is called without a terminal.
	ErrNoTerminal = errors.New("no terminal node")
	// ErrUpdatePanicked marks a node failure caused by a panicking updater.
	ErrUpdatePanicked = errors.New("node update panicked")
)

// CycleError lists the nodes of a detected cycle in data-flow order. The
// first and last element are the same node.
type CycleError struct {
	Path []*graph.Node
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Path))
	for i, n := range e.Path {
		names[i] = n.String()
	}
	return fmt.Sprintf("%s: %s", ErrCycleDetected, strings.Join(names, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycleDetected }

// NodeError is a failed update of a single node.
type NodeError struct {
	Node *graph.Node
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("updating %s: %v", e.Node, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }
