// Package graph holds the runtime dataflow graph: nodes, their typed input
// and output ports, and the connections between them.
//
// A Node is an instance of a NodeType. It owns one Input per input
// PortDescriptor and one Output per output PortDescriptor, in layout order.
// Connections always run from an Output to an Input of the identical value
// type. An Output may feed many Inputs; an Input has at most one source.
//
// Computation is delegated to the node type's Updater. Updaters read the
// node's inputs and write its own outputs; they never touch another node's
// ports. Ordering nodes for evaluation is the scheduler's job; this package
// only exposes the dependency edges through Node.PreviousNodes.
//
// The graph is not safe for concurrent mutation. Building (Connect,
// Disconnect) and evaluating are expected to happen on one goroutine.
package graph
