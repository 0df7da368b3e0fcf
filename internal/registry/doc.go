// Package registry is the node type registry.
//
// It maps node type names (e.g. "Add", "Bloom", "Screen") to a graph.NodeType
// carrying the port layout and the shared Updater, and it is the only place
// nodes are instantiated from. Value types referenced by layouts come from
// the datatype.Registry the node registry was created with.
//
// Startup code registers value types, then node types, then calls Freeze.
// After that the registry is read-only and Instantiate is the only operation
// that is still meaningful.
package registry
