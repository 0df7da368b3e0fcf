package graph

import (
	"context"

	"github.com/vk/kiwigraph/internal/datatype"
)

// Access is the access mode a port declares for its value.
type Access int

const (
	// Read ports are only read by the owning node's updater.
	Read Access = iota
	// ReadWrite ports may be modified in place by the updater.
	ReadWrite
)

func (a Access) String() string {
	switch a {
	case Read:
		return "read"
	case ReadWrite:
		return "read_write"
	default:
		return "unknown"
	}
}

// PortDescriptor is the static description of one port of a node type.
type PortDescriptor struct {
	Name   string
	Type   *datatype.TypeDescriptor
	Access Access
}

// Layout lists a node type's ports in order.
type Layout struct {
	Inputs  []PortDescriptor
	Outputs []PortDescriptor
}

// NodeType describes one registered kind of node. It is immutable once
// registered; the Updater is shared by every instance.
type NodeType struct {
	Name    string
	Layout  Layout
	Updater Updater
}

// Updater is the computation behind a node type.
type Updater interface {
	Update(ctx context.Context, n *Node) error
}

// UpdaterFunc adapts a function to the Updater interface.
type UpdaterFunc func(ctx context.Context, n *Node) error

// Update calls f(ctx, n).
func (f UpdaterFunc) Update(ctx context.Context, n *Node) error { return f(ctx, n) }

// Provisioner is implemented by updaters that populate a node's outputs once,
// when the node is instantiated, instead of on every update.
type Provisioner interface {
	Provision(ctx context.Context, n *Node) error
}
