package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/kiwigraph/internal/ctxlog"
)

// Node is an instance of a NodeType.
type Node struct {
	id        string
	name      string
	typ       *NodeType
	inputs    []*Input
	outputs   []*Output
	observer  Observer
	destroyed bool
}

// NewNode allocates a node of the given type with one port per layout entry,
// each backed by a fresh container holding the type's default value.
// Most callers go through registry.Instantiate, which also runs provisioning.
func NewNode(typ *NodeType) *Node {
	n := &Node{
		id:      uuid.NewString(),
		typ:     typ,
		inputs:  make([]*Input, len(typ.Layout.Inputs)),
		outputs: make([]*Output, len(typ.Layout.Outputs)),
	}
	for i, desc := range typ.Layout.Inputs {
		n.inputs[i] = &Input{port: port{node: n, desc: desc, index: i, data: desc.Type.New()}}
	}
	for i, desc := range typ.Layout.Outputs {
		n.outputs[i] = &Output{port: port{node: n, desc: desc, index: i, data: desc.Type.New()}}
	}
	return n
}

// ID returns the node's unique identifier.
func (n *Node) ID() string { return n.id }

// Name returns the user-assigned name, if any.
func (n *Node) Name() string { return n.name }

// SetName assigns a human-readable name used in logs and errors.
func (n *Node) SetName(name string) { n.name = name }

// Type returns the node's type descriptor.
func (n *Node) Type() *NodeType { return n.typ }

func (n *Node) String() string {
	if n.name != "" {
		return n.name
	}
	return fmt.Sprintf("%s#%s", n.typ.Name, n.id[:8])
}

// Input returns the i-th input. An out-of-range index means the caller and
// the node type disagree about the layout, which is a programming error.
func (n *Node) Input(i int) *Input {
	if i < 0 || i >= len(n.inputs) {
		panic(fmt.Sprintf("graph: input index %d out of range [0,%d) on node %q", i, len(n.inputs), n))
	}
	return n.inputs[i]
}

// Output returns the i-th output. It panics on an out-of-range index.
func (n *Node) Output(i int) *Output {
	if i < 0 || i >= len(n.outputs) {
		panic(fmt.Sprintf("graph: output index %d out of range [0,%d) on node %q", i, len(n.outputs), n))
	}
	return n.outputs[i]
}

// Inputs returns the node's inputs in layout order.
func (n *Node) Inputs() []*Input { return append([]*Input(nil), n.inputs...) }

// Outputs returns the node's outputs in layout order.
func (n *Node) Outputs() []*Output { return append([]*Output(nil), n.outputs...) }

// InputNamed looks up an input by name.
func (n *Node) InputNamed(name string) (*Input, bool) {
	for _, in := range n.inputs {
		if in.desc.Name == name {
			return in, true
		}
	}
	return nil, false
}

// OutputNamed looks up an output by name.
func (n *Node) OutputNamed(name string) (*Output, bool) {
	for _, out := range n.outputs {
		if out.desc.Name == name {
			return out, true
		}
	}
	return nil, false
}

// Ports lists inputs then outputs, for introspection.
func (n *Node) Ports() []Port {
	ports := make([]Port, 0, len(n.inputs)+len(n.outputs))
	for _, in := range n.inputs {
		ports = append(ports, in)
	}
	for _, out := range n.outputs {
		ports = append(ports, out)
	}
	return ports
}

// PreviousNodes returns the distinct nodes owning an output connected to one
// of this node's inputs, in input order.
func (n *Node) PreviousNodes() []*Node {
	var prev []*Node
	seen := make(map[*Node]struct{}, len(n.inputs))
	for _, in := range n.inputs {
		if in.source == nil {
			continue
		}
		src := in.source.node
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		prev = append(prev, src)
	}
	return prev
}

// NextNodes returns the distinct nodes fed by this node's outputs.
func (n *Node) NextNodes() []*Node {
	var next []*Node
	seen := make(map[*Node]struct{})
	for _, out := range n.outputs {
		for _, in := range out.targets {
			if _, ok := seen[in.node]; ok {
				continue
			}
			seen[in.node] = struct{}{}
			next = append(next, in.node)
		}
	}
	return next
}

// Update runs the node type's updater. Nodes whose type has no updater are
// pure sources and always succeed.
func (n *Node) Update(ctx context.Context) error {
	if n.destroyed {
		return fmt.Errorf("updating %s: %w", n, ErrNodeDestroyed)
	}
	if n.typ.Updater == nil {
		return nil
	}
	return n.typ.Updater.Update(ctx, n)
}

// SetObserver attaches the presentation-layer observer notified of this
// node's connection changes. The engine never relies on it.
func (n *Node) SetObserver(o Observer) { n.observer = o }

// DisconnectAll severs every connection into or out of the node.
func (n *Node) DisconnectAll(ctx context.Context) {
	for _, in := range n.inputs {
		if in.source != nil {
			Disconnect(ctx, in.source, in)
		}
	}
	for _, out := range n.outputs {
		for len(out.targets) > 0 {
			Disconnect(ctx, out, out.targets[0])
		}
	}
}

// Destroy disconnects the node and marks it unusable.
func (n *Node) Destroy(ctx context.Context) {
	if n.destroyed {
		return
	}
	n.DisconnectAll(ctx)
	n.destroyed = true
	ctxlog.FromContext(ctx).Debug("Node destroyed.", "node", n.String())
}

// Destroyed reports whether Destroy was called.
func (n *Node) Destroyed() bool { return n.destroyed }

// RequireConnected returns a MissingInputError when in has no source.
func RequireConnected(in *Input) error {
	if in.source == nil {
		return &MissingInputError{Node: in.node, Port: in.desc.Name}
	}
	return nil
}
