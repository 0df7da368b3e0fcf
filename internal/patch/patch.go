package patch

import (
	"context"
	"errors"
	"slices"

	"github.com/vk/kiwigraph/internal/graph"
)

var (
	// ErrDuplicateNode is returned when two node blocks share a name.
	ErrDuplicateNode = errors.New("node already declared")
	// ErrUnknownNode is returned when a link or the terminal names a node
	// that was not declared.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownPort is returned for references to ports a node does not have.
	ErrUnknownPort = errors.New("unknown port")
	// ErrInvalidPatch covers structural problems such as a malformed link
	// endpoint or conflicting terminal declarations.
	ErrInvalidPatch = errors.New("invalid patch")
)

// Patch is a loaded graph.
type Patch struct {
	nodes map[string]*graph.Node
	order []string
	// Terminal is the declared terminal node, or nil.
	Terminal *graph.Node
	// ValueTypes and NodeTypes list the types the patch registered.
	ValueTypes []string
	NodeTypes  []string
}

func newPatch() *Patch {
	return &Patch{nodes: make(map[string]*graph.Node)}
}

// Node returns the node declared with name.
func (p *Patch) Node(name string) (*graph.Node, bool) {
	n, ok := p.nodes[name]
	return n, ok
}

// NodeNames returns node names in declaration order.
func (p *Patch) NodeNames() []string { return slices.Clone(p.order) }

// Nodes returns the nodes in declaration order.
func (p *Patch) Nodes() []*graph.Node {
	nodes := make([]*graph.Node, len(p.order))
	for i, name := range p.order {
		nodes[i] = p.nodes[name]
	}
	return nodes
}

// Destroy disconnects and destroys every node of the patch.
func (p *Patch) Destroy(ctx context.Context) {
	for _, n := range p.Nodes() {
		n.Destroy(ctx)
	}
}
