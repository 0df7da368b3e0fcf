package scheduler

import (
	"fmt"

	"github.com/vk/kiwigraph/internal/graph"
	"github.com/xlab/treeprint"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// DescribeTree renders the dependency tree of terminal: one branch per input
// port, expanded through its source node. Unconnected inputs show their local
// value. A producer feeding several inputs is expanded once and marked
// "(see above)" afterwards; a node reached again on the same path is marked
// as a cycle.
func DescribeTree(terminal *graph.Node) string {
	tree := treeprint.NewWithRoot(terminal.String())
	d := &describer{
		path:     map[*graph.Node]bool{terminal: true},
		expanded: map[*graph.Node]bool{terminal: true},
	}
	d.inputs(tree, terminal)
	return tree.String()
}

type describer struct {
	path     map[*graph.Node]bool
	expanded map[*graph.Node]bool
}

func (d *describer) inputs(branch treeprint.Tree, n *graph.Node) {
	for _, in := range n.Inputs() {
		src := in.Source()
		if src == nil {
			branch.AddMetaNode(in.Name(), "= "+formatValue(in.Value()))
			continue
		}
		producer := src.Node()
		label := src.String()
		switch {
		case d.path[producer]:
			branch.AddMetaNode(in.Name(), label+" (cycle)")
		case len(producer.Inputs()) == 0:
			branch.AddMetaNode(in.Name(), label+" = "+formatValue(src.Value()))
		case d.expanded[producer]:
			branch.AddMetaNode(in.Name(), label+" (see above)")
		default:
			d.expanded[producer] = true
			d.path[producer] = true
			d.inputs(branch.AddMetaBranch(in.Name(), label), producer)
			delete(d.path, producer)
		}
	}
}

func formatValue(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case v.Type().IsCapsuleType():
		return fmt.Sprintf("<%s>", v.Type().FriendlyName())
	}
	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.Type().FriendlyName()
	}
	return string(raw)
}
