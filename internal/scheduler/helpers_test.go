package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/graph"
	"github.com/zclconf/go-cty/cty"
)

var errBoom = errors.New("boom")

// fixture builds small graphs of "Step" nodes that log their updates.
type fixture struct {
	t       *testing.T
	ctx     context.Context
	float   *datatype.TypeDescriptor
	log     []string
	failing map[string]bool
	nodes   map[string]*graph.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := ctxlog.Discard()
	types := datatype.NewRegistry()
	float, err := types.Register(ctx, "Float", cty.Number, func() cty.Value { return cty.NumberFloatVal(0) })
	require.NoError(t, err)
	return &fixture{t: t, ctx: ctx, float: float, failing: map[string]bool{}, nodes: map[string]*graph.Node{}}
}

// node creates a named step with the given number of inputs and one output.
func (f *fixture) node(name string, inputs int) *graph.Node {
	nt := &graph.NodeType{
		Name: "Step",
		Updater: graph.UpdaterFunc(func(_ context.Context, n *graph.Node) error {
			f.log = append(f.log, n.Name())
			if f.failing[n.Name()] {
				return errBoom
			}
			return nil
		}),
	}
	for i := 0; i < inputs; i++ {
		nt.Layout.Inputs = append(nt.Layout.Inputs, graph.PortDescriptor{Name: string(rune('a' + i)), Type: f.float})
	}
	nt.Layout.Outputs = []graph.PortDescriptor{{Name: "out", Type: f.float}}
	n := graph.NewNode(nt)
	n.SetName(name)
	f.nodes[name] = n
	return n
}

// link connects from's output into input index i of to.
func (f *fixture) link(from *graph.Node, to *graph.Node, i int) {
	f.t.Helper()
	require.NoError(f.t, graph.Connect(f.ctx, from.Output(0), to.Input(i)))
}

// diamond builds A -> B, A -> C, B -> D, C -> D.
func (f *fixture) diamond() *graph.Node {
	a, b, c, d := f.node("A", 0), f.node("B", 1), f.node("C", 1), f.node("D", 2)
	f.link(a, b, 0)
	f.link(a, c, 0)
	f.link(b, d, 0)
	f.link(c, d, 1)
	return d
}

func names(nodes []*graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}
