package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/zclconf/go-cty/cty"
)

type fixture struct {
	ctx   context.Context
	types *datatype.Registry
	float *datatype.TypeDescriptor
	text  *datatype.TypeDescriptor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := ctxlog.Discard()
	types := datatype.NewRegistry()
	float, err := types.Register(ctx, "Float", cty.Number, func() cty.Value { return cty.NumberFloatVal(0) })
	require.NoError(t, err)
	text, err := types.Register(ctx, "Text", cty.String, func() cty.Value { return cty.StringVal("") })
	require.NoError(t, err)
	return &fixture{ctx: ctx, types: types, float: float, text: text}
}

func (f *fixture) nodeType(name string, inputs, outputs []*datatype.TypeDescriptor, u Updater) *NodeType {
	nt := &NodeType{Name: name, Updater: u}
	for i, ty := range inputs {
		nt.Layout.Inputs = append(nt.Layout.Inputs, PortDescriptor{Name: string(rune('a' + i)), Type: ty})
	}
	for i, ty := range outputs {
		nt.Layout.Outputs = append(nt.Layout.Outputs, PortDescriptor{Name: "out" + string(rune('0'+i)), Type: ty})
	}
	return nt
}

// recorder captures observer notifications as readable strings.
type recorder struct{ events []string }

func (r *recorder) observer() ObserverFuncs {
	return ObserverFuncs{
		OnOutputConnected:    func(out *Output, in *Input) { r.events = append(r.events, "out+ "+out.String()+">"+in.String()) },
		OnInputConnected:     func(in *Input, out *Output) { r.events = append(r.events, "in+ "+in.String()+"<"+out.String()) },
		OnOutputDisconnected: func(out *Output, in *Input) { r.events = append(r.events, "out- "+out.String()+">"+in.String()) },
		OnInputDisconnected:  func(in *Input, out *Output) { r.events = append(r.events, "in- "+in.String()+"<"+out.String()) },
	}
}
