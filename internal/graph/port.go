package graph

import (
	"fmt"

	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/zclconf/go-cty/cty"
)

// Port is the introspection view shared by inputs and outputs.
type Port interface {
	Name() string
	Type() *datatype.TypeDescriptor
	Access() Access
	Index() int
	Node() *Node
	IsInput() bool
	IsOutput() bool
	IsConnected() bool
}

type port struct {
	node  *Node
	desc  PortDescriptor
	index int
	data  *datatype.Data
}

func (p *port) Name() string                   { return p.desc.Name }
func (p *port) Type() *datatype.TypeDescriptor { return p.desc.Type }
func (p *port) Access() Access                 { return p.desc.Access }
func (p *port) Index() int                     { return p.index }
func (p *port) Node() *Node                    { return p.node }

// Input is a node's input port. It reads its value from the connected
// Output, or from its own local container when unconnected.
type Input struct {
	port
	source *Output
}

func (in *Input) IsInput() bool  { return true }
func (in *Input) IsOutput() bool { return false }

// IsConnected reports whether the input has a source.
func (in *Input) IsConnected() bool { return in.source != nil }

// Source returns the connected output, or nil.
func (in *Input) Source() *Output { return in.source }

// Data returns the container the input currently reads from: the source's
// container when connected, the local one otherwise.
func (in *Input) Data() *datatype.Data {
	if in.source != nil {
		return in.source.data
	}
	return in.data
}

// Local returns the input's own container, used when unconnected.
func (in *Input) Local() *datatype.Data { return in.data }

// Value is shorthand for Data().Value().
func (in *Input) Value() cty.Value { return in.Data().Value() }

func (in *Input) String() string {
	return fmt.Sprintf("%s.%s", in.node, in.desc.Name)
}

// Output is a node's output port. It owns the container its value lives in
// and may feed any number of inputs.
type Output struct {
	port
	targets []*Input
}

func (out *Output) IsInput() bool  { return false }
func (out *Output) IsOutput() bool { return true }

// IsConnected reports whether the output feeds at least one input.
func (out *Output) IsConnected() bool { return len(out.targets) > 0 }

// Targets returns the connected inputs in connection order.
func (out *Output) Targets() []*Input {
	return append([]*Input(nil), out.targets...)
}

// Data returns the output's container.
func (out *Output) Data() *datatype.Data { return out.data }

// Value is shorthand for Data().Value().
func (out *Output) Value() cty.Value { return out.data.Value() }

func (out *Output) String() string {
	return fmt.Sprintf("%s.%s", out.node, out.desc.Name)
}

var (
	_ Port = (*Input)(nil)
	_ Port = (*Output)(nil)
)
