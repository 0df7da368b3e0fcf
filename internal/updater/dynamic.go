package updater

import (
	"context"
	"fmt"

	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/graph"
)

// Func is a dynamic node callback. inputs and outputs are parallel to the
// node's port order. It reports success.
type Func func(inputs, outputs []*datatype.Data) bool

// ErrFunc is a dynamic node callback that can explain its failure.
type ErrFunc func(ctx context.Context, inputs, outputs []*datatype.Data) error

// Dynamic is the callback strategy.
type Dynamic struct {
	fn ErrFunc
}

// NewDynamic wraps a boolean callback; false fails the update with
// graph.ErrUpdateFailed.
func NewDynamic(fn Func) *Dynamic {
	return &Dynamic{fn: func(_ context.Context, in, out []*datatype.Data) error {
		if !fn(in, out) {
			return graph.ErrUpdateFailed
		}
		return nil
	}}
}

// NewDynamicErr wraps a callback returning an error.
func NewDynamicErr(fn ErrFunc) *Dynamic {
	return &Dynamic{fn: fn}
}

// Update implements graph.Updater. Inputs are handed to the callback as
// snapshots, so a callback cannot write into an upstream node's output.
func (d *Dynamic) Update(ctx context.Context, n *graph.Node) error {
	ins := n.Inputs()
	inputs := make([]*datatype.Data, len(ins))
	for i, in := range ins {
		snap := in.Type().New()
		if err := snap.Set(in.Value()); err != nil {
			return fmt.Errorf("node %s: reading input %q: %w", n, in.Name(), err)
		}
		inputs[i] = snap
	}

	outs := n.Outputs()
	outputs := make([]*datatype.Data, len(outs))
	for i, out := range outs {
		outputs[i] = out.Data()
	}

	if err := d.fn(ctx, inputs, outputs); err != nil {
		return fmt.Errorf("node %s: %w", n, err)
	}
	return nil
}

var _ graph.Updater = (*Dynamic)(nil)
