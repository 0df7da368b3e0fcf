// Package color provides the Color source and the ColorMix node types.
package color

import (
	"context"

	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/internal/updater"
	"github.com/vk/kiwigraph/modules/values"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the node types.
func (m *Module) Register(ctx context.Context, r *registry.Registry) error {
	colorLayout, err := r.Layout(nil, []registry.PortSpec{registry.Out("color", values.Vec3)})
	if err != nil {
		return err
	}
	if _, err := r.RegisterNode(ctx, "Color", colorLayout, nil); err != nil {
		return err
	}

	mixLayout, err := r.Layout(
		[]registry.PortSpec{
			registry.In("a", values.Vec3),
			registry.In("b", values.Vec3),
			registry.In("factor", values.Float),
		},
		[]registry.PortSpec{registry.Out("color", values.Vec3)},
	)
	if err != nil {
		return err
	}
	_, err = r.RegisterNode(ctx, "ColorMix", mixLayout, updater.NewDynamicErr(onMix))
	return err
}

// onMix linearly interpolates from a to b; factor is clamped to [0, 1].
func onMix(_ context.Context, inputs, outputs []*datatype.Data) error {
	a, err := datatype.Get[gfx.Vec3](inputs[0])
	if err != nil {
		return err
	}
	b, err := datatype.Get[gfx.Vec3](inputs[1])
	if err != nil {
		return err
	}
	t, err := datatype.Get[float32](inputs[2])
	if err != nil {
		return err
	}
	return datatype.Put(outputs[0], a.Mix(b, min(max(t, 0), 1)))
}
