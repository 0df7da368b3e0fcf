// Package sources provides node types without inputs: Time, which reports
// the seconds elapsed on a clock, and Slider, a Float set from outside the
// graph.
package sources

import (
	"context"
	"time"

	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/internal/updater"
	"github.com/vk/kiwigraph/modules/values"
)

// Clock returns the time elapsed since the application started.
type Clock func() time.Duration

// Module implements the registry.Module interface for this package.
type Module struct {
	// Clock drives the Time node. Nil uses the wall clock from Register.
	Clock Clock
}

// Register registers the node types.
func (m *Module) Register(ctx context.Context, r *registry.Registry) error {
	clock := m.Clock
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}

	timeLayout, err := r.Layout(nil, []registry.PortSpec{registry.Out("time", values.Float)})
	if err != nil {
		return err
	}
	onTime := func(_ context.Context, _, outputs []*datatype.Data) error {
		return datatype.Put(outputs[0], clock().Seconds())
	}
	if _, err := r.RegisterNode(ctx, "Time", timeLayout, updater.NewDynamicErr(onTime)); err != nil {
		return err
	}

	sliderLayout, err := r.Layout(nil, []registry.PortSpec{registry.Out("value", values.Float)})
	if err != nil {
		return err
	}
	_, err = r.RegisterNode(ctx, "Slider", sliderLayout, nil)
	return err
}
