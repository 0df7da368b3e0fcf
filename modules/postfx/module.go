// Package postfx registers shader-backed node types: one per post-processing
// effect, plus Screen, which presents a texture on the default target.
package postfx

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/graph"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/internal/updater"
	"github.com/vk/kiwigraph/modules/values"
)

// ScreenNodeType is the name of the node type drawing to the default target.
const ScreenNodeType = "Screen"

// Module implements the registry.Module interface for this package.
type Module struct {
	Device   gfx.Device
	Viewport func() gfx.Viewport
	// Effects to register. Nil registers Effects().
	Effects []Effect
}

// Register compiles every effect and registers its node type, then Screen.
func (m *Module) Register(ctx context.Context, r *registry.Registry) error {
	if m.Device == nil || m.Viewport == nil {
		return errors.New("postfx module needs a device and a viewport")
	}
	effects := m.Effects
	if effects == nil {
		effects = Effects()
	}
	for _, e := range effects {
		program, err := m.Device.NewProgram(e.Name, e.Uniforms)
		if err != nil {
			return fmt.Errorf("building program %q: %w", e.Name, err)
		}
		if _, err := RegisterPostFx(ctx, r, m.Device, m.Viewport, program); err != nil {
			return err
		}
	}
	return m.registerScreen(ctx, r)
}

// RegisterPostFx registers a node type named after program whose inputs
// mirror the program's uniforms. Instances render into their own target.
func RegisterPostFx(ctx context.Context, r *registry.Registry, device gfx.Device, viewport func() gfx.Viewport, program gfx.Program) (*graph.NodeType, error) {
	types, err := updater.LookupShaderTypes(r.Types())
	if err != nil {
		return nil, err
	}
	shader := updater.NewShader(program, device, types, viewport)
	nt, err := r.RegisterNode(ctx, program.Name(), shader.Layout(ctx), shader)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Registered post effect.", "name", program.Name(), "inputs", len(nt.Layout.Inputs))
	return nt, nil
}

func (m *Module) registerScreen(ctx context.Context, r *registry.Registry) error {
	program, err := m.Device.NewProgram(ScreenNodeType, []gfx.Uniform{tex("inputImage"), windowSize})
	if err != nil {
		return fmt.Errorf("building screen program: %w", err)
	}
	layout, err := r.Layout([]registry.PortSpec{registry.In("inputImage", values.Texture2D)}, nil)
	if err != nil {
		return err
	}

	onScreen := func(_ context.Context, inputs, _ []*datatype.Data) error {
		input, err := datatype.Get[*gfx.Texture2D](inputs[0])
		if err != nil {
			return err
		}
		if input == nil {
			return fmt.Errorf("input %q: %w", "inputImage", graph.ErrMissingInput)
		}
		if err := program.Bind(nil); err != nil {
			return err
		}
		defer program.Unbind()

		vp := m.Viewport()
		program.SetInt("inputImage", 0)
		program.SetVec2(updater.WindowSizeUniform, gfx.Vec2{X: float32(vp.Width), Y: float32(vp.Height)})
		program.BindTexture(0, input)
		return program.Draw()
	}
	_, err = r.RegisterNode(ctx, ScreenNodeType, layout, updater.NewDynamicErr(onScreen))
	return err
}
