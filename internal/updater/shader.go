package updater

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/graph"
)

// WindowSizeUniform is fed from the viewport rather than from a port.
const WindowSizeUniform = "windowSize"

// ErrTooManyTextures is returned when a program samples more textures than
// there are texture units.
var ErrTooManyTextures = errors.New("too many texture inputs")

// ShaderTypes are the value types a Shader maps uniforms and render targets to.
type ShaderTypes struct {
	Float       *datatype.TypeDescriptor
	Vec3        *datatype.TypeDescriptor
	Mat4        *datatype.TypeDescriptor
	Texture     *datatype.TypeDescriptor
	FrameBuffer *datatype.TypeDescriptor
}

// LookupShaderTypes resolves the standard type names.
func LookupShaderTypes(types *datatype.Registry) (ShaderTypes, error) {
	var st ShaderTypes
	for name, dst := range map[string]**datatype.TypeDescriptor{
		"Float":       &st.Float,
		"Vec3":        &st.Vec3,
		"Mat4":        &st.Mat4,
		"Texture2D":   &st.Texture,
		"FrameBuffer": &st.FrameBuffer,
	} {
		desc, ok := types.Lookup(name)
		if !ok {
			return ShaderTypes{}, fmt.Errorf("shader value type %q: %w", name, datatype.ErrUnknownType)
		}
		*dst = desc
	}
	return st, nil
}

// Shader is the fixed strategy: one compiled program shared by every node of
// the type. Its layout has one input per supported uniform and two outputs,
// "fbo" and "outputImage", allocated by Provision.
type Shader struct {
	program  gfx.Program
	device   gfx.Device
	types    ShaderTypes
	viewport func() gfx.Viewport
}

// NewShader creates a shader strategy. viewport is queried for the render
// target size and for the windowSize uniform.
func NewShader(program gfx.Program, device gfx.Device, types ShaderTypes, viewport func() gfx.Viewport) *Shader {
	return &Shader{program: program, device: device, types: types, viewport: viewport}
}

// Layout derives the node layout from the program's uniforms, in name order.
// Uniform kinds without a matching value type are skipped.
func (s *Shader) Layout(ctx context.Context) graph.Layout {
	logger := ctxlog.FromContext(ctx)
	var layout graph.Layout
	for _, u := range s.program.Uniforms() {
		var ty *datatype.TypeDescriptor
		switch u.Kind {
		case gfx.UniformTexture2D:
			ty = s.types.Texture
		case gfx.UniformFloat3:
			ty = s.types.Vec3
		case gfx.UniformFloat:
			ty = s.types.Float
		case gfx.UniformMat4:
			ty = s.types.Mat4
		}
		if ty == nil {
			logger.Debug("Ignored shader uniform.", "program", s.program.Name(), "uniform", u.Name, "kind", u.Kind.String())
			continue
		}
		layout.Inputs = append(layout.Inputs, graph.PortDescriptor{Name: u.Name, Type: ty, Access: graph.Read})
	}
	layout.Outputs = []graph.PortDescriptor{
		{Name: "fbo", Type: s.types.FrameBuffer, Access: graph.Read},
		{Name: "outputImage", Type: s.types.Texture, Access: graph.Read},
	}
	return layout
}

// Provision allocates the node's render target.
func (s *Shader) Provision(ctx context.Context, n *graph.Node) error {
	vp := s.viewport()
	fbo, err := s.device.NewFrameBuffer(vp.Width, vp.Height, 1)
	if err != nil {
		return fmt.Errorf("allocating render target for %s: %w", n, err)
	}
	if err := datatype.Put(n.Output(0).Data(), fbo); err != nil {
		return err
	}
	if err := datatype.Put(n.Output(1).Data(), fbo.Texture(0)); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Render target allocated.", "node", n.String(), "fbo", fbo.ID)
	return nil
}

// Update binds every input as a uniform and draws. Texture and Vec3 inputs
// must be connected; Float and Mat4 inputs fall back to their local value.
func (s *Shader) Update(ctx context.Context, n *graph.Node) error {
	fbo, err := datatype.Get[*gfx.FrameBuffer](n.Output(0).Data())
	if err != nil {
		return err
	}
	if fbo == nil {
		return fmt.Errorf("node %s has no render target", n)
	}
	if err := s.program.Bind(fbo); err != nil {
		return fmt.Errorf("binding %s: %w", s.program.Name(), err)
	}
	defer s.program.Unbind()

	if s.program.HasUniform(WindowSizeUniform) {
		vp := s.viewport()
		s.program.SetVec2(WindowSizeUniform, gfx.Vec2{X: float32(vp.Width), Y: float32(vp.Height)})
	}

	if err := s.bindInputs(n); err != nil {
		return err
	}
	return s.program.Draw()
}

func (s *Shader) bindInputs(n *graph.Node) error {
	unit := 0
	for _, in := range n.Inputs() {
		switch in.Type() {
		case s.types.Texture:
			if err := graph.RequireConnected(in); err != nil {
				return err
			}
			if unit >= gfx.MaxTextureUnits {
				return fmt.Errorf("node %s: input %q: %w", n, in.Name(), ErrTooManyTextures)
			}
			tex, err := datatype.Get[*gfx.Texture2D](in.Data())
			if err != nil {
				return err
			}
			if tex == nil {
				return fmt.Errorf("node %s: input %q: source holds no texture", n, in.Name())
			}
			s.program.SetInt(in.Name(), int32(unit))
			s.program.BindTexture(unit, tex)
			unit++
		case s.types.Vec3:
			if err := graph.RequireConnected(in); err != nil {
				return err
			}
			v, err := datatype.Get[gfx.Vec3](in.Data())
			if err != nil {
				return err
			}
			s.program.SetVec3(in.Name(), v)
		case s.types.Float:
			f, err := datatype.Get[float32](in.Data())
			if err != nil {
				return err
			}
			s.program.SetFloat(in.Name(), f)
		case s.types.Mat4:
			m, err := GetMat4(in.Data())
			if err != nil {
				return err
			}
			s.program.SetMat4(in.Name(), m)
		}
	}
	return nil
}

// GetMat4 decodes a Mat4 container.
func GetMat4(d *datatype.Data) (gfx.Mat4, error) {
	var m gfx.Mat4
	elems, err := datatype.Get[[]float32](d)
	if err != nil {
		return m, err
	}
	if len(elems) != len(m) {
		return m, fmt.Errorf("mat4 has %d elements, want %d", len(elems), len(m))
	}
	copy(m[:], elems)
	return m, nil
}

// PutMat4 encodes m into a Mat4 container.
func PutMat4(d *datatype.Data, m gfx.Mat4) error {
	return datatype.Put(d, m[:])
}

var (
	_ graph.Updater     = (*Shader)(nil)
	_ graph.Provisioner = (*Shader)(nil)
)
