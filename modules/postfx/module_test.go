package postfx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/graph"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/internal/scheduler"
	"github.com/vk/kiwigraph/modules/color"
	"github.com/vk/kiwigraph/modules/values"
)

type fixture struct {
	ctx context.Context
	rec *gfx.Recorder
	reg *registry.Registry
}

func newFixture(t *testing.T, effects []Effect) *fixture {
	t.Helper()
	ctx := ctxlog.Discard()
	vp := gfx.Viewport{Width: 64, Height: 48}
	rec := gfx.NewRecorder(vp)
	reg := registry.New(datatype.NewRegistry())
	mod := &Module{Device: rec, Viewport: func() gfx.Viewport { return vp }, Effects: effects}
	require.NoError(t, reg.Load(ctx, &values.Module{}, &color.Module{}, mod))
	return &fixture{ctx: ctx, rec: rec, reg: reg}
}

func (f *fixture) node(t *testing.T, name string) *graph.Node {
	t.Helper()
	n, err := f.reg.Instantiate(f.ctx, name)
	require.NoError(t, err)
	return n
}

func inputNames(nt *graph.NodeType) []string {
	var names []string
	for _, p := range nt.Layout.Inputs {
		names = append(names, p.Name)
	}
	return names
}

func TestRegisterCatalogue(t *testing.T) {
	f := newFixture(t, nil)
	for _, e := range Effects() {
		_, ok := f.reg.TypeOf(e.Name)
		assert.True(t, ok, e.Name)
	}
	_, ok := f.reg.TypeOf(ScreenNodeType)
	assert.True(t, ok)

	bloom, _ := f.reg.TypeOf("Bloom")
	assert.Equal(t, []string{"bloomCoefficient", "inputImage"}, inputNames(bloom))

	dof, _ := f.reg.TypeOf("Depth of field")
	assert.Equal(t, []string{"focalDepth", "focalRange", "fragmentInfo", "highlightGain", "inputImage"}, inputNames(dof))

	ray, _ := f.reg.TypeOf("Raymarching")
	assert.Len(t, ray.Layout.Inputs, 9, "windowSize is not a port")
}

func TestRenderChain(t *testing.T) {
	gen := Effect{Name: "Gradient", Uniforms: []gfx.Uniform{vec3("tint"), windowSize}}
	f := newFixture(t, []Effect{gen, {Name: "Sepia", Uniforms: []gfx.Uniform{tex("inputImage"), float("factor"), windowSize}}})

	tint, gradient, sepia, screen := f.node(t, "Color"), f.node(t, "Gradient"), f.node(t, "Sepia"), f.node(t, ScreenNodeType)
	require.NoError(t, graph.Connect(f.ctx, tint.Output(0), gradient.Input(0)))
	out, ok := gradient.OutputNamed("outputImage")
	require.True(t, ok)
	require.NoError(t, graph.Connect(f.ctx, out, sepia.Input(1)))
	out, ok = sepia.OutputNamed("outputImage")
	require.True(t, ok)
	require.NoError(t, graph.Connect(f.ctx, out, screen.Input(0)))

	report, err := scheduler.New().Evaluate(f.ctx, screen)
	require.NoError(t, err)
	require.True(t, report.OK(), "%v", report.Err())

	assert.Equal(t, "Screen(Sepia(Gradient()))", f.rec.Screen().Texture(0).Content)
}

func TestScreenRequiresInput(t *testing.T) {
	f := newFixture(t, []Effect{})
	screen := f.node(t, ScreenNodeType)
	err := screen.Update(f.ctx)
	assert.ErrorIs(t, err, graph.ErrMissingInput)
	assert.Empty(t, f.rec.Screen().Texture(0).Content)
}

func TestRegisterNeedsDevice(t *testing.T) {
	reg := registry.New(datatype.NewRegistry())
	err := reg.Load(ctxlog.Discard(), &values.Module{}, &Module{})
	assert.ErrorContains(t, err, "needs a device")
}
