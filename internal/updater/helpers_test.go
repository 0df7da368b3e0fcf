package updater

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/graph"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

func newTypes(t *testing.T) (context.Context, *datatype.Registry) {
	t.Helper()
	ctx := ctxlog.Discard()
	types := datatype.NewRegistry()
	zeroVec3, err := gocty.ToCtyValue(gfx.Vec3{}, gfx.Vec3Type)
	require.NoError(t, err)
	identity, err := gocty.ToCtyValue(func() []float32 { m := gfx.Identity(); return m[:] }(), gfx.Mat4Type)
	require.NoError(t, err)

	for _, reg := range []struct {
		name string
		ty   cty.Type
		def  cty.Value
	}{
		{"Float", cty.Number, cty.NumberFloatVal(0)},
		{"Text", cty.String, cty.StringVal("")},
		{"Vec3", gfx.Vec3Type, zeroVec3},
		{"Mat4", gfx.Mat4Type, identity},
		{"Texture2D", gfx.TextureType, cty.NullVal(gfx.TextureType)},
		{"FrameBuffer", gfx.FrameBufferType, cty.NullVal(gfx.FrameBufferType)},
	} {
		def := reg.def
		_, err := types.Register(ctx, reg.name, reg.ty, func() cty.Value { return def })
		require.NoError(t, err)
	}
	return ctx, types
}

func ports(types *datatype.Registry, typeName string, names ...string) []graph.PortDescriptor {
	descs := make([]graph.PortDescriptor, len(names))
	for i, name := range names {
		descs[i] = graph.PortDescriptor{Name: name, Type: types.MustLookup(typeName)}
	}
	return descs
}

func source(types *datatype.Registry, typeName string) *graph.Node {
	return graph.NewNode(&graph.NodeType{
		Name:   "Source",
		Layout: graph.Layout{Outputs: ports(types, typeName, "value")},
	})
}
