package print

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/modules/values"
	"github.com/zclconf/go-cty/cty"
)

func TestPrintNodes(t *testing.T) {
	ctx := ctxlog.Discard()
	var out bytes.Buffer
	r := registry.New(datatype.NewRegistry())
	require.NoError(t, r.Load(ctx, &values.Module{}, &Module{Out: &out}))

	for _, typeName := range Printable {
		_, ok := r.TypeOf("Print" + typeName)
		assert.True(t, ok, typeName)
	}

	f, err := r.Instantiate(ctx, "PrintFloat")
	require.NoError(t, err)
	require.NoError(t, datatype.Put(f.Input(0).Local(), 2.5))
	require.NoError(t, f.Update(ctx))

	v, err := r.Instantiate(ctx, "PrintVec3")
	require.NoError(t, err)
	require.NoError(t, datatype.Put(v.Input(0).Local(), gfx.Vec3{X: 1, Y: 0.5}))
	require.NoError(t, v.Update(ctx))

	assert.Equal(t, "      value = 2.5\n      value = {x=1, y=0.5, z=0}\n", out.String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "(null)", Format(cty.NullVal(cty.Number)))
	assert.Equal(t, "-3", Format(cty.NumberIntVal(-3)))
	assert.Equal(t, `"hi"`, Format(cty.StringVal("hi")))
}
