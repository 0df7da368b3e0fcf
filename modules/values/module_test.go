package values

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func TestRegister(t *testing.T) {
	ctx := ctxlog.Discard()
	r := registry.New(datatype.NewRegistry())
	require.NoError(t, r.Load(ctx, &Module{}))

	assert.Equal(t,
		[]string{Float, FrameBuffer, Int, Mat4, Texture2D, Uint, Vec2, Vec3, Vec4},
		r.Types().Names())

	t.Run("scalar defaults are zero", func(t *testing.T) {
		for _, name := range []string{Int, Uint, Float} {
			d, err := r.Types().Create(name)
			require.NoError(t, err)
			v, err := datatype.Get[float64](d)
			require.NoError(t, err)
			assert.Zero(t, v, name)
		}
	})

	t.Run("mat4 defaults to identity", func(t *testing.T) {
		d, err := r.Types().Create(Mat4)
		require.NoError(t, err)
		elems, err := datatype.Get[[]float32](d)
		require.NoError(t, err)
		want := gfx.Identity()
		assert.Equal(t, want[:], elems)
	})

	t.Run("handles default to null", func(t *testing.T) {
		d, err := r.Types().Create(Texture2D)
		require.NoError(t, err)
		assert.True(t, d.Value().IsNull())
		tex, err := datatype.Get[*gfx.Texture2D](d)
		require.NoError(t, err)
		assert.Nil(t, tex)
	})

	t.Run("vectors round trip", func(t *testing.T) {
		d, err := r.Types().Create(Vec4)
		require.NoError(t, err)
		require.NoError(t, datatype.Put(d, gfx.Vec4{X: 1, Y: 2, Z: 3, W: 4}))
		v, err := datatype.Get[gfx.Vec4](d)
		require.NoError(t, err)
		assert.Equal(t, gfx.Vec4{X: 1, Y: 2, Z: 3, W: 4}, v)
	})

	t.Run("integer types reject fractions and out of range values", func(t *testing.T) {
		testCases := []struct {
			name  string
			value cty.Value
		}{
			{Uint, cty.NumberFloatVal(-1.5)},
			{Uint, cty.NumberIntVal(-1)},
			{Uint, cty.NumberUIntVal(math.MaxUint32 + 1)},
			{Int, cty.NumberFloatVal(0.5)},
			{Int, cty.NumberIntVal(math.MaxInt32 + 1)},
			{Int, cty.PositiveInfinity},
		}
		for _, tc := range testCases {
			d, err := r.Types().Create(tc.name)
			require.NoError(t, err)
			err = d.Set(tc.value)
			assert.ErrorIs(t, err, datatype.ErrTypeMismatch, "%s <- %s", tc.name, tc.value.GoString())
			assert.ErrorContains(t, err, "whole number")
		}

		d, err := r.Types().Create(Uint)
		require.NoError(t, err)
		require.NoError(t, d.Set(cty.NumberUIntVal(math.MaxUint32)))
		require.NoError(t, d.Coerce(cty.StringVal("12")))
		assert.Error(t, d.Coerce(cty.StringVal("1.25")))

		d, err = r.Types().Create(Int)
		require.NoError(t, err)
		require.NoError(t, datatype.Put(d, int32(math.MinInt32)))
	})

	t.Run("float types reject infinities", func(t *testing.T) {
		d, err := r.Types().Create(Float)
		require.NoError(t, err)
		require.NoError(t, d.Set(cty.NumberFloatVal(-0.25)))
		assert.ErrorIs(t, d.Set(cty.PositiveInfinity), ErrNonFinite)
		assert.ErrorIs(t, datatype.Put(d, math.Inf(-1)), datatype.ErrTypeMismatch)

		v, err := r.Types().Create(Vec3)
		require.NoError(t, err)
		err = v.Set(cty.ObjectVal(map[string]cty.Value{
			"x": cty.NumberIntVal(1), "y": cty.PositiveInfinity, "z": cty.NumberIntVal(0),
		}))
		assert.ErrorIs(t, err, ErrNonFinite)
	})

	t.Run("registering twice fails", func(t *testing.T) {
		err := r.Load(ctx, &Module{})
		assert.ErrorIs(t, err, datatype.ErrDuplicateType)
	})
}
