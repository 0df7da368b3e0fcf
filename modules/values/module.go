// Package values registers the standard value types: scalars, vectors, a
// 4x4 matrix and the GPU handle types used by shader nodes.
package values

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Type names registered by this module.
const (
	Int         = "Int"
	Uint        = "Uint"
	Float       = "Float"
	Vec2        = "Vec2"
	Vec3        = "Vec3"
	Vec4        = "Vec4"
	Mat4        = "Mat4"
	Texture2D   = "Texture2D"
	FrameBuffer = "FrameBuffer"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ErrNonFinite rejects infinities in numeric value types.
var ErrNonFinite = errors.New("number must be finite")

type valueType struct {
	name     string
	ty       cty.Type
	zero     any
	validate datatype.Validator
}

func standardTypes() []valueType {
	identity := gfx.Identity()
	return []valueType{
		{Int, cty.Number, int32(0), wholeNumber(math.MinInt32, math.MaxInt32)},
		{Uint, cty.Number, uint32(0), wholeNumber(0, math.MaxUint32)},
		{Float, cty.Number, float32(0), finite},
		{Vec2, gfx.Vec2Type, gfx.Vec2{}, finite},
		{Vec3, gfx.Vec3Type, gfx.Vec3{}, finite},
		{Vec4, gfx.Vec4Type, gfx.Vec4{}, finite},
		{Mat4, gfx.Mat4Type, identity[:], finite},
		{Texture2D, gfx.TextureType, nil, nil},
		{FrameBuffer, gfx.FrameBufferType, nil, nil},
	}
}

// wholeNumber accepts integers in [lo, hi].
func wholeNumber(lo, hi int64) datatype.Validator {
	lower, upper := new(big.Float).SetInt64(lo), new(big.Float).SetInt64(hi)
	return func(v cty.Value) error {
		bf := v.AsBigFloat()
		if !bf.IsInt() || bf.Cmp(lower) < 0 || bf.Cmp(upper) > 0 {
			return fmt.Errorf("%s is not a whole number between %d and %d", bf.Text('g', -1), lo, hi)
		}
		return nil
	}
}

// finite rejects infinities anywhere in a number, vector or matrix value.
func finite(v cty.Value) error {
	return cty.Walk(v, func(_ cty.Path, el cty.Value) (bool, error) {
		if el.Type() == cty.Number && !el.IsNull() && el.AsBigFloat().IsInf() {
			return false, ErrNonFinite
		}
		return true, nil
	})
}

// Register registers the value types with the registry's type registry.
func (m *Module) Register(ctx context.Context, r *registry.Registry) error {
	for _, vt := range standardTypes() {
		def := cty.NullVal(vt.ty)
		if vt.zero != nil {
			v, err := gocty.ToCtyValue(vt.zero, vt.ty)
			if err != nil {
				return fmt.Errorf("default of %s: %w", vt.name, err)
			}
			def = v
		}
		var opts []datatype.TypeOption
		if vt.validate != nil {
			opts = append(opts, datatype.WithValidator(vt.validate))
		}
		if _, err := r.Types().Register(ctx, vt.name, vt.ty, func() cty.Value { return def }, opts...); err != nil {
			return err
		}
	}
	return nil
}
