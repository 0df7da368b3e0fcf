package updater

import (
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Functions returns the function table available to node expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"abs":    stdlib.AbsoluteFunc,
		"ceil":   stdlib.CeilFunc,
		"floor":  stdlib.FloorFunc,
		"max":    stdlib.MaxFunc,
		"min":    stdlib.MinFunc,
		"pow":    stdlib.PowFunc,
		"signum": stdlib.SignumFunc,
		"log":    stdlib.LogFunc,
		"format": stdlib.FormatFunc,
		"upper":  stdlib.UpperFunc,
		"lower":  stdlib.LowerFunc,
		"sin":    unaryMath(math.Sin),
		"cos":    unaryMath(math.Cos),
		"sqrt":   unaryMath(math.Sqrt),
		"clamp":  clampFunc,
		"mix":    mixFunc,
	}
}

func unaryMath(fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "x", Type: cty.Number}},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			return cty.NumberFloatVal(fn(x)), nil
		},
	})
}

var clampFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "x", Type: cty.Number},
		{Name: "lo", Type: cty.Number},
		{Name: "hi", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		x, _ := args[0].AsBigFloat().Float64()
		lo, _ := args[1].AsBigFloat().Float64()
		hi, _ := args[2].AsBigFloat().Float64()
		return cty.NumberFloatVal(math.Min(math.Max(x, lo), hi)), nil
	},
})

var mixFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "a", Type: cty.Number},
		{Name: "b", Type: cty.Number},
		{Name: "t", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		a, _ := args[0].AsBigFloat().Float64()
		b, _ := args[1].AsBigFloat().Float64()
		t, _ := args[2].AsBigFloat().Float64()
		return cty.NumberFloatVal(a*(1-t) + b*t), nil
	},
})
