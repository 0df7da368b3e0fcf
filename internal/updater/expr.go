package updater

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/zclconf/go-cty/cty"
)

// OutputExpr binds an HCL expression to an output index.
type OutputExpr struct {
	Output int
	Expr   hcl.Expression
}

// NewExpr builds a dynamic strategy evaluating one expression per output.
// Expressions see `inputs` (an object of input values keyed by port name) and
// `outputs` (the outputs' previous values). All expressions are evaluated
// before any output is written, so a failure leaves every output unchanged.
func NewExpr(inputNames, outputNames []string, exprs []OutputExpr) *Dynamic {
	funcs := Functions()
	return NewDynamicErr(func(_ context.Context, inputs, outputs []*datatype.Data) error {
		evalCtx := &hcl.EvalContext{
			Variables: map[string]cty.Value{
				"inputs":  objectOf(inputNames, inputs),
				"outputs": objectOf(outputNames, outputs),
			},
			Functions: funcs,
		}

		staged := make([]*datatype.Data, len(exprs))
		for i, oe := range exprs {
			val, diags := oe.Expr.Value(evalCtx)
			if diags.HasErrors() {
				return fmt.Errorf("evaluating output %q: %w", outputNames[oe.Output], diags)
			}
			next := outputs[oe.Output].Type().New()
			if err := next.Coerce(val); err != nil {
				return fmt.Errorf("output %q: %w", outputNames[oe.Output], err)
			}
			staged[i] = next
		}
		for i, oe := range exprs {
			if err := outputs[oe.Output].Set(staged[i].Value()); err != nil {
				return err
			}
		}
		return nil
	})
}

func objectOf(names []string, data []*datatype.Data) cty.Value {
	if len(names) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(names))
	for i, name := range names {
		attrs[name] = data[i].Value()
	}
	return cty.ObjectVal(attrs)
}
