package patch

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/graph"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/internal/updater"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// builder applies decoded files to a registry and a patch under construction.
type builder struct {
	reg   *registry.Registry
	patch *Patch
}

// literalContext is used for values written in the patch: defaults and
// node-local values. It exposes functions but no variables.
var literalContext = &hcl.EvalContext{Functions: updater.Functions()}

func (b *builder) valueTypes(ctx context.Context, roots []*fileRoot) error {
	logger := ctxlog.FromContext(ctx)
	for _, root := range roots {
		for _, vt := range root.ValueTypes {
			ty, diags := typeexpr.Type(vt.Type)
			if diags.HasErrors() {
				return fmt.Errorf("value type %q: %w", vt.Name, diags)
			}
			def, err := defaultValue(vt.Default, ty)
			if err != nil {
				return fmt.Errorf("value type %q at %s: %w", vt.Name, vt.DefRange, err)
			}
			if _, err := b.reg.Types().Register(ctx, vt.Name, ty, func() cty.Value { return def }); err != nil {
				return err
			}
			b.patch.ValueTypes = append(b.patch.ValueTypes, vt.Name)
			logger.Debug("Declared value type.", "name", vt.Name, "type", ty.FriendlyName())
		}
	}
	return nil
}

// defaultValue evaluates expr and converts it to ty. A missing default is the
// zero value of ty.
func defaultValue(expr hcl.Expression, ty cty.Type) (cty.Value, error) {
	val, diags := expr.Value(literalContext)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if val.IsNull() {
		return zeroValue(ty)
	}
	conv, err := convert.Convert(val, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("default: %w", err)
	}
	return conv, nil
}

func zeroValue(ty cty.Type) (cty.Value, error) {
	switch {
	case ty == cty.Number:
		return cty.Zero, nil
	case ty == cty.String:
		return cty.StringVal(""), nil
	case ty == cty.Bool:
		return cty.False, nil
	case ty.IsListType():
		return cty.ListValEmpty(ty.ElementType()), nil
	case ty.IsSetType():
		return cty.SetValEmpty(ty.ElementType()), nil
	case ty.IsMapType():
		return cty.MapValEmpty(ty.ElementType()), nil
	case ty.IsObjectType():
		if len(ty.AttributeTypes()) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(ty.AttributeTypes()))
		for name, aty := range ty.AttributeTypes() {
			v, err := zeroValue(aty)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[name] = v
		}
		return cty.ObjectVal(attrs), nil
	case ty.IsTupleType():
		elems := make([]cty.Value, len(ty.TupleElementTypes()))
		for i, ety := range ty.TupleElementTypes() {
			v, err := zeroValue(ety)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = v
		}
		return cty.TupleVal(elems), nil
	default:
		return cty.NilVal, fmt.Errorf("type %s needs an explicit default", ty.FriendlyName())
	}
}

func (b *builder) nodeTypes(ctx context.Context, roots []*fileRoot) error {
	logger := ctxlog.FromContext(ctx)
	for _, root := range roots {
		for _, nt := range root.NodeTypes {
			layout, exprs, err := b.nodeTypeLayout(nt)
			if err != nil {
				return fmt.Errorf("node type %q at %s: %w", nt.Name, nt.DefRange, err)
			}

			var u graph.Updater
			if len(exprs) > 0 {
				u = updater.NewExpr(portNames(nt.Inputs), portNames(nt.Outputs), exprs)
			}
			if _, err := b.reg.RegisterNode(ctx, nt.Name, layout, u); err != nil {
				return err
			}
			b.patch.NodeTypes = append(b.patch.NodeTypes, nt.Name)
			logger.Debug("Declared node type.", "name", nt.Name, "inputs", len(nt.Inputs), "outputs", len(nt.Outputs), "expressions", len(exprs))
		}
	}
	return nil
}

func (b *builder) nodeTypeLayout(nt *nodeTypeBlock) (graph.Layout, []updater.OutputExpr, error) {
	inputs, err := portSpecs(nt.Inputs)
	if err != nil {
		return graph.Layout{}, nil, err
	}
	outputs, err := portSpecs(nt.Outputs)
	if err != nil {
		return graph.Layout{}, nil, err
	}
	layout, err := b.reg.Layout(inputs, outputs)
	if err != nil {
		return graph.Layout{}, nil, err
	}

	for _, in := range nt.Inputs {
		if !isAbsent(in.Expr) {
			return graph.Layout{}, nil, fmt.Errorf("input %q at %s: only outputs take an expr", in.Name, in.DefRange)
		}
	}

	inputNames, outputNames := portNames(nt.Inputs), portNames(nt.Outputs)
	var exprs []updater.OutputExpr
	for i, out := range nt.Outputs {
		if isAbsent(out.Expr) {
			continue
		}
		if err := checkReferences(out.Expr, inputNames, outputNames); err != nil {
			return graph.Layout{}, nil, fmt.Errorf("output %q: %w", out.Name, err)
		}
		exprs = append(exprs, updater.OutputExpr{Output: i, Expr: out.Expr})
	}
	return layout, exprs, nil
}

func portSpecs(blocks []*portBlock) ([]registry.PortSpec, error) {
	specs := make([]registry.PortSpec, len(blocks))
	for i, p := range blocks {
		access := graph.Read
		if p.Access != nil {
			var err error
			if access, err = parseAccess(*p.Access); err != nil {
				return nil, fmt.Errorf("port %q: %w", p.Name, err)
			}
		}
		specs[i] = registry.PortSpec{Name: p.Name, Type: p.Type, Access: access}
	}
	return specs, nil
}

func parseAccess(s string) (graph.Access, error) {
	switch s {
	case "read":
		return graph.Read, nil
	case "read_write":
		return graph.ReadWrite, nil
	default:
		return 0, fmt.Errorf("invalid access %q: must be read or read_write", s)
	}
}

func portNames(blocks []*portBlock) []string {
	names := make([]string, len(blocks))
	for i, p := range blocks {
		names[i] = p.Name
	}
	return names
}

// isAbsent reports whether an optional expression attribute was left out.
// gohcl stands in a static null for missing attributes.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if len(expr.Variables()) > 0 {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}

// checkReferences rejects variables other than inputs.<name> and
// outputs.<name> for declared ports.
func checkReferences(expr hcl.Expression, inputs, outputs []string) error {
	for _, trav := range expr.Variables() {
		var names []string
		switch trav.RootName() {
		case "inputs":
			names = inputs
		case "outputs":
			names = outputs
		default:
			return fmt.Errorf("%s: unknown variable %q, expressions may only refer to inputs and outputs", trav.SourceRange(), trav.RootName())
		}
		if len(trav) < 2 {
			continue
		}
		attr, ok := trav[1].(hcl.TraverseAttr)
		if !ok {
			continue
		}
		if !slices.Contains(names, attr.Name) {
			return fmt.Errorf("%s: %s.%s: %w", trav.SourceRange(), trav.RootName(), attr.Name, ErrUnknownPort)
		}
	}
	return nil
}
