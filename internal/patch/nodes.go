package patch

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/graph"
)

func (b *builder) nodes(ctx context.Context, roots []*fileRoot) error {
	logger := ctxlog.FromContext(ctx)
	var errs *multierror.Error
	for _, root := range roots {
		for _, nb := range root.Nodes {
			if _, dup := b.patch.nodes[nb.Name]; dup {
				errs = multierror.Append(errs, fmt.Errorf("%s: node %q: %w", nb.DefRange, nb.Name, ErrDuplicateNode))
				continue
			}
			n, err := b.reg.Instantiate(ctx, nb.Type)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: node %q: %w", nb.DefRange, nb.Name, err))
				continue
			}
			n.SetName(nb.Name)
			b.patch.nodes[nb.Name] = n
			b.patch.order = append(b.patch.order, nb.Name)

			if err := setLocals(nb.Inputs, "inputs", func(name string) (*datatype.Data, bool) {
				in, ok := n.InputNamed(name)
				if !ok {
					return nil, false
				}
				return in.Local(), true
			}); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("node %q: %w", nb.Name, err))
			}
			if err := setLocals(nb.Outputs, "outputs", func(name string) (*datatype.Data, bool) {
				out, ok := n.OutputNamed(name)
				if !ok {
					return nil, false
				}
				return out.Data(), true
			}); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("node %q: %w", nb.Name, err))
			}
			logger.Debug("Declared node.", "name", nb.Name, "type", nb.Type, "id", n.ID())
		}
	}
	return errs.ErrorOrNil()
}

// setLocals evaluates an `inputs`/`outputs` object and stores each attribute
// into the matching port's container.
func setLocals(expr hcl.Expression, attr string, lookup func(string) (*datatype.Data, bool)) error {
	if isAbsent(expr) {
		return nil
	}
	val, diags := expr.Value(literalContext)
	if diags.HasErrors() {
		return diags
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return fmt.Errorf("%s: %s must be an object, got %s", expr.Range(), attr, ty.FriendlyName())
	}

	var errs *multierror.Error
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		name := k.AsString()
		data, ok := lookup(name)
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("%s: %s.%s: %w", expr.Range(), attr, name, ErrUnknownPort))
			continue
		}
		if err := data.Coerce(v); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %s.%s: %w", expr.Range(), attr, name, err))
		}
	}
	return errs.ErrorOrNil()
}

func (b *builder) links(ctx context.Context, roots []*fileRoot) error {
	var errs *multierror.Error
	for _, root := range roots {
		for _, lb := range root.Links {
			if err := b.link(ctx, lb); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", lb.DefRange, err))
			}
		}
	}
	return errs.ErrorOrNil()
}

func (b *builder) link(ctx context.Context, lb *linkBlock) error {
	from, fromPort, err := b.endpoint(lb.From)
	if err != nil {
		return err
	}
	to, toPort, err := b.endpoint(lb.To)
	if err != nil {
		return err
	}
	out, ok := from.OutputNamed(fromPort)
	if !ok {
		return fmt.Errorf("%s has no output %q: %w", from, fromPort, ErrUnknownPort)
	}
	in, ok := to.InputNamed(toPort)
	if !ok {
		return fmt.Errorf("%s has no input %q: %w", to, toPort, ErrUnknownPort)
	}
	return graph.Connect(ctx, out, in)
}

// endpoint resolves a `node.port` traversal.
func (b *builder) endpoint(expr hcl.Expression) (*graph.Node, string, error) {
	trav, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() {
		return nil, "", diags
	}
	if len(trav) != 2 {
		return nil, "", fmt.Errorf("%s: link endpoint must be <node>.<port>: %w", expr.Range(), ErrInvalidPatch)
	}
	attr, ok := trav[1].(hcl.TraverseAttr)
	if !ok {
		return nil, "", fmt.Errorf("%s: link endpoint must be <node>.<port>: %w", expr.Range(), ErrInvalidPatch)
	}
	n, ok := b.patch.nodes[trav.RootName()]
	if !ok {
		return nil, "", fmt.Errorf("%s: %q: %w", expr.Range(), trav.RootName(), ErrUnknownNode)
	}
	return n, attr.Name, nil
}

func (b *builder) terminal(_ context.Context, roots []*fileRoot) error {
	var name string
	for _, root := range roots {
		if root.Terminal == nil {
			continue
		}
		if name != "" && name != *root.Terminal {
			return fmt.Errorf("terminal declared as both %q and %q: %w", name, *root.Terminal, ErrInvalidPatch)
		}
		name = *root.Terminal
	}
	if name == "" {
		return nil
	}
	n, ok := b.patch.nodes[name]
	if !ok {
		return fmt.Errorf("terminal %q: %w", name, ErrUnknownNode)
	}
	b.patch.Terminal = n
	return nil
}
