// Package print provides sink node types that write their input to an
// output stream, one per printable value type.
package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/internal/updater"
	"github.com/vk/kiwigraph/modules/values"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out receives printed values. Nil means os.Stdout.
	Out io.Writer
}

// Printable lists the value types a Print node type is registered for.
var Printable = []string{values.Int, values.Uint, values.Float, values.Vec2, values.Vec3, values.Vec4}

// Register registers "Print<Type>" for every printable type.
func (m *Module) Register(ctx context.Context, r *registry.Registry) error {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	for _, typeName := range Printable {
		layout, err := r.Layout([]registry.PortSpec{registry.In("value", typeName)}, nil)
		if err != nil {
			return err
		}
		if _, err := r.RegisterNode(ctx, "Print"+typeName, layout, updater.NewDynamicErr(onPrint(out))); err != nil {
			return err
		}
	}
	return nil
}

func onPrint(out io.Writer) updater.ErrFunc {
	return func(ctx context.Context, inputs, _ []*datatype.Data) error {
		text := Format(inputs[0].Value())
		ctxlog.FromContext(ctx).Debug("Printing input.", "type", inputs[0].Type().Name(), "value", text)
		_, err := fmt.Fprintf(out, "      value = %s\n", text)
		return err
	}
}

// Format renders numbers and objects of numbers compactly, e.g. "2.5" or
// "{x=1, y=0.5}".
func Format(v cty.Value) string {
	switch {
	case v.IsNull():
		return "(null)"
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('g', -1)
	case v.Type() == cty.String:
		return strconv.Quote(v.AsString())
	case v.Type().IsObjectType():
		var b strings.Builder
		b.WriteByte('{')
		// Object attributes iterate in name order.
		first := true
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			if !first {
				b.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&b, "%s=%s", k.AsString(), Format(ev))
		}
		b.WriteByte('}')
		return b.String()
	default:
		return v.GoString()
	}
}
