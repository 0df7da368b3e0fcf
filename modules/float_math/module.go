// Package float_math provides the scalar arithmetic node types Sin, Add,
// Multiply and Divide.
package float_math

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/internal/updater"
	"github.com/vk/kiwigraph/modules/values"
)

var (
	// ErrDivideByZero fails a Divide update whose divisor is zero.
	ErrDivideByZero = errors.New("division by zero")
	// ErrNonFinite fails an update whose result overflowed to an infinity
	// or is not a number.
	ErrNonFinite = errors.New("result is not a finite number")
)

// Module implements the registry.Module interface for this package.
type Module struct{}

type binaryOp func(a, b float64) (float64, error)

// Register registers the node types.
func (m *Module) Register(ctx context.Context, r *registry.Registry) error {
	unary, err := r.Layout(
		[]registry.PortSpec{registry.In("x", values.Float)},
		[]registry.PortSpec{registry.Out("out", values.Float)},
	)
	if err != nil {
		return err
	}
	if _, err := r.RegisterNode(ctx, "Sin", unary, updater.NewDynamicErr(onSin)); err != nil {
		return err
	}

	binary, err := r.Layout(
		[]registry.PortSpec{registry.In("a", values.Float), registry.In("b", values.Float)},
		[]registry.PortSpec{registry.Out("out", values.Float)},
	)
	if err != nil {
		return err
	}
	for _, op := range []struct {
		name string
		fn   binaryOp
	}{
		{"Add", func(a, b float64) (float64, error) { return a + b, nil }},
		{"Multiply", func(a, b float64) (float64, error) { return a * b, nil }},
		{"Divide", divide},
	} {
		if _, err := r.RegisterNode(ctx, op.name, binary, binaryUpdater(op.fn)); err != nil {
			return err
		}
	}
	return nil
}

func onSin(_ context.Context, inputs, outputs []*datatype.Data) error {
	x, err := datatype.Get[float64](inputs[0])
	if err != nil {
		return err
	}
	return putFinite(outputs[0], math.Sin(x))
}

func putFinite(d *datatype.Data, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %g", ErrNonFinite, v)
	}
	return datatype.Put(d, v)
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func binaryUpdater(fn binaryOp) *updater.Dynamic {
	return updater.NewDynamicErr(func(_ context.Context, inputs, outputs []*datatype.Data) error {
		a, err := datatype.Get[float64](inputs[0])
		if err != nil {
			return err
		}
		b, err := datatype.Get[float64](inputs[1])
		if err != nil {
			return err
		}
		res, err := fn(a, b)
		if err != nil {
			return err
		}
		return putFinite(outputs[0], res)
	})
}
