package registry

import (
	"fmt"

	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/graph"
)

// PortSpec names a port and its value type by registered type name.
type PortSpec struct {
	Name   string
	Type   string
	Access graph.Access
}

// In is shorthand for a read-only PortSpec.
func In(name, typeName string) PortSpec {
	return PortSpec{Name: name, Type: typeName}
}

// Out is shorthand for a read-only output PortSpec.
func Out(name, typeName string) PortSpec {
	return PortSpec{Name: name, Type: typeName}
}

// Layout resolves port specs against the value type registry.
func (r *Registry) Layout(inputs, outputs []PortSpec) (graph.Layout, error) {
	var layout graph.Layout
	var err error
	if layout.Inputs, err = r.resolve(inputs); err != nil {
		return graph.Layout{}, err
	}
	if layout.Outputs, err = r.resolve(outputs); err != nil {
		return graph.Layout{}, err
	}
	return layout, nil
}

func (r *Registry) resolve(specs []PortSpec) ([]graph.PortDescriptor, error) {
	descs := make([]graph.PortDescriptor, 0, len(specs))
	for _, s := range specs {
		ty, ok := r.types.Lookup(s.Type)
		if !ok {
			return nil, fmt.Errorf("port %q: %w %q: %w", s.Name, datatype.ErrUnknownType, s.Type, ErrInvalidLayout)
		}
		descs = append(descs, graph.PortDescriptor{Name: s.Name, Type: ty, Access: s.Access})
	}
	return descs, nil
}
