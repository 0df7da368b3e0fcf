package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/graph"
)

var (
	// ErrDuplicateNodeType is returned when a node type name is registered twice.
	ErrDuplicateNodeType = errors.New("node type already registered")
	// ErrUnknownNodeType is returned when instantiating an unregistered name.
	ErrUnknownNodeType = errors.New("unknown node type")
	// ErrInvalidLayout is returned for layouts with duplicate, untyped or
	// foreign-typed ports.
	ErrInvalidLayout = errors.New("invalid node layout")
	// ErrFrozen is returned when registering into a frozen registry.
	ErrFrozen = errors.New("node type registry is frozen")
)

// Module is implemented by packages that contribute value and node types.
type Module interface {
	Register(ctx context.Context, r *Registry) error
}

// Registry holds the node types of one application instance.
type Registry struct {
	mu     sync.RWMutex
	types  *datatype.Registry
	nodes  map[string]*graph.NodeType
	frozen bool
}

// New creates an empty node type registry resolving value types from types.
func New(types *datatype.Registry) *Registry {
	return &Registry{
		types: types,
		nodes: make(map[string]*graph.NodeType),
	}
}

// Types returns the value type registry layouts are resolved against.
func (r *Registry) Types() *datatype.Registry { return r.types }

// RegisterNode stores a new node type. The updater is shared by every
// instance of the type; nil means the type is a pure source.
func (r *Registry) RegisterNode(ctx context.Context, name string, layout graph.Layout, updater graph.Updater) (*graph.NodeType, error) {
	logger := ctxlog.FromContext(ctx)
	if err := r.validateLayout(layout); err != nil {
		return nil, fmt.Errorf("node type %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return nil, fmt.Errorf("registering node type %q: %w", name, ErrFrozen)
	}
	if _, exists := r.nodes[name]; exists {
		return nil, fmt.Errorf("node type %q: %w", name, ErrDuplicateNodeType)
	}

	nt := &graph.NodeType{
		Name: name,
		Layout: graph.Layout{
			Inputs:  slices.Clone(layout.Inputs),
			Outputs: slices.Clone(layout.Outputs),
		},
		Updater: updater,
	}
	r.nodes[name] = nt
	logger.Debug("Registered node type.", "name", name, "inputs", len(layout.Inputs), "outputs", len(layout.Outputs))
	return nt, nil
}

// TypeOf returns the node type registered under name.
func (r *Registry) TypeOf(name string) (*graph.NodeType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nt, ok := r.nodes[name]
	return nt, ok
}

// Instantiate creates a new node of the named type. When the type's updater
// is a graph.Provisioner its outputs are populated here, once.
func (r *Registry) Instantiate(ctx context.Context, name string) (*graph.Node, error) {
	nt, ok := r.TypeOf(name)
	if !ok {
		return nil, fmt.Errorf("instantiating %q: %w", name, ErrUnknownNodeType)
	}

	n := graph.NewNode(nt)
	if p, ok := nt.Updater.(graph.Provisioner); ok {
		if err := p.Provision(ctx, n); err != nil {
			return nil, fmt.Errorf("provisioning %q: %w", name, err)
		}
	}
	ctxlog.FromContext(ctx).Debug("Node instantiated.", "type", name, "id", n.ID())
	return n, nil
}

// Names returns every registered node type name in sorted order, for
// "available nodes" listings.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.nodes))
	for name := range r.nodes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Freeze ends the registration phase for node types and value types.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
	r.types.Freeze()
}

// Load registers every module in order, stopping at the first failure.
func (r *Registry) Load(ctx context.Context, modules ...Module) error {
	for _, mod := range modules {
		if err := mod.Register(ctx, r); err != nil {
			return fmt.Errorf("registering module %T: %w", mod, err)
		}
	}
	ctxlog.FromContext(ctx).Debug("Modules registered.", "modules", len(modules), "node_types", len(r.Names()))
	return nil
}

// validateLayout also requires every port type to be the descriptor this
// registry's type registry holds under that name, so port containers are
// always created from registered types.
func (r *Registry) validateLayout(layout graph.Layout) error {
	check := func(kind string, ports []graph.PortDescriptor) error {
		seen := make(map[string]struct{}, len(ports))
		for _, p := range ports {
			if p.Name == "" {
				return fmt.Errorf("%s port with empty name: %w", kind, ErrInvalidLayout)
			}
			if p.Type == nil {
				return fmt.Errorf("%s port %q has no value type: %w", kind, p.Name, ErrInvalidLayout)
			}
			if desc, ok := r.types.Lookup(p.Type.Name()); !ok || desc != p.Type {
				return fmt.Errorf("%s port %q: value type %s is not registered here: %w", kind, p.Name, p.Type, ErrInvalidLayout)
			}
			if _, dup := seen[p.Name]; dup {
				return fmt.Errorf("duplicate %s port %q: %w", kind, p.Name, ErrInvalidLayout)
			}
			seen[p.Name] = struct{}{}
		}
		return nil
	}
	if err := check("input", layout.Inputs); err != nil {
		return err
	}
	return check("output", layout.Outputs)
}
