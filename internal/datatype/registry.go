package datatype

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Factory produces the default value of a registered type.
type Factory func() cty.Value

// Validator checks a known, non-null value beyond its cty type, such as the
// range of an integer type that shares cty.Number with Float.
type Validator func(cty.Value) error

// TypeOption configures a type at registration.
type TypeOption func(*TypeDescriptor)

// WithValidator makes every write to containers of the type run v.
func WithValidator(v Validator) TypeOption {
	return func(d *TypeDescriptor) { d.validate = v }
}

// TypeDescriptor identifies one registered value type.
type TypeDescriptor struct {
	name     string
	ty       cty.Type
	factory  Factory
	validate Validator
}

// Name returns the registered type name.
func (d *TypeDescriptor) Name() string { return d.name }

// CtyType returns the cty.Type values of this type are stored as.
func (d *TypeDescriptor) CtyType() cty.Type { return d.ty }

func (d *TypeDescriptor) String() string { return d.name }

// Validate runs the type's validator, if any, on a known non-null value.
func (d *TypeDescriptor) Validate(v cty.Value) error {
	if d.validate == nil || v.IsNull() || !v.IsWhollyKnown() {
		return nil
	}
	return d.validate(v)
}

// New creates a fresh container holding the type's default value.
func (d *TypeDescriptor) New() *Data {
	return &Data{desc: d, val: d.factory()}
}

// Registry maps type names to descriptors. Registration is expected to happen
// during startup; once Freeze is called the registry is read-only and safe to
// share with evaluation passes.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]*TypeDescriptor
	frozen bool
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*TypeDescriptor)}
}

// Register adds a named type. The factory is invoked once to check that it
// produces valid values of ty.
func (r *Registry) Register(ctx context.Context, name string, ty cty.Type, factory Factory, opts ...TypeOption) (*TypeDescriptor, error) {
	logger := ctxlog.FromContext(ctx)
	if factory == nil {
		factory = func() cty.Value { return cty.NullVal(ty) }
	}
	desc := &TypeDescriptor{name: name, ty: ty, factory: factory}
	for _, opt := range opts {
		opt(desc)
	}
	def := factory()
	if !def.Type().Equals(ty) {
		return nil, fmt.Errorf("value type %q: factory produced %s, declared %s: %w",
			name, def.Type().FriendlyName(), ty.FriendlyName(), ErrTypeMismatch)
	}
	if err := desc.Validate(def); err != nil {
		return nil, fmt.Errorf("value type %q: invalid default: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return nil, fmt.Errorf("registering value type %q: %w", name, ErrFrozen)
	}
	if _, exists := r.types[name]; exists {
		return nil, fmt.Errorf("value type %q: %w", name, ErrDuplicateType)
	}
	r.types[name] = desc
	logger.Debug("Registered value type.", "name", name, "cty_type", ty.FriendlyName())
	return desc, nil
}

// Create returns a new container for the named type holding its default value.
func (r *Registry) Create(name string) (*Data, error) {
	desc, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("creating %q: %w", name, ErrUnknownType)
	}
	return desc.New(), nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.types[name]
	return desc, ok
}

// MustLookup is Lookup for names the caller registered itself.
func (r *Registry) MustLookup(name string) *TypeDescriptor {
	desc, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("datatype: no type named %q", name))
	}
	return desc
}

// Names returns all registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Freeze ends the registration phase.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}
