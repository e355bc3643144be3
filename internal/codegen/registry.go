package codegen

import (
	"fmt"
	"sort"

	"github.com/okra-platform/rpcgen/internal/schema"
)

// Registry manages available backends. It is filled once at start-up and
// read-only afterwards.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a new, empty backend registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a backend factory; registering a name twice is an invariant violation
func (r *Registry) Register(name string, factory Factory) error {
	if _, exists := r.factories[name]; exists {
		return Invariantf("backend %s is already registered", name)
	}
	if factory == nil {
		return Invariantf("backend %s has no factory", name)
	}
	r.factories[name] = factory
	return nil
}

// Lookup returns the factory registered under name
func (r *Registry) Lookup(name string) (Factory, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
	return factory, nil
}

// New creates a generator for the named backend
func (r *Registry) New(name string, s *schema.Schema, cfg Config) (Generator, error) {
	factory, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return factory(s, cfg)
}

// List returns the registered backend names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
