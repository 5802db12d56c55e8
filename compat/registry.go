package compat

import (
	"fmt"
	"sort"
)

// Registry is a store for legacy operations that allows retrieval by legacy
// name. Rule sets are static configuration; a Registry is built once at
// startup and read-only afterwards.
type Registry struct {
	ops map[string]*Operation
}

// NewRegistry creates a Registry with the provided operations.
func NewRegistry(ops ...*Operation) *Registry {
	r := &Registry{ops: make(map[string]*Operation, len(ops))}
	r.Register(ops...)

	return r
}

// Register adds operations to the registry. Registering a name twice
// overwrites the earlier entry.
func (r *Registry) Register(ops ...*Operation) {
	for _, op := range ops {
		r.ops[op.Name] = op
	}
}

// Retrieve returns the operation registered under the legacy name.
func (r *Registry) Retrieve(name string) (*Operation, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrOperationNotFound)
	}

	return op, nil
}

// Names returns all registered legacy names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.ops)
}
