package orchestrator

import "github.com/mdelgado-io/platformforge/internal/resolve"

// Registry maps component names created or resolved during one run to their
// platform identities. A fresh registry is created per run; nothing leaks
// between runs.
type Registry struct {
	entries map[string]resolve.ComponentRef
}

// NewRegistry creates an empty run registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]resolve.ComponentRef)}
}

// Register records a component's identity under its plan name.
func (r *Registry) Register(name, id, componentType string) {
	r.entries[name] = resolve.ComponentRef{ID: id, Type: componentType}
}

// Lookup returns the registered component for name, if any.
func (r *Registry) Lookup(name string) (resolve.ComponentRef, bool) {
	ref, ok := r.entries[name]
	return ref, ok
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.entries)
}
