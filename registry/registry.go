package registry

import "fmt"

// Registry is the ordered sequence of bindings a container resolves
// against. Later entries for the same key shadow earlier ones, matching
// standard container semantics.
//
// A Registry is either open (accepting bindings) or finalized
// (read-only). Reconcile produces finalized registries; a fixture
// discards its registry and starts from an empty open one on reset.
type Registry struct {
	bindings  []Binding
	finalized bool
}

// New creates an empty, open registry.
func New() *Registry {
	return &Registry{bindings: make([]Binding, 0)}
}

// Add appends a constructor-backed binding for key with the given scope.
// Registering the same key again shadows the earlier binding.
func (r *Registry) Add(key string, constructor interface{}, scope Scope) error {
	if r.finalized {
		return fmt.Errorf("registry: cannot add %q: registry is finalized", key)
	}
	if key == "" {
		return fmt.Errorf("registry: binding key must not be empty")
	}
	if constructor == nil {
		return fmt.Errorf("registry: constructor for %q must not be nil", key)
	}
	if !scope.Valid() {
		return fmt.Errorf("registry: invalid scope %q for %q", scope, key)
	}
	r.bindings = append(r.bindings, Binding{Key: key, Constructor: constructor, Scope: scope})
	return nil
}

// AddInstance appends a pre-built instance binding for key. Instance
// bindings are always singletons.
func (r *Registry) AddInstance(key string, instance interface{}) error {
	if r.finalized {
		return fmt.Errorf("registry: cannot add %q: registry is finalized", key)
	}
	if key == "" {
		return fmt.Errorf("registry: binding key must not be empty")
	}
	if instance == nil {
		return fmt.Errorf("registry: instance for %q must not be nil", key)
	}
	r.bindings = append(r.bindings, Binding{Key: key, Instance: instance, Scope: ScopeSingleton})
	return nil
}

// Bindings returns a copy of the binding sequence in registration order.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	return len(r.bindings)
}

// Contains reports whether at least one binding exists for key.
func (r *Registry) Contains(key string) bool {
	for _, b := range r.bindings {
		if b.Key == key {
			return true
		}
	}
	return false
}

// Finalized reports whether the registry is read-only.
func (r *Registry) Finalized() bool {
	return r.finalized
}
