package registry

// Scope controls how long a resolved instance is reused.
type Scope string

const (
	// ScopeTransient constructs a fresh instance on every resolution.
	ScopeTransient Scope = "transient"
	// ScopeScoped constructs one instance per lifetime (typically one per test).
	ScopeScoped Scope = "scoped"
	// ScopeSingleton constructs or stores exactly one instance per container.
	ScopeSingleton Scope = "singleton"
)

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopeTransient, ScopeScoped, ScopeSingleton:
		return true
	}
	return false
}

// Binding associates a service key with a provider and a lifetime scope.
// Exactly one of Constructor and Instance is set: constructor-backed
// bindings are built by the container according to Scope, instance
// bindings always behave as singletons.
type Binding struct {
	Key         string
	Constructor interface{}
	Instance    interface{}
	Scope       Scope
}

// IsInstance reports whether the binding carries a pre-built instance.
func (b Binding) IsInstance() bool {
	return b.Constructor == nil
}
