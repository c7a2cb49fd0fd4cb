package di

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/testhost/errors"
	"github.com/kbukum/testhost/registry"
)

// Lifetime is a resolution scope. Scoped bindings are cached per
// lifetime; singletons are shared with the owning container; transient
// bindings are never cached. A fixture opens one lifetime per test and
// closes it on reset.
type Lifetime struct {
	id     string
	c      *Container
	scoped map[string]interface{}
	mu     sync.Mutex
}

// NewLifetime opens a fresh resolution scope on the container.
func (c *Container) NewLifetime() *Lifetime {
	return &Lifetime{
		id:     uuid.New().String(),
		c:      c,
		scoped: make(map[string]interface{}),
	}
}

// ID returns the lifetime's unique identifier.
func (l *Lifetime) ID() string {
	return l.id
}

// Resolve resolves a service within this lifetime.
func (l *Lifetime) Resolve(key string) (interface{}, error) {
	b, ok := l.c.bindings[key]
	if !ok {
		return nil, errors.MissingDependency(key)
	}

	if b.IsInstance() {
		return b.Instance, nil
	}

	switch b.Scope {
	case registry.ScopeSingleton:
		return l.c.resolveSingleton(key, b, l)
	case registry.ScopeScoped:
		return l.resolveScoped(key, b)
	default:
		return callConstructor(key, b.Constructor, l)
	}
}

// Contains reports whether a binding exists for key.
func (l *Lifetime) Contains(key string) bool {
	return l.c.Contains(key)
}

// Close releases scoped instances constructed within this lifetime.
func (l *Lifetime) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, instance := range l.scoped {
		closeInstance(l.c.log, key, instance)
	}
	l.scoped = make(map[string]interface{})
	return nil
}

func (l *Lifetime) resolveScoped(key string, b registry.Binding) (interface{}, error) {
	l.mu.Lock()
	if instance, ok := l.scoped[key]; ok {
		l.mu.Unlock()
		return instance, nil
	}
	l.mu.Unlock()

	instance, err := callConstructor(key, b.Constructor, l)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.scoped[key]; ok {
		return existing, nil
	}
	l.scoped[key] = instance
	return instance, nil
}
