package di

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/kbukum/testhost/errors"
	"github.com/kbukum/testhost/logger"
	"github.com/kbukum/testhost/registry"
)

// Resolver resolves service instances by key. Both *Container and
// *Lifetime implement it; constructors may accept a Resolver parameter
// to pull in their own dependencies.
type Resolver interface {
	Resolve(key string) (interface{}, error)
	Contains(key string) bool
}

// RegistrationInfo describes a binding for introspection.
type RegistrationInfo struct {
	Key      string
	Scope    registry.Scope
	Instance bool
}

// Container resolves services against a finalized registry. Later
// bindings for the same key shadow earlier ones.
type Container struct {
	bindings   map[string]registry.Binding
	order      []string
	singletons map[string]interface{}
	root       *Lifetime
	log        *logger.Logger
	mu         sync.Mutex
}

// FromRegistry builds a container from a finalized registry. Constructor
// bindings are checked to be functions up front so misconfiguration
// surfaces at build time, not on first resolve.
func FromRegistry(reg *registry.Registry, log *logger.Logger) (*Container, error) {
	if !reg.Finalized() {
		return nil, fmt.Errorf("di: container requires a finalized registry")
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	c := &Container{
		bindings:   make(map[string]registry.Binding),
		singletons: make(map[string]interface{}),
		log:        log.WithComponent("di"),
	}

	for _, b := range reg.Bindings() {
		if !b.IsInstance() && reflect.ValueOf(b.Constructor).Kind() != reflect.Func {
			return nil, errors.BadConstructor(b.Key, "must be a function")
		}
		if _, seen := c.bindings[b.Key]; !seen {
			c.order = append(c.order, b.Key)
		}
		c.bindings[b.Key] = b
	}

	c.root = c.NewLifetime()

	c.log.Debug("Container built", map[string]interface{}{
		"bindings": len(c.bindings),
	})
	return c, nil
}

// Resolve resolves a service through the container's root lifetime.
func (c *Container) Resolve(key string) (interface{}, error) {
	return c.root.Resolve(key)
}

// Contains reports whether a binding exists for key.
func (c *Container) Contains(key string) bool {
	_, ok := c.bindings[key]
	return ok
}

// Registrations returns info about all bindings in registration order.
func (c *Container) Registrations() []RegistrationInfo {
	result := make([]RegistrationInfo, 0, len(c.order))
	for _, key := range c.order {
		b := c.bindings[key]
		result = append(result, RegistrationInfo{
			Key:      key,
			Scope:    b.Scope,
			Instance: b.IsInstance(),
		})
	}
	return result
}

// Close releases the container. Constructor-built singletons that
// implement Close() error are closed; caller-supplied instances are
// owned by the caller and left alone.
func (c *Container) Close() error {
	if err := c.root.Close(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, instance := range c.singletons {
		closeInstance(c.log, key, instance)
	}
	c.singletons = make(map[string]interface{})
	return nil
}

// resolveSingleton constructs (once) and caches a singleton instance.
// The constructor runs outside the lock so it can resolve its own
// dependencies through the same container.
func (c *Container) resolveSingleton(key string, b registry.Binding, r Resolver) (interface{}, error) {
	c.mu.Lock()
	if instance, ok := c.singletons[key]; ok {
		c.mu.Unlock()
		return instance, nil
	}
	c.mu.Unlock()

	instance, err := callConstructor(key, b.Constructor, r)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.singletons[key]; ok {
		return existing, nil
	}
	c.singletons[key] = instance
	return instance, nil
}

// callConstructor invokes a binding constructor by reflection.
// Supported signatures: func() T, func() (T, error),
// func(context.Context) (T, error), func(Resolver) (T, error).
func callConstructor(key string, constructor interface{}, r Resolver) (interface{}, error) {
	fn := reflect.ValueOf(constructor)
	fnType := fn.Type()

	var results []reflect.Value
	switch fnType.NumIn() {
	case 0:
		results = fn.Call(nil)
	case 1:
		if fnType.In(0).String() == "context.Context" {
			results = fn.Call([]reflect.Value{reflect.ValueOf(context.Background())})
		} else {
			results = fn.Call([]reflect.Value{reflect.ValueOf(r)})
		}
	default:
		return nil, errors.BadConstructor(key, "too many parameters")
	}

	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		instance := results[0].Interface()
		if errVal := results[1].Interface(); errVal != nil {
			return nil, errors.BadConstructor(key, "construction failed").WithCause(errVal.(error))
		}
		return instance, nil
	default:
		return nil, errors.BadConstructor(key, "must return (instance) or (instance, error)")
	}
}

func closeInstance(log *logger.Logger, key string, instance interface{}) {
	if closer, ok := instance.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn("Service close failed", map[string]interface{}{
				logger.FieldService: key,
				logger.FieldError:   err.Error(),
			})
		}
	}
}
