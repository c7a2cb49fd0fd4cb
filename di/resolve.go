package di

import "fmt"

// MustResolve resolves a service with type safety, panics on error.
// Use this in route handlers where a missing dependency must abort the
// test immediately.
//
// Example:
//
//	mailer := di.MustResolve[Mailer](resolver, "mailer")
func MustResolve[T any](r Resolver, key string) T {
	instance, err := r.Resolve(key)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", key, err))
	}
	result, ok := instance.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("di: service %s is %T, expected %T", key, instance, zero))
	}
	return result
}

// Resolve resolves a service with type safety, returns error on failure.
func Resolve[T any](r Resolver, key string) (T, error) {
	var zero T
	instance, err := r.Resolve(key)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: service %s is %T, expected %T", key, instance, zero)
	}
	return result, nil
}

// TryResolve resolves a service, returns zero value and false if not
// found or of the wrong type. Use this when a dependency is optional.
func TryResolve[T any](r Resolver, key string) (T, bool) {
	var zero T
	instance, err := r.Resolve(key)
	if err != nil {
		return zero, false
	}
	result, ok := instance.(T)
	if !ok {
		return zero, false
	}
	return result, true
}
