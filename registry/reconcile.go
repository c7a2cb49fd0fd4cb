package registry

import (
	"github.com/kbukum/testhost/logger"
)

// Reconcile merges base with the override set and returns a new,
// finalized registry. The input registry is not modified.
//
// For every overridden key present in base, the first binding for that
// key is replaced in place: a constructor replacement keeps the original
// binding's scope, an instance replacement becomes a singleton. Any
// later bindings for an overridden key are dropped so that exactly one
// binding survives. Bindings for untouched keys pass through unchanged,
// preserving relative order.
//
// Overrides for keys that were never registered are ignored. Replacement
// acts on pre-registered keys only; a dropped override is logged at warn
// level so test authors notice an override that did not take effect.
func Reconcile(base *Registry, overrides *Overrides) *Registry {
	out := &Registry{
		bindings:  make([]Binding, 0, base.Len()),
		finalized: true,
	}

	if overrides.Len() == 0 {
		out.bindings = append(out.bindings, base.bindings...)
		return out
	}

	applied := make(map[string]bool, overrides.Len())
	for _, b := range base.bindings {
		rep, ok := overrides.entries[b.Key]
		if !ok {
			out.bindings = append(out.bindings, b)
			continue
		}
		if applied[b.Key] {
			// Shadowed duplicate of an already-replaced key.
			continue
		}
		applied[b.Key] = true

		switch rep.kind {
		case replaceInstance:
			out.bindings = append(out.bindings, Binding{
				Key:      b.Key,
				Instance: rep.instance,
				Scope:    ScopeSingleton,
			})
		default:
			out.bindings = append(out.bindings, Binding{
				Key:         b.Key,
				Constructor: rep.constructor,
				Scope:       b.Scope,
			})
		}
	}

	for key := range overrides.entries {
		if !applied[key] {
			logger.Warn("Service override ignored: key was never registered", map[string]interface{}{
				"key": key,
			})
		}
	}

	return out
}
