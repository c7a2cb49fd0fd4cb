// Package di provides the dependency-injection container a test host
// resolves services from. Containers are built from a finalized
// registry.Registry; the binding set cannot change after construction.
//
// Scope semantics: singleton bindings are constructed once per
// container, scoped bindings once per Lifetime (a fixture opens one
// lifetime per test), transient bindings on every resolution.
//
// # Resolution
//
//	mailer := di.MustResolve[Mailer](c, "mailer")
package di
