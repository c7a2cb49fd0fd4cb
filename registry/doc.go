// Package registry holds the ordered set of service bindings a test host
// resolves against, and reconciles it with caller-supplied overrides.
//
// A Registry starts open: configuration callbacks add bindings with Add
// and AddInstance. Reconcile merges the registry with an Overrides set
// exactly once and returns a new, finalized registry that the container
// is built from. The input registry is never modified.
//
// # Usage
//
//	reg := registry.New()
//	reg.Add("mailer", NewSMTPMailer, registry.ScopeScoped)
//
//	o := registry.NewOverrides()
//	o.UseInstance("mailer", &FakeMailer{})
//
//	final := registry.Reconcile(reg, o)
package registry
