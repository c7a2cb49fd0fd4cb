package di

import (
	"context"
	"fmt"
	"testing"

	"github.com/kbukum/testhost/errors"
	"github.com/kbukum/testhost/logger"
	"github.com/kbukum/testhost/registry"
)

func finalized(t *testing.T, configure func(*registry.Registry)) *registry.Registry {
	t.Helper()
	r := registry.New()
	configure(r)
	return registry.Reconcile(r, nil)
}

func TestFromRegistryRequiresFinalized(t *testing.T) {
	r := registry.New()
	_, err := FromRegistry(r, logger.Nop())
	if err == nil {
		t.Fatal("expected error for open registry")
	}
}

func TestResolveInstanceBinding(t *testing.T) {
	instance := &struct{ name string }{name: "fake"}
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.AddInstance("mailer", instance)
	})

	c, err := FromRegistry(reg, logger.Nop())
	if err != nil {
		t.Fatalf("FromRegistry failed: %v", err)
	}

	got, err := c.Resolve("mailer")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != instance {
		t.Error("expected the registered instance")
	}
}

func TestResolveMissingDependency(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {})

	c, err := FromRegistry(reg, logger.Nop())
	if err != nil {
		t.Fatalf("FromRegistry failed: %v", err)
	}

	_, err = c.Resolve("nonexistent")
	if err == nil {
		t.Fatal("expected error for unregistered service")
	}
	if !errors.IsMissingDependency(err) {
		t.Errorf("expected missing-dependency error, got %v", err)
	}
	if errors.IsRetryable(err) {
		t.Error("missing dependency must not be retryable")
	}
}

func TestSingletonConstructedOnce(t *testing.T) {
	calls := 0
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.Add("counter", func() *int {
			calls++
			n := calls
			return &n
		}, registry.ScopeSingleton)
	})

	c, _ := FromRegistry(reg, logger.Nop())

	first, err := c.Resolve("counter")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, _ := c.Resolve("counter")
	if first != second {
		t.Error("singleton must return the same instance")
	}
	if calls != 1 {
		t.Errorf("constructor called %d times, want 1", calls)
	}
}

func TestTransientConstructedPerResolve(t *testing.T) {
	calls := 0
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.Add("gen", func() *int {
			calls++
			n := calls
			return &n
		}, registry.ScopeTransient)
	})

	c, _ := FromRegistry(reg, logger.Nop())
	first, _ := c.Resolve("gen")
	second, _ := c.Resolve("gen")
	if first == second {
		t.Error("transient must return fresh instances")
	}
	if calls != 2 {
		t.Errorf("constructor called %d times, want 2", calls)
	}
}

func TestScopedCachedPerLifetime(t *testing.T) {
	calls := 0
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.Add("session", func() *int {
			calls++
			n := calls
			return &n
		}, registry.ScopeScoped)
	})

	c, _ := FromRegistry(reg, logger.Nop())

	l1 := c.NewLifetime()
	a, _ := l1.Resolve("session")
	b, _ := l1.Resolve("session")
	if a != b {
		t.Error("scoped must be cached within a lifetime")
	}

	l2 := c.NewLifetime()
	d, _ := l2.Resolve("session")
	if a == d {
		t.Error("scoped must be fresh across lifetimes")
	}
	if calls != 2 {
		t.Errorf("constructor called %d times, want 2", calls)
	}
	if l1.ID() == l2.ID() {
		t.Error("lifetimes must have distinct IDs")
	}
}

func TestSingletonSharedAcrossLifetimes(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.Add("db", func() *int { n := 1; return &n }, registry.ScopeSingleton)
	})

	c, _ := FromRegistry(reg, logger.Nop())
	a, _ := c.NewLifetime().Resolve("db")
	b, _ := c.NewLifetime().Resolve("db")
	if a != b {
		t.Error("singletons must be shared across lifetimes")
	}
}

func TestConstructorWithContext(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.Add("svc", func(ctx context.Context) (string, error) {
			if ctx == nil {
				return "", fmt.Errorf("nil context")
			}
			return "ok", nil
		}, registry.ScopeSingleton)
	})

	c, _ := FromRegistry(reg, logger.Nop())
	got, err := c.Resolve("svc")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %v, want ok", got)
	}
}

func TestConstructorWithResolverDependency(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.AddInstance("prefix", "hello")
		_ = r.Add("greeting", func(res Resolver) (string, error) {
			prefix, err := Resolve[string](res, "prefix")
			if err != nil {
				return "", err
			}
			return prefix + " world", nil
		}, registry.ScopeScoped)
	})

	c, _ := FromRegistry(reg, logger.Nop())
	got, err := c.Resolve("greeting")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %v, want hello world", got)
	}
}

func TestConstructorError(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.Add("broken", func() (string, error) {
			return "", fmt.Errorf("boom")
		}, registry.ScopeTransient)
	})

	c, _ := FromRegistry(reg, logger.Nop())
	_, err := c.Resolve("broken")
	if err == nil {
		t.Fatal("expected constructor error")
	}
	if !errors.HasCode(err, errors.ErrCodeBadConstructor) {
		t.Errorf("expected bad-constructor error, got %v", err)
	}
}

func TestFromRegistryRejectsNonFuncConstructor(t *testing.T) {
	r := registry.New()
	_ = r.Add("bad", "not-a-func", registry.ScopeSingleton)
	reg := registry.Reconcile(r, nil)

	_, err := FromRegistry(reg, logger.Nop())
	if err == nil {
		t.Fatal("expected error for non-function constructor")
	}
	if !errors.HasCode(err, errors.ErrCodeBadConstructor) {
		t.Errorf("expected bad-constructor error, got %v", err)
	}
}

func TestLaterBindingShadowsEarlier(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.AddInstance("svc", "first")
		_ = r.AddInstance("svc", "second")
	})

	c, _ := FromRegistry(reg, logger.Nop())
	got, _ := c.Resolve("svc")
	if got != "second" {
		t.Errorf("got %v, want later binding to win", got)
	}
}

func TestRegistrations(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.AddInstance("cfg", "x")
		_ = r.Add("svc", func() int { return 1 }, registry.ScopeScoped)
	})

	c, _ := FromRegistry(reg, logger.Nop())
	infos := c.Registrations()
	if len(infos) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(infos))
	}
	if infos[0].Key != "cfg" || !infos[0].Instance {
		t.Errorf("unexpected first registration: %+v", infos[0])
	}
	if infos[1].Key != "svc" || infos[1].Scope != registry.ScopeScoped {
		t.Errorf("unexpected second registration: %+v", infos[1])
	}
}

type closable struct {
	closed bool
}

func (c *closable) Close() error {
	c.closed = true
	return nil
}

func TestCloseClosesConstructedSingletons(t *testing.T) {
	built := &closable{}
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.Add("conn", func() *closable { return built }, registry.ScopeSingleton)
	})

	c, _ := FromRegistry(reg, logger.Nop())
	if _, err := c.Resolve("conn"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !built.closed {
		t.Error("constructed singleton must be closed")
	}
}

func TestCloseLeavesCallerInstancesAlone(t *testing.T) {
	mine := &closable{}
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.AddInstance("conn", mine)
	})

	c, _ := FromRegistry(reg, logger.Nop())
	if _, err := c.Resolve("conn"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	_ = c.Close()
	if mine.closed {
		t.Error("caller-supplied instance must not be closed by the container")
	}
}

func TestLifetimeCloseClosesScoped(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.Add("conn", func() *closable { return &closable{} }, registry.ScopeScoped)
	})

	c, _ := FromRegistry(reg, logger.Nop())
	l := c.NewLifetime()
	got, _ := l.Resolve("conn")

	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !got.(*closable).closed {
		t.Error("scoped instance must be closed with its lifetime")
	}
}

func TestTypedResolveHelpers(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {
		_ = r.AddInstance("name", "testhost")
	})
	c, _ := FromRegistry(reg, logger.Nop())

	name, err := Resolve[string](c, "name")
	if err != nil || name != "testhost" {
		t.Errorf("Resolve[string] = %q, %v", name, err)
	}

	if _, err := Resolve[int](c, "name"); err == nil {
		t.Error("expected type mismatch error")
	}

	if got := MustResolve[string](c, "name"); got != "testhost" {
		t.Errorf("MustResolve = %q", got)
	}

	if _, ok := TryResolve[string](c, "missing"); ok {
		t.Error("TryResolve must report missing service")
	}
	if got, ok := TryResolve[string](c, "name"); !ok || got != "testhost" {
		t.Errorf("TryResolve = %q, %v", got, ok)
	}
}

func TestMustResolvePanicsOnMissing(t *testing.T) {
	reg := finalized(t, func(r *registry.Registry) {})
	c, _ := FromRegistry(reg, logger.Nop())

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for missing service")
		}
	}()
	MustResolve[string](c, "missing")
}
