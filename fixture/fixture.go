package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/testhost/client"
	"github.com/kbukum/testhost/component"
	"github.com/kbukum/testhost/config"
	"github.com/kbukum/testhost/di"
	"github.com/kbukum/testhost/errors"
	"github.com/kbukum/testhost/logger"
	"github.com/kbukum/testhost/registry"
	"github.com/kbukum/testhost/server"
)

// ServiceFunc populates the registry during host configuration.
type ServiceFunc func(*registry.Registry) error

// RouteFunc mounts routes on the test server's engine. The resolver is
// the fixture's current lifetime; handlers resolve services through it.
type RouteFunc func(*gin.Engine, di.Resolver)

// Fixture owns one in-process test host. Configuration (service
// callbacks, route callbacks, overrides) is recorded up front; Start and
// Reset rebuild the registry, container, and server from it.
type Fixture struct {
	name string
	cfg  *config.Settings
	log  *logger.Logger

	services   []ServiceFunc
	routes     []RouteFunc
	overrides  *registry.Overrides
	bearerAuth bool
	authSecret string
	requestLog bool

	reg       *registry.Registry
	container *di.Container
	lifetime  *di.Lifetime
	srv       *server.TestServer
	cl        *client.Client

	started bool
	mu      sync.Mutex
}

var _ component.Component = (*Fixture)(nil)
var _ component.Resettable = (*Fixture)(nil)

// New creates a fixture. Nothing is built until Start.
func New(name string, opts ...Option) *Fixture {
	f := &Fixture{
		name:      name,
		overrides: registry.NewOverrides(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.cfg == nil {
		f.cfg = config.Default()
	} else {
		f.cfg.ApplyDefaults()
	}
	if f.log == nil {
		f.log = logger.New(&f.cfg.Logging, name)
	}
	f.log = f.log.WithFields(map[string]interface{}{
		logger.FieldFixture: name,
	})

	if f.bearerAuth && f.authSecret == "" {
		f.authSecret = f.cfg.Auth.Secret
	}
	if f.bearerAuth && f.authSecret == "" {
		f.authSecret = uuid.New().String()
	}

	return f
}

// OverrideConstructor replaces the binding for key with a constructor,
// preserving the original binding's scope. Must be called before Start.
func (f *Fixture) OverrideConstructor(key string, constructor interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started {
		return errors.FixtureState(fmt.Sprintf("cannot override %q: fixture already started", key))
	}
	f.overrides.UseConstructor(key, constructor)
	return nil
}

// OverrideInstance replaces the binding for key with a fixed instance
// (always a singleton). Must be called before Start.
func (f *Fixture) OverrideInstance(key string, instance interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started {
		return errors.FixtureState(fmt.Sprintf("cannot override %q: fixture already started", key))
	}
	f.overrides.UseInstance(key, instance)
	return nil
}

// --- component.Component ---

// Name returns the fixture name.
func (f *Fixture) Name() string { return f.name }

// Start builds the host: registry, reconciliation, container, server,
// client. Returns once the server accepts connections.
func (f *Fixture) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started {
		return errors.FixtureState("fixture already started")
	}
	if err := f.build(ctx); err != nil {
		return err
	}
	f.started = true
	return nil
}

// Stop releases the server, lifetime, and container.
func (f *Fixture) Stop(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started {
		return nil
	}
	err := f.teardown(ctx)
	f.started = false
	return err
}

// Health reports whether the host is up.
func (f *Fixture) Health(ctx context.Context) component.Health {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started {
		return component.Health{Name: f.name, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return f.srv.Health(ctx)
}

// Reset discards the registry, container, and server and rebuilds them
// from the recorded callbacks and overrides. Each test gets a host in
// the same configured state.
func (f *Fixture) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started {
		return errors.FixtureState("fixture not started")
	}
	if err := f.teardown(ctx); err != nil {
		return err
	}
	return f.build(ctx)
}

// --- accessors ---

// Client returns the HTTP client bound to the test server. Nil before Start.
func (f *Fixture) Client() *client.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cl
}

// Resolver returns the fixture's current lifetime for resolving services
// in assertions. Nil before Start.
func (f *Fixture) Resolver() di.Resolver {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lifetime == nil {
		return nil
	}
	return f.lifetime
}

// Registry returns the finalized registry the container was built from.
// Nil before Start.
func (f *Fixture) Registry() *registry.Registry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reg
}

// BaseURL returns the test server's base URL, or "" before Start.
func (f *Fixture) BaseURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.srv == nil {
		return ""
	}
	return f.srv.BaseURL()
}

// SignToken mints a bearer token accepted by this fixture's auth
// middleware. Errors if the fixture was not created with WithBearerAuth.
func (f *Fixture) SignToken(subject string, ttl time.Duration) (string, error) {
	if !f.bearerAuth {
		return "", errors.FixtureState("fixture has no bearer auth configured")
	}
	return server.SignToken(f.authSecret, subject, ttl)
}

// --- build / teardown (callers hold f.mu) ---

func (f *Fixture) build(ctx context.Context) error {
	base := registry.New()
	for _, fn := range f.services {
		if err := fn(base); err != nil {
			return errors.FixtureState("service configuration failed").WithCause(err)
		}
	}

	// Reconciliation happens exactly once per build; the registry is
	// read-only from here on.
	f.reg = registry.Reconcile(base, f.overrides)

	container, err := di.FromRegistry(f.reg, f.log)
	if err != nil {
		return err
	}
	f.container = container
	f.lifetime = container.NewLifetime()

	srvCfg := server.Config{
		Host:       f.cfg.Server.Host,
		RequestLog: f.requestLog,
	}
	if f.bearerAuth {
		srvCfg.AuthSecret = f.authSecret
	}
	f.srv = server.New(srvCfg, f.log)

	for _, fn := range f.routes {
		fn(f.srv.Engine(), f.lifetime)
	}

	if err := f.srv.Start(ctx); err != nil {
		f.closeContainer()
		return err
	}

	f.cl = client.New(client.Config{
		BaseURL: f.srv.BaseURL(),
		Timeout: f.cfg.Client.Timeout,
	})

	f.log.Info("Fixture host ready", map[string]interface{}{
		"url":      f.srv.BaseURL(),
		"bindings": f.reg.Len(),
	})
	return nil
}

func (f *Fixture) teardown(ctx context.Context) error {
	var firstErr error
	if f.srv != nil {
		if err := f.srv.Stop(ctx); err != nil {
			firstErr = err
		}
		f.srv = nil
	}
	if err := f.closeContainer(); err != nil && firstErr == nil {
		firstErr = err
	}
	f.reg = nil
	f.cl = nil
	return firstErr
}

func (f *Fixture) closeContainer() error {
	var firstErr error
	if f.lifetime != nil {
		if err := f.lifetime.Close(); err != nil {
			firstErr = err
		}
		f.lifetime = nil
	}
	if f.container != nil {
		if err := f.container.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		f.container = nil
	}
	return firstErr
}
