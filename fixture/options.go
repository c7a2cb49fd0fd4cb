package fixture

import (
	"github.com/kbukum/testhost/config"
	"github.com/kbukum/testhost/logger"
)

// Option configures a Fixture during creation.
type Option func(*Fixture)

// WithConfig sets explicit settings instead of environment-loaded defaults.
func WithConfig(cfg *config.Settings) Option {
	return func(f *Fixture) {
		f.cfg = cfg
	}
}

// WithLogger sets a custom logger for the fixture.
func WithLogger(l *logger.Logger) Option {
	return func(f *Fixture) {
		f.log = l
	}
}

// WithServices registers a service-configuration callback. Callbacks run
// against a fresh registry on every Start and Reset, in registration
// order.
func WithServices(fn ServiceFunc) Option {
	return func(f *Fixture) {
		f.services = append(f.services, fn)
	}
}

// WithRoutes registers a route-configuration callback. Callbacks run
// after the container is built, receiving the engine and the fixture's
// resolver.
func WithRoutes(fn RouteFunc) Option {
	return func(f *Fixture) {
		f.routes = append(f.routes, fn)
	}
}

// WithBearerAuth protects all routes with HS256 bearer-token middleware.
// With an empty secret, a random one is generated per fixture; use
// SignToken to mint valid tokens either way.
func WithBearerAuth(secret string) Option {
	return func(f *Fixture) {
		f.bearerAuth = true
		f.authSecret = secret
	}
}

// WithRequestLog enables per-request logging on the test server.
func WithRequestLog() Option {
	return func(f *Fixture) {
		f.requestLog = true
	}
}
