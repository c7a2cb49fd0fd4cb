// Package fixture assembles and manages the in-process test host: a
// service registry, a dependency-injection container, an HTTP test
// server, and a client bound to it.
//
// A fixture records service-configuration callbacks and override
// instructions, then on Start builds everything from scratch: callbacks
// populate a fresh registry, overrides are reconciled in exactly once,
// the container is finalized, routes are mounted, and the test server
// comes up. Reset throws the registry, container, and server away and
// rebuilds them from the recorded callbacks, so every test starts from
// the same configuration.
//
// # Usage
//
//	f := fixture.New("orders",
//	    fixture.WithServices(func(r *registry.Registry) error {
//	        return r.Add("mailer", NewSMTPMailer, registry.ScopeScoped)
//	    }),
//	    fixture.WithRoutes(func(e *gin.Engine, res di.Resolver) {
//	        e.POST("/orders", placeOrder(res))
//	    }),
//	)
//	f.OverrideInstance("mailer", &FakeMailer{})
//	fixture.T(t).Setup(f)
//
//	resp, err := client.Post[OrderView](f.Client(), ctx, "/orders", newOrder)
package fixture
