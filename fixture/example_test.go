package fixture_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/testhost/client"
	"github.com/kbukum/testhost/di"
	"github.com/kbukum/testhost/fixture"
	"github.com/kbukum/testhost/logger"
	"github.com/kbukum/testhost/registry"
)

type clock interface {
	Now() string
}

type systemClock struct{}

func (systemClock) Now() string { return "runtime" }

type frozenClock struct{}

func (frozenClock) Now() string { return "2024-05-01T12:00:00Z" }

// Example shows the usual shape of a fixture-backed test: register real
// services, override one with a test double, and call the server over HTTP.
func Example() {
	f := fixture.New("orders",
		fixture.WithLogger(logger.Nop()),
		fixture.WithServices(func(r *registry.Registry) error {
			return r.Add("clock", func() clock { return systemClock{} }, registry.ScopeSingleton)
		}),
		fixture.WithRoutes(func(e *gin.Engine, res di.Resolver) {
			e.GET("/now", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"now": di.MustResolve[clock](res, "clock").Now()})
			})
		}),
	)

	// Pin the clock before the host starts.
	_ = f.OverrideInstance("clock", clock(frozenClock{}))

	ctx := context.Background()
	if err := f.Start(ctx); err != nil {
		panic(err)
	}
	defer func() { _ = f.Stop(ctx) }()

	resp, err := client.Get[map[string]string](f.Client(), ctx, "/now")
	if err != nil {
		panic(err)
	}
	fmt.Println(resp.Data["now"])
	// Output: 2024-05-01T12:00:00Z
}
