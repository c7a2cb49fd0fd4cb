package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/testhost/component"
	"github.com/kbukum/testhost/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestServer is an in-process HTTP server backed by httptest.Server.
// Routes are registered on the Gin engine before Start; additional
// http.Handler mounts go on the root ServeMux.
type TestServer struct {
	engine  *gin.Engine
	mux     *http.ServeMux
	handler http.Handler
	ts      *httptest.Server
	config  Config
	log     *logger.Logger
	started bool
	mu      sync.RWMutex
}

var _ component.Component = (*TestServer)(nil)

// New creates a test server. Middleware is applied according to cfg;
// the listener is not opened until Start.
func New(cfg Config, log *logger.Logger) *TestServer {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("server")

	engine := gin.New()
	engine.Use(RequestID())
	engine.Use(Recovery(log))
	if cfg.RequestLog {
		engine.Use(RequestLogger(log))
	}
	if cfg.AuthSecret != "" {
		engine.Use(BearerAuth(cfg.AuthSecret))
	}

	mux := http.NewServeMux()
	mux.Handle("/", engine)

	// h2c keeps parity with the production stack, which serves gRPC and
	// HTTP/1 on the same cleartext port.
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	return &TestServer{
		engine:  engine,
		mux:     mux,
		handler: h2c.NewHandler(mux, h2s),
		config:  cfg,
		log:     log,
	}
}

// Engine returns the Gin engine for route registration.
func (s *TestServer) Engine() *gin.Engine {
	return s.engine
}

// Handle mounts an http.Handler at the given pattern on the root ServeMux.
func (s *TestServer) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", map[string]interface{}{
		"pattern": pattern,
	})
}

// BaseURL returns the test server's base URL, or "" before Start.
func (s *TestServer) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ts == nil {
		return ""
	}
	return s.ts.URL
}

// --- component.Component ---

// Name returns the component name.
func (s *TestServer) Name() string { return "test-server" }

// Start opens the httptest listener. Returns once the server accepts
// connections.
func (s *TestServer) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("server: already started")
	}

	s.ts = httptest.NewServer(s.handler)
	s.started = true

	s.log.Info("Test server started", map[string]interface{}{
		"url": s.ts.URL,
	})
	return nil
}

// Stop closes the listener and waits for outstanding requests.
func (s *TestServer) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.ts == nil {
		return nil
	}
	s.ts.Close()
	s.ts = nil
	s.started = false

	s.log.Info("Test server stopped")
	return nil
}

// Health reports whether the server is accepting connections.
func (s *TestServer) Health(_ context.Context) component.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}
