// Package server exposes the overlay engine over HTTP.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/adapters"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/google/uuid"
)

// BaseURL is the path prefix of every API route.
const BaseURL = "/api/v1"

// Config holds the configuration settings for the HTTP server
type Config struct {
	// AppName is the name of the application.
	AppName string `mapstructure:"app_name"`

	// Port is the TCP port on which the server will listen.
	Port int `mapstructure:"port"`

	// Addr is the address the server will bind to.
	Addr string `mapstructure:"addr"`

	// ServerHeader is the value of the Server header returned in HTTP responses.
	ServerHeader string `mapstructure:"server_header"`

	// AdminBearerToken is the token required to access admin-only endpoints.
	AdminBearerToken string `mapstructure:"admin_bearer_token"`

	// OctetStreamLimit defines the maximum allowed bytes read size (in bytes).
	OctetStreamLimit int64 `mapstructure:"octet_stream_limit"`

	// ConnectionReadTimeout defines the maximum duration an active connection is allowed to stay open.
	ConnectionReadTimeout time.Duration `mapstructure:"connection_read_timeout_limit"`

	// EnablePprof exposes the runtime profiling endpoints under the API base path.
	EnablePprof bool `mapstructure:"enable_pprof"`
}

// DefaultConfig provides a default configuration with reasonable values for local development.
var DefaultConfig = Config{
	AppName:               "HelloWorld Overlay API v0.0.0",
	Port:                  8080,
	Addr:                  "localhost",
	ServerHeader:          "HelloWorld Overlay API",
	AdminBearerToken:      uuid.NewString(),
	OctetStreamLimit:      middleware.ReadBodyLimit1GB,
	ConnectionReadTimeout: 10 * time.Second,
}

// ServerOption defines a functional option for configuring an HTTP server.
type ServerOption func(*ServerHTTP)

// WithMiddleware adds a Fiber middleware handler to the HTTP server configuration.
func WithMiddleware(f fiber.Handler) ServerOption {
	return func(s *ServerHTTP) {
		s.middleware = append(s.middleware, f)
	}
}

// WithEngine sets the overlay engine provider for the HTTP server.
func WithEngine(provider engine.OverlayEngineProvider) ServerOption {
	return func(s *ServerHTTP) {
		s.engine = provider
	}
}

// WithAdminBearerToken sets the admin bearer token used for authenticating
// admin routes on the HTTP server.
func WithAdminBearerToken(token string) ServerOption {
	return func(s *ServerHTTP) {
		s.cfg.AdminBearerToken = token
	}
}

// WithOctetStreamLimit sets the maximum allowed size (in bytes)
// for incoming requests with Content-Type: application/octet-stream.
//
// Example: To limit uploads to 512MB:
//
//	WithOctetStreamLimit(512 * 1024 * 1024)
func WithOctetStreamLimit(limit int64) ServerOption {
	return func(s *ServerHTTP) {
		s.cfg.OctetStreamLimit = limit
	}
}

// WithConfig sets the configuration for the HTTP server using the provided Config.
func WithConfig(cfg Config) ServerOption {
	return func(s *ServerHTTP) {
		s.cfg = cfg
	}
}

// ServerHTTP represents the HTTP server instance, including configuration,
// Fiber app instance, middleware stack, and the engine serving requests.
type ServerHTTP struct {
	cfg        Config          // cfg holds the server configuration settings.
	app        *fiber.App      // app is the Fiber application instance serving HTTP requests.
	middleware []fiber.Handler // middleware is a list of additional Fiber middleware functions applied globally.
	engine     engine.OverlayEngineProvider
}

// SocketAddr builds the address string for binding.
func (s *ServerHTTP) SocketAddr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Addr, s.cfg.Port)
}

// ListenAndServe starts the HTTP server and begins listening on the configured socket address.
// It blocks until the server is stopped or an error occurs.
func (s *ServerHTTP) ListenAndServe(ctx context.Context) error {
	return s.app.Listen(s.SocketAddr())
}

// Shutdown gracefully shuts down the HTTP server using the provided context,
// allowing ongoing requests to complete within the context's deadline.
func (s *ServerHTTP) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// New creates and configures a new instance of ServerHTTP.
// Options are applied first, then the routes are registered against the configured engine.
func New(opts ...ServerOption) *ServerHTTP {
	srv := &ServerHTTP{
		cfg:    DefaultConfig,
		engine: adapters.NewNoopEngineProvider(),
	}

	for _, o := range opts {
		o(srv)
	}

	srv.app = newFiberApp(srv.cfg)

	global := middleware.BasicMiddlewareGroup(middleware.BasicMiddlewareGroupConfig{
		EnableStackTrace: true,
		EnablePprof:      srv.cfg.EnablePprof,
		PprofPrefix:      BaseURL,
		OctetStreamLimit: srv.cfg.OctetStreamLimit,
	})

	registry := ports.NewHandlerRegistryService(srv.engine)
	registry.Register(srv.app, ports.RegisterHandlersOptions{
		BaseURL:          BaseURL,
		GlobalMiddleware: append(global, srv.middleware...),
		AdminMiddleware: []fiber.Handler{
			middleware.BearerTokenAuthorizationMiddleware(srv.cfg.AdminBearerToken),
		},
	})

	srv.app.Get("/metrics", monitor.New(monitor.Config{Title: srv.cfg.AppName}))

	return srv
}

// newFiberApp creates and returns a new instance of a fiber.App with the provided configuration.
func newFiberApp(cfg Config) *fiber.App {
	bodyLimit := fiber.DefaultBodyLimit
	if cfg.OctetStreamLimit > int64(bodyLimit) {
		bodyLimit = int(cfg.OctetStreamLimit)
	}

	return fiber.New(fiber.Config{
		CaseSensitive: true,
		StrictRouting: true,
		ServerHeader:  cfg.ServerHeader,
		AppName:       cfg.AppName,
		ReadTimeout:   cfg.ConnectionReadTimeout,
		BodyLimit:     bodyLimit,
		ErrorHandler:  ports.ErrorHandler(),
	})
}
