package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/xlrbot/pkg/controller/hostbus"
	"github.com/m-mizutani/xlrbot/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr         string
	hookSecret   string
	asyncProcess bool
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithHookSecret enables HMAC verification of inbound host events
func WithHookSecret(secret string) Option {
	return func(c *config) {
		c.hookSecret = secret
	}
}

// WithAsyncProcess acknowledges events with 202 and processes them in the background
func WithAsyncProcess(enabled bool) Option {
	return func(c *config) {
		c.asyncProcess = enabled
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	activityUC interfaces.ActivityUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8081",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Host bus hooks
	eventHandler := NewEventHandler(hostbus.NewEventProcessor(activityUC), cfg.hookSecret, cfg.asyncProcess)
	router.Route("/events", func(r chi.Router) {
		r.Post("/create-ci", eventHandler.CreateCi)
		r.Post("/create-cis", eventHandler.CreateCis)
		r.Post("/ci", eventHandler.CiEvent)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
