// Package http exposes the quote calculator over HTTP: token issuance, the
// form submission endpoint and the lookups the widget needs to render.
package http

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"quote-calculator/adapters/directory"
	"quote-calculator/core/submission"
	"quote-calculator/core/types"
	"quote-calculator/core/validation"
)

// Config holds HTTP adapter configuration
type Config struct {
	// Address to listen on
	Address string

	// ReadTimeout for requests
	ReadTimeout time.Duration

	// WriteTimeout for responses
	WriteTimeout time.Duration

	// MaxBodySize limits request body size
	MaxBodySize int64

	// AllowedOrigins for CORS; empty disables CORS headers
	AllowedOrigins []string

	// SessionCookie names the cookie carrying the session id
	SessionCookie string

	// SessionMaxAge is the cookie lifetime, normally the token lifetime
	SessionMaxAge time.Duration

	// SecureCookie marks the session cookie Secure
	SecureCookie bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Address:       ":8080",
		ReadTimeout:   5 * time.Second,
		WriteTimeout:  15 * time.Second,
		MaxBodySize:   1 << 20,
		SessionCookie: "quote_session",
		SessionMaxAge: 24 * time.Hour,
	}
}

// QuoteService prices and submits forms
type QuoteService interface {
	Estimate(form validation.Form) (types.Quote, error)
	Submit(ctx context.Context, cred submission.Credentials, form validation.Form) (*types.ConfirmationView, error)
}

// TokenIssuer issues anti-forgery tokens bound to a session
type TokenIssuer interface {
	Issue(session string) string
}

// RequestObserver counts served requests
type RequestObserver interface {
	ObserveHTTP(route string, code int)
}

// Dependencies are the collaborators the adapter serves
type Dependencies struct {
	Quotes    QuoteService
	Tokens    TokenIssuer
	Directory directory.Lookup

	// Metrics serves GET /metrics when set
	Metrics http.Handler

	// Observer receives one call per request when set
	Observer RequestObserver

	// Ready reports readiness; nil means always ready
	Ready func(ctx context.Context) error

	Logger *zap.Logger
}

// Adapter is the HTTP adapter
type Adapter struct {
	deps       Dependencies
	config     *Config
	server     *http.Server
	log        *zap.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// New creates a new HTTP adapter
func New(deps Dependencies, config *Config) *Adapter {
	if config == nil {
		config = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	a := &Adapter{
		deps:       deps,
		config:     config,
		log:        log,
		tracer:     otel.Tracer("quote-calculator/http"),
		propagator: otel.GetTextMapPropagator(),
	}
	a.server = &http.Server{
		Addr:         config.Address,
		Handler:      a.Router(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
	return a
}

// Router returns the HTTP handler
func (a *Adapter) Router() http.Handler {
	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /ready", a.handleReady)

	// API v1 endpoints
	mux.HandleFunc("GET /api/v1/nonce", a.handleNonce)
	mux.HandleFunc("POST /api/v1/quotes", a.handleSubmit)
	mux.HandleFunc("POST /api/v1/quotes/estimate", a.handleEstimate)
	mux.HandleFunc("GET /api/v1/account-managers", a.handleAccountManagers)
	mux.HandleFunc("GET /api/v1/services", a.handleServices)

	if a.deps.Metrics != nil {
		mux.Handle("GET /metrics", a.deps.Metrics)
	}

	// Apply middleware
	handler := a.corsMiddleware(mux)
	handler = a.loggingMiddleware(handler)
	handler = a.tracingMiddleware(handler)
	handler = a.recoveryMiddleware(handler)

	return handler
}

// Start serves until Shutdown. It returns http.ErrServerClosed after a
// graceful shutdown.
func (a *Adapter) Start() error {
	a.log.Info("http server listening", zap.String("address", a.config.Address))
	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *Adapter) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
