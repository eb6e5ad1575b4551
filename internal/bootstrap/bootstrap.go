// Package bootstrap wires configuration into running components.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quote-calculator/adapters/antiforgery"
	"quote-calculator/adapters/directory"
	httpadapter "quote-calculator/adapters/http"
	kafkarelay "quote-calculator/adapters/kafka"
	"quote-calculator/adapters/webhook"
	"quote-calculator/core/pricing"
	"quote-calculator/core/submission"
	"quote-calculator/internal/config"
	"quote-calculator/internal/metrics"
	"quote-calculator/internal/tracing"
)

// closer releases one resource during shutdown
type closer struct {
	name string
	fn   func(ctx context.Context) error
}

// App is the assembled server
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	http    *httpadapter.Adapter
	closers []closer
}

// Build creates every component described by cfg
func Build(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	app := &App{cfg: cfg, log: log}

	shutdownTracing, err := tracing.Init(cfg.Tracing)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closer{"tracing", shutdownTracing})

	m := metrics.New()
	issuer := NewIssuer(cfg, log)

	transport, closeTransport := NewTransport(cfg)
	if closeTransport != nil {
		app.closers = append(app.closers, closer{"relay", func(context.Context) error { return closeTransport() }})
	}

	lookup, rdb := NewDirectory(cfg, log)
	if rdb != nil {
		app.closers = append(app.closers, closer{"redis", func(context.Context) error { return rdb.Close() }})
	}

	coordinator := submission.NewCoordinator(issuer, pricing.NewEngine(), transport, submission.Options{
		RelayTimeout: cfg.Relay.TimeoutDuration(),
		Logger:       log.Named("submission"),
		Recorder:     m,
	})

	app.http = httpadapter.New(httpadapter.Dependencies{
		Quotes:    coordinator,
		Tokens:    issuer,
		Directory: lookup,
		Metrics:   m.Handler(),
		Observer:  m,
		Ready:     readiness(rdb),
		Logger:    log.Named("http"),
	}, &httpadapter.Config{
		Address:        cfg.HTTP.Address,
		ReadTimeout:    cfg.HTTP.ReadTimeoutDuration(),
		WriteTimeout:   cfg.HTTP.WriteTimeoutDuration(),
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		SessionCookie:  cfg.AntiForgery.CookieName,
		SessionMaxAge:  cfg.AntiForgery.LifetimeDuration(),
		SecureCookie:   cfg.AntiForgery.CookieSecure,
	})

	log.Info("components ready",
		zap.String("env", cfg.Env),
		zap.String("relay", cfg.Relay.Kind),
		zap.Bool("redis", rdb != nil),
		zap.Bool("tracing", cfg.Tracing.JaegerEndpoint != ""),
	)
	return app, nil
}

// Handler returns the HTTP handler without starting a listener
func (a *App) Handler() http.Handler {
	return a.http.Router()
}

// Run serves until ctx is cancelled, then shuts the server down within the
// configured timeout and releases resources.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.http.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeoutDuration())
		defer cancel()
		a.log.Info("shutting down")
		return a.http.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.Close()
	return err
}

// Close releases resources in reverse creation order
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeoutDuration())
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			a.log.Warn("close failed", zap.String("resource", c.name), zap.Error(err))
		}
	}
	a.closers = nil
}

// NewIssuer builds the anti-forgery issuer. Local runs without a secret get
// a per-process one, so tokens do not survive a restart.
func NewIssuer(cfg *config.Config, log *zap.Logger) *antiforgery.Issuer {
	secret := cfg.AntiForgery.Secret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn("antiforgery secret not set; using a per-process secret")
	}
	return antiforgery.NewIssuer(secret, cfg.AntiForgery.LifetimeDuration())
}

// NewTransport builds the configured relay. The returned close func is nil
// when the transport holds no resources.
func NewTransport(cfg *config.Config) (submission.Transport, func() error) {
	if cfg.Relay.Kind == config.RelayKafka {
		t := kafkarelay.New(kafkarelay.Config{
			Brokers:      cfg.Relay.KafkaBrokers,
			Topic:        cfg.Relay.KafkaTopic,
			WriteTimeout: cfg.Relay.TimeoutDuration(),
		})
		return t, t.Close
	}

	wc := webhook.DefaultConfig(cfg.Relay.Endpoint)
	wc.Secret = cfg.Relay.Secret
	wc.Timeout = cfg.Relay.TimeoutDuration()
	for k, v := range cfg.Relay.Headers {
		wc.Headers[k] = v
	}
	return webhook.New(wc), nil
}

// NewDirectory builds the cached account-manager lookup. The redis client is
// nil unless a shared cache is configured.
func NewDirectory(cfg *config.Config, log *zap.Logger) (*directory.Cache, *redis.Client) {
	client := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.TimeoutDuration())

	var (
		store directory.Store
		rdb   *redis.Client
	)
	if cfg.Directory.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Directory.RedisAddr,
			Password: cfg.Directory.RedisPassword,
			DB:       cfg.Directory.RedisDB,
		})
		store = directory.NewRedisStore(rdb)
	}

	return directory.NewCache(client, store, cfg.Directory.CacheTTLDuration(), log.Named("directory")), rdb
}

func readiness(rdb *redis.Client) func(ctx context.Context) error {
	if rdb == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
