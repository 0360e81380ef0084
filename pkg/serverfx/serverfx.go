package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joeydtaylor/steeze-items/pkg/bundlefx"
	"github.com/joeydtaylor/steeze-items/pkg/core"
	"github.com/joeydtaylor/steeze-items/pkg/items"
	"github.com/joeydtaylor/steeze-items/pkg/manifest"
	"github.com/joeydtaylor/steeze-items/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-items/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-items/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-items/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ---------- Options ----------

type Config struct {
	Service         string // for logs only
	ManifestEnv     string // ITEMS_MANIFEST
	DefaultManifest string // "manifest.toml"
	ListenEnv       string // SERVER_LISTEN_ADDRESS
	DefaultListen   string // ":3000"
	TLSCertEnv      string // SSL_SERVER_CERTIFICATE
	TLSKeyEnv       string // SSL_SERVER_KEY
	IDStrategyEnv   string // ITEMS_ID_STRATEGY
}

type Option func(*Config)

func WithService(s string) Option            { return func(c *Config) { c.Service = s } }
func WithManifestEnv(k string) Option        { return func(c *Config) { c.ManifestEnv = k } }
func WithDefaultManifest(path string) Option { return func(c *Config) { c.DefaultManifest = path } }
func WithListenEnv(k string) Option          { return func(c *Config) { c.ListenEnv = k } }
func WithDefaultListen(addr string) Option   { return func(c *Config) { c.DefaultListen = addr } }
func WithIDStrategyEnv(k string) Option      { return func(c *Config) { c.IDStrategyEnv = k } }
func WithTLSCertKeyEnv(cert, key string) Option {
	return func(c *Config) { c.TLSCertEnv, c.TLSKeyEnv = cert, key }
}

func defaultConfig() Config {
	return Config{
		Service:         "steeze-items",
		ManifestEnv:     "ITEMS_MANIFEST",
		DefaultManifest: "manifest.toml",
		ListenEnv:       "SERVER_LISTEN_ADDRESS",
		DefaultListen:   ":3000",
		TLSCertEnv:      "SSL_SERVER_CERTIFICATE",
		TLSKeyEnv:       "SSL_SERVER_KEY",
		IDStrategyEnv:   "ITEMS_ID_STRATEGY",
	}
}

// Module returns the complete Fx option set for the items service.
func Module(opts ...Option) fx.Option {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return fx.Options(
		// Core middleware
		bundlefx.Module,
		// Router impl
		fx.Provide(httpx.NewChi),
		// Config into DI
		fx.Provide(func() Config { return cfg }),
		// Domain
		fx.Provide(provideManifest),
		fx.Provide(provideRegistry),
		fx.Provide(provideHandlers),
		// Router
		fx.Provide(fx.Annotate(provideRouter, fx.ResultTags(`name:"app"`))),
		// Lifecycle
		fx.Invoke(registerHooks),
	)
}

// ---------- Domain ----------

func provideManifest(cfg Config, zl *zap.Logger) manifest.Config {
	path := envOr(cfg.ManifestEnv, cfg.DefaultManifest)
	man, err := core.LoadConfig(path)
	if err != nil {
		zl.Fatal("manifest load failed", zap.Error(err), zap.String("path", path))
	}
	return man
}

func provideRegistry(cfg Config, zl *zap.Logger) (*items.Registry, error) {
	strategy, err := items.ParseIDStrategy(os.Getenv(cfg.IDStrategyEnv))
	if err != nil {
		return nil, err
	}
	if strategy == items.IDLength {
		zl.Warn("item ids use count+1 and may repeat after deletes",
			zap.String("env", cfg.IDStrategyEnv), zap.String("fix", string(items.IDMonotonic)))
	}
	return items.NewRegistry(
		items.WithIDStrategy(strategy),
		items.WithOnChange(metrics.SetItemCount),
	), nil
}

func provideHandlers(reg *items.Registry, zl *zap.Logger) *core.Handlers {
	hs := core.NewHandlers()
	items.NewAPI(reg, zl).Register(hs)
	return hs
}

// ---------- Router ----------

type routerDeps struct {
	fx.In

	Man      manifest.Config
	Auth     *auth.Middleware
	LogMW    *logger.Middleware
	Metrics  http.Handler `name:"metrics"`
	R        httpx.Router
	Handlers *core.Handlers
	Log      *zap.Logger
}

func provideRouter(d routerDeps) http.Handler {
	return core.BuildRouter(d.Man, core.BuildDeps{
		Auth:     d.Auth,
		LogMW:    d.LogMW,
		Metrics:  d.Metrics,
		Router:   d.R,
		Handlers: d.Handlers,
		Health:   core.HealthHandler(time.Now(), nil),
		Logger:   d.Log,
	})
}

// ---------- Lifecycle ----------

type serverDeps struct {
	fx.In
	Logger *zap.Logger
	App    http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, cfg Config, d serverDeps) {
	addr := envOr(cfg.ListenEnv, cfg.DefaultListen)
	cert := os.Getenv(cfg.TLSCertEnv)
	key := os.Getenv(cfg.TLSKeyEnv)

	srv := &http.Server{
		Addr:         addr,
		Handler:      d.App,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	// health probes stay out of the request series
	metrics.AddMetricsSkipPaths("/health")

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", cfg.Service), zap.String("addr", addr), zap.String("cert", cert))
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			} else {
				d.Logger.Info("server starting (PLAINTEXT)",
					zap.String("service", cfg.Service), zap.String("addr", addr))
				srv.TLSConfig = nil
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", cfg.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---------- tiny helpers ----------

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
