// Package app implements the application layer for ikon.
package app

import (
	"context"
	"net/http"
	"os"

	"go.trai.ch/ikon/internal/adapters/telemetry"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/ikon/internal/engine/iconset"
	"go.trai.ch/ikon/internal/engine/loader"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader   ports.ConfigLoader
	logger         ports.Logger
	tracer         ports.Tracer
	metrics        ports.Metrics
	metricsHandler http.Handler
	transport      ports.Transport
	caches         ports.SetCacheOpener
	source         ports.SetSource
	watcher        ports.Watcher

	setupTelemetry func(ctx context.Context, endpoint string) (func(context.Context) error, error)
}

// Deps are the adapters an App is built from.
type Deps struct {
	ConfigLoader ports.ConfigLoader
	Logger       ports.Logger
	Tracer       ports.Tracer
	Metrics      ports.Metrics
	// MetricsHandler serves /metrics. It may be nil.
	MetricsHandler http.Handler
	Transport      ports.Transport
	Caches         ports.SetCacheOpener
	Source         ports.SetSource
	Watcher        ports.Watcher
}

// New creates a new App instance.
func New(deps Deps) *App {
	return &App{
		configLoader:   deps.ConfigLoader,
		logger:         deps.Logger,
		tracer:         deps.Tracer,
		metrics:        deps.Metrics,
		metricsHandler: deps.MetricsHandler,
		transport:      deps.Transport,
		caches:         deps.Caches,
		source:         deps.Source,
		watcher:        deps.Watcher,
		setupTelemetry: telemetry.Setup,
	}
}

// WithTelemetrySetup replaces the trace exporter setup.
// This is primarily used for testing to avoid registering a global provider.
func (a *App) WithTelemetrySetup(setup func(ctx context.Context, endpoint string) (func(context.Context) error, error)) *App {
	a.setupTelemetry = setup
	return a
}

// open loads the configuration and builds an engine from it.
// requireCache fails instead of continuing without a cache when it cannot be opened.
func (a *App) open(ctx context.Context, configPath string, requireCache bool) (*Engine, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	cfg, err := a.configLoader.Load(cwd, configPath)
	if err != nil {
		return nil, err
	}

	shutdown, err := a.setupTelemetry(ctx, cfg.Telemetry.Endpoint)
	if err != nil {
		a.logger.Warn(zerr.With(err, "endpoint", cfg.Telemetry.Endpoint).Error())
	}

	e := &Engine{
		cfg:          cfg,
		registry:     iconset.NewRegistry(cfg.SimpleNames),
		source:       a.source,
		logger:       a.logger,
		tracer:       a.tracer,
		metrics:      a.metrics,
		fingerprints: make(map[string]uint64),
		shutdown:     shutdown,
	}
	if err := e.importSets(); err != nil {
		e.Close()
		return nil, err
	}

	var cache ports.SetCache
	if cfg.Cache.Driver != domain.CacheNone {
		cache, err = a.caches.Open(ctx, cfg.Cache)
		if err != nil {
			if requireCache {
				e.Close()
				return nil, err
			}
			a.logger.Warn(zerr.With(err, "driver", string(cfg.Cache.Driver)).Error())
			cache = nil
		}
	}
	e.cache = cache

	e.loader, err = loader.New(e.registry, loader.Options{
		Providers: cfg.Providers,
		Transport: a.transport,
		Cache:     cache,
		Logger:    a.logger,
		Tracer:    a.tracer,
		Metrics:   a.metrics,
	})
	if err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}
