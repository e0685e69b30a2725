package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RobBrazier/alertfeed/cmd/web/utils"
	"github.com/RobBrazier/alertfeed/config"
	"github.com/RobBrazier/alertfeed/internal/alerts"
	"github.com/RobBrazier/alertfeed/internal/cache"
	"github.com/RobBrazier/alertfeed/internal/feed"
	"github.com/RobBrazier/alertfeed/internal/logging"
	"github.com/RobBrazier/alertfeed/internal/metrics"
	"github.com/RobBrazier/alertfeed/internal/proxy"
	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"
)

// AlertLoader runs one load into target.
type AlertLoader interface {
	Load(ctx context.Context, target alerts.Target) error
	FeedURL() string
}

type Server struct {
	port        int
	logger      *zerolog.Logger
	logRequests bool
	loader      AlertLoader
	builder     feed.Builder
	registry    *prometheus.Registry
	cacheTTL    time.Duration
	version     string
}

// NewServer wires the HTTP server. The returned closer stops the cache save
// job and writes the cache to disk; call it once the server has shut down.
func NewServer() (*http.Server, io.Closer, error) {
	if err := config.LoadConfig(); err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.Setup(logging.Options{
		Console: config.IsLocal() || config.LogFormat() == "text",
		Level:   config.LogLevel(),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := metrics.NewObserver("alertfeed", registry)
	if err != nil {
		return nil, nil, err
	}

	collectionCache := cache.NewCollectionCache(config.CacheTTL())
	cache.LoadCache(collectionCache, config.CacheStorage())

	loader := alerts.NewLoader(alerts.Options{
		Proxy:    proxy.NewClient(config.ProxyURL(), config.RetryMax(), utils.Version),
		FeedURL:  config.FeedURL(),
		Location: config.Location(),
		Cache:    collectionCache,
		CacheTTL: config.CacheTTL(),
		Observer: observer,
	})

	persister, err := newCachePersister(collectionCache, config.CacheStorage())
	if err != nil {
		return nil, nil, err
	}

	NewServer := &Server{
		port:        config.Port(),
		logger:      logger,
		logRequests: config.LogRequests(),
		loader:      loader,
		builder:     feed.NewBuilder(loader, config.FeedURL()),
		registry:    registry,
		cacheTTL:    config.CacheTTL(),
		version:     utils.Version,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info().
		Int("port", NewServer.port).
		Str("feed", config.FeedURL()).
		Str("proxy", config.ProxyURL()).
		Dur("cache_ttl", config.CacheTTL()).
		Str("version", utils.Version).
		Msg("Server configured")

	return server, persister, nil
}

// cachePersister saves the collection cache hourly and once more on Close.
type cachePersister struct {
	scheduler gocron.Scheduler
	cache     *cache.CollectionCache
	path      string
}

func newCachePersister(c *cache.CollectionCache, path string) (*cachePersister, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	if c != nil {
		_, err = scheduler.NewJob(
			gocron.DurationJob(1*time.Hour),
			gocron.NewTask(cache.SaveCache, c, path),
		)
		if err != nil {
			return nil, fmt.Errorf("schedule cache save: %w", err)
		}
	}
	scheduler.Start()
	return &cachePersister{scheduler: scheduler, cache: c, path: path}, nil
}

func (p *cachePersister) Close() error {
	err := p.scheduler.Shutdown()
	if err != nil {
		log.Error().Err(err).Msg("Scheduler shutdown failed")
	}
	cache.SaveCache(p.cache, p.path)
	return err
}
