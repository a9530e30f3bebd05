package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"framecraft/internal/composer"
	"framecraft/internal/config"
	"framecraft/internal/httpapi"
	"framecraft/internal/httpapi/handlers"
	"framecraft/internal/pkg/logger"
	"framecraft/internal/pkg/shutdown"
	"framecraft/internal/render"
	"framecraft/internal/search"
)

const version = "0.1.0"

func main() {
	config.LoadDotEnv()

	cfg, cfgErr := config.Load()

	// Initialize logger
	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "framecraft-api",
		AddSource:   cfg.LogSource,
	})

	if cfgErr != nil {
		log.LogFatal("invalid configuration", cfgErr)
	}

	log.Info("starting framecraft API", "version", version)

	ctx := context.Background()

	// Initialize shutdown manager
	shutdownMgr := shutdown.NewManager(log, 30*time.Second)

	catalog := composer.DefaultCatalog()
	if cfg.StyleCatalog != "" {
		c, err := composer.LoadCatalogFile(cfg.StyleCatalog)
		if err != nil {
			log.LogFatal("failed to load style catalog", err, "path", cfg.StyleCatalog)
		}
		catalog = c
		log.Info("style catalog loaded", "path", cfg.StyleCatalog)
	}

	var searcher search.Searcher = search.NewPexelsClient(search.Options{
		APIKey:  cfg.PexelsAPIKey,
		BaseURL: cfg.PexelsBaseURL,
		Timeout: cfg.ProviderTimeout,
		Logger:  log,
	})

	// Connect to Redis when the search cache is enabled
	var cache handlers.Pinger
	if cfg.RedisAddr != "" {
		log.Info("connecting to Redis")
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		shutdownMgr.Register("redis", func(ctx context.Context) error {
			return rdb.Close()
		})

		rc := search.NewRedisCache(rdb, cfg.SearchCacheTTL, log)
		if err := rc.Ping(ctx); err != nil {
			log.LogFatal("failed to ping Redis", err)
		}
		log.Info("Redis connected", "ttl", cfg.SearchCacheTTL.String())

		searcher = search.NewCachedSearcher(searcher, rc, log)
		cache = rc
	}

	renderer := render.NewHTTPClient(render.Options{
		BaseURL:    cfg.ShotstackHost,
		APIKey:     cfg.ShotstackAPIKey,
		StatusData: cfg.ShotstackStatusData,
		Timeout:    cfg.ProviderTimeout,
		Logger:     log,
	})

	comp := composer.New(composer.Deps{
		Search:  searcher,
		Render:  renderer,
		Catalog: catalog,
		Log:     log,
	})

	// Create HTTP router
	router := httpapi.NewRouter(handlers.Deps{
		Composer: comp,
		Cache:    cache,
		Log:      log,
		Version:  version,
	}, httpapi.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Register server shutdown
	shutdownMgr.Register("http-server", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return server.Shutdown(ctx)
	})

	// Start server in goroutine
	go func() {
		log.Info("HTTP server listening",
			"addr", server.Addr,
			"port", cfg.HTTPPort,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogFatal("HTTP server failed", err)
		}
	}()

	// Wait for shutdown signal
	shutdownMgr.Wait()
}
