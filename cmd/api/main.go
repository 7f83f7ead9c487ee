package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"products-api/internal/config"
	"products-api/internal/database"
	"products-api/internal/handler"
	"products-api/internal/middleware"
	"products-api/internal/repository"
	"products-api/internal/router"
	"products-api/internal/seed"
	"products-api/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("backend", cfg.Store.Backend).
		Str("profile", cfg.Profile).
		Msg("starting products API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	productRepo, closeStore, err := newProductRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.DemoEnabled() {
		seeder := seed.NewSeeder(productRepo, newSeedLoader(ctx, cfg, logger), cfg.Seed.File, logger)
		if err := seeder.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to load sample data")
		}
	}

	// Initialize service and HTTP handler
	productService := service.NewProductService(productRepo, logger)
	productHandler := handler.NewProductHandler(productService, logger)

	opts := router.Options{}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Metrics = middleware.NewMetrics(reg)
		opts.Gatherer = reg
		opts.MetricsPath = cfg.Metrics.Path
	}

	mux := router.New(productHandler, logger, opts)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newProductRepository connects the configured store and returns a cleanup function.
func newProductRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.ProductRepository, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		client, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize mongo: %w", err)
		}
		collection := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout())
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Error().Err(err).Msg("failed to disconnect from mongo")
			}
		}
		return repository.NewMongoProductRepository(collection, logger), closeFn, nil

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return repository.NewProductRepository(pool, logger), pool.Close, nil

	case config.BackendMemory:
		logger.Warn().Msg("using in-memory product store, data is lost on restart")
		return repository.NewMemoryProductRepository(logger), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}

// newSeedLoader returns the seed loader for the demo profile, or nil when the
// built-in products should be used.
func newSeedLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) seed.Loader {
	if cfg.Seed.File == "" {
		return nil
	}

	fileLoader := seed.NewFileLoader(logger)
	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for seed files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
}
