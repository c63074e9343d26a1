// Package main implements catalogd, the reference backend serving the /bp
// product API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/bpsoft/catalog/internal/config"
	"github.com/bpsoft/catalog/internal/server/app"
	"github.com/bpsoft/catalog/internal/server/store"
	"github.com/bpsoft/catalog/pkg/bootstrap"
	"github.com/bpsoft/catalog/pkg/config/configloader"
	pkgserver "github.com/bpsoft/catalog/pkg/server"
)

const appName = "catalogd"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads configuration, picks the product store and serves the API until
// the context is cancelled.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.ServerConfig](appName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	productStore, cleanup, err := newProductStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	deps := app.SetupDependencies(productStore, logger)
	httpServer := pkgserver.NewHTTPServer(pkgserver.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}, app.SetupHTTPHandler(deps))

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// newProductStore returns the PostgreSQL store when a database is configured
// and the in-memory store otherwise. Migrations run before the pool opens.
func newProductStore(ctx context.Context, cfg *config.ServerConfig, logger *slog.Logger) (store.ProductStore, func(), error) {
	if !cfg.Database.Enabled() {
		logger.Info("No database configured, using in-memory product store")
		return store.NewMemoryStore(), func() {}, nil
	}

	if err := store.Migrate(cfg.Database.URL); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	logger.Info("Successfully connected to the database!")
	return store.NewPgStore(dbPool), dbPool.Close, nil
}
