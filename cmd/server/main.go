/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the region calendar engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env, the optional config file and the environment
  2. Apply command-line flags
  3. Initialize SQLite store and seed configured profiles
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start server and profile auditor with graceful shutdown

COMMAND-LINE FLAGS:
  -config  TOML config file (optional)
  -port    HTTP server port (overrides config)
  -db      SQLite database path (overrides config)
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (server.shutdown_timeout)
  3. Stop the auditor and close the database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/regions.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run with a config file on a different port
  ./server -config=regions.toml -port=3000

ENVIRONMENT:
  See config/config.go (REGION_ENGINE_*).

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/region-engine/api"
	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/calendars"
	"github.com/warp/region-engine/config"
	"github.com/warp/region-engine/factory"
	"github.com/warp/region-engine/profile"
	"github.com/warp/region-engine/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	// Flags
	configPath := flag.String("config", "", "TOML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()

	registry := calendars.NewRegistry()
	regions := factory.NewRegionFactory(calendar.UTC())
	regions = factory.NewRegionFactory(regions.Region(cfg.DefaultRegion))
	if err := registry.Validate(regions.Defaults()); err != nil {
		return fmt.Errorf("default_region: %w", err)
	}
	profiles := profile.NewService(store, registry)

	// Seed profiles from config
	ctx := context.Background()
	for _, p := range cfg.Profiles {
		seeded, created, err := profiles.Ensure(ctx, p.Name, regions.Region(p.Region))
		if err != nil {
			return fmt.Errorf("seed profile %q: %w", p.Name, err)
		}
		if created {
			logger.Info("profile seeded", "name", seeded.Name, "region", seeded.Region.String())
		}
	}

	// Initialize handler
	handler := api.NewHandler(calendar.NewEngine(registry), profiles, regions)
	handler.DefaultProfile = cfg.DefaultProfile
	handler.Calendars = registry.Calendars()
	handler.Database = store
	handler.Logger = logger

	if handler.DefaultProfile != "" {
		if _, err := profiles.Get(ctx, handler.DefaultProfile); err != nil {
			return fmt.Errorf("default_profile %q: %w", handler.DefaultProfile, err)
		}
	}

	auditor := api.NewProfileAuditor(profiles, registry, handler.Metrics, logger)
	auditor.Start(cfg.Server.AuditInterval.Duration)
	defer auditor.Stop()

	// Create router
	router := api.NewRouter(handler, api.RouterOptions{AllowedOrigins: cfg.Server.AllowedOrigins})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr, "db", cfg.Database.Path, "default_region", regions.Defaults().String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
