package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/usecase/command"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/metrics"
	timeProvider "github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/bootstrap"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := config.Validate(cfg, true)
	if err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := bootstrap.NewLogger(cfg, "")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	if len(warnings) > 0 {
		appLogger.Warn("Potential issues in production configuration", map[string]any{
			"warnings": warnings,
		})
	}

	tp := timeProvider.NewRealTimeProvider()
	promMetrics := metrics.NewPrometheusMetrics(metrics.DefaultNamespace)

	app, err := bootstrap.Build(context.Background(), cfg, appLogger, tp, promMetrics, nil)
	if err != nil {
		appLogger.Error("Failed to initialize migration service", map[string]any{
			"error": err.Error(),
		})
		_ = appLogger.Flush()
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	if sqlDB, err := app.DB.SQLDB(); err == nil {
		if err := promMetrics.RegisterDBStats(sqlDB, cfg.Database.Database); err != nil {
			appLogger.Warn("Failed to register database metrics", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Commands touching the same history table run one at a time
	queue := command.NewQueue(appLogger, cfg.Server.QueueCapacity)

	migrationHandler := handler.NewMigrationHandler(app.Service, queue, cfg.Migrations.Table, app.Target, appLogger)
	healthHandler := handler.NewHealthHandler(app.DB, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	routes.SetupRoutes(router, migrationHandler, healthHandler, promMetrics.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":      server.Addr,
			"env":       cfg.Environment,
			"driver":    app.DB.Driver(),
			"table":     cfg.Migrations.Table,
			"locations": cfg.Migrations.Locations,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-quit:
	case err := <-serverErr:
		appLogger.Error("Failed to start server", map[string]any{
			"error": err.Error(),
		})
		exitCode = 1
	}

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	// Drain queued commands before the connection pool goes away
	appLogger.Info("Shutting down command queue...", nil)
	queue.Shutdown()

	appLogger.Info("Server exited gracefully", nil)

	if exitCode != 0 {
		_ = app.Close()
		_ = appLogger.Flush()
		os.Exit(exitCode)
	}
}
