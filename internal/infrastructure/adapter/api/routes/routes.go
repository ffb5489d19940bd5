package routes

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API; metricsHandler may be nil
func SetupRoutes(
	router *gin.Engine,
	migrationHandler *handler.MigrationHandler,
	healthHandler *handler.HealthHandler,
	metricsHandler http.Handler,
) {
	router.GET("/health", healthHandler.Health)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	migrations := router.Group("/api/v1/migrations")
	{
		// GET /api/v1/migrations?state=PENDING
		migrations.GET("", migrationHandler.Info)

		// GET /api/v1/migrations/{current,next,pending,applied,failed,future,out-of-order,outdated,resolved}
		migrations.GET("/:view", migrationHandler.List)

		migrations.POST("/validate", migrationHandler.Validate)
		migrations.POST("/migrate", migrationHandler.Migrate)
		migrations.POST("/baseline", migrationHandler.Baseline)
		migrations.POST("/repair", migrationHandler.Repair)
		migrations.POST("/liberate", migrationHandler.Liberate)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.RequestID())
	// Logger wraps ErrorHandler so it sees the status of recovered and rendered errors
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.ErrorHandler(logger))
}
