// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"prepstock/internal/domain/alert"
	"prepstock/internal/domain/auth"
	"prepstock/internal/domain/ingredient"
	"prepstock/internal/domain/ledger"
	"prepstock/internal/domain/recipe"
	"prepstock/internal/infrastructure/http/v1/handlers"
	"prepstock/internal/infrastructure/http/v1/middleware"
	"prepstock/internal/infrastructure/storage/postgres"
	"prepstock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// TokenValidator for JWT validation
	TokenValidator middleware.TokenValidator

	// Services
	AuthService       *auth.Service
	IngredientService *ingredient.Service
	RecipeService     *recipe.Service
	LedgerService     *ledger.Service
	AlertService      *alert.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
		authHandler.RegisterRoutes(v1.Group("/auth"))

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.TokenValidator))

		ingredientHandler := handlers.NewIngredientHandler(base, cfg.IngredientService)
		ingredientHandler.RegisterRoutes(protected.Group("/ingredients"))

		recipeHandler := handlers.NewRecipeHandler(base, cfg.RecipeService)
		recipeHandler.RegisterRoutes(protected.Group("/recipes"))

		ledgerHandler := handlers.NewLedgerHandler(base, cfg.LedgerService)
		ledgerHandler.RegisterRoutes(protected.Group("/ledger"))

		alertHandler := handlers.NewAlertHandler(base, cfg.AlertService)
		alertHandler.RegisterRoutes(protected.Group("/alerts"))
	}

	return router
}
