// Package main is the entry point for the prepstock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"prepstock/internal/domain/alert"
	"prepstock/internal/domain/auth"
	"prepstock/internal/domain/ingredient"
	"prepstock/internal/domain/ledger"
	"prepstock/internal/domain/recipe"
	"prepstock/internal/domain/reconcile"
	"prepstock/internal/infrastructure/cache"
	v1 "prepstock/internal/infrastructure/http/v1"
	"prepstock/internal/infrastructure/storage/postgres"
	"prepstock/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting prepstock server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	// --- Redis (optional, catalog snapshot cache) ---
	var redisClient *redis.Client
	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalw("invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warnw("redis unavailable, snapshot cache disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info("redis connection established")
		}
	}

	snapshotCache, err := cache.NewSnapshotCache(redisClient,
		getEnvDuration("SNAPSHOT_CACHE_TTL", cache.DefaultSnapshotTTL))
	if err != nil {
		log.Fatalw("failed to create snapshot cache", "error", err)
	}
	costCache := cache.NewCostCache(getEnvDuration("COST_CACHE_TTL", cache.DefaultCostTTL))

	// --- Repositories ---
	ingredientRepo := postgres.NewIngredientRepo(txManager)
	recipeRepo := postgres.NewRecipeRepo(txManager)
	ledgerRepo := postgres.NewLedgerRepo(txManager)
	alertRepo := postgres.NewAlertRepo(txManager)
	userRepo := postgres.NewUserRepo(txManager)

	// --- Services ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	authService := auth.NewService(userRepo, jwtService, txManager)

	ingredientService := ingredient.NewService(ingredientRepo, snapshotCache, costCache)
	committer := reconcile.NewCommitter(ingredientService)
	recipeService := recipe.NewService(recipeRepo, ingredientService, committer, costCache)
	ledgerService := ledger.NewService(ledgerRepo)

	rules, err := alert.DefaultRules()
	if err != nil {
		log.Fatalw("failed to compile alert rules", "error", err)
	}
	alertService := alert.NewService(alertRepo, rules)

	// --- Alert watcher ---
	watcherCtx, stopWatcher := context.WithCancel(ctx)
	defer stopWatcher()
	watcher := alert.NewWatcher(alertService, ingredientRepo,
		getEnvDuration("ALERT_SCAN_INTERVAL", alert.DefaultScanInterval))
	go watcher.Run(watcherCtx)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:              pool,
		Logger:            log,
		TokenValidator:    jwtService,
		AuthService:       authService,
		IngredientService: ingredientService,
		RecipeService:     recipeService,
		LedgerService:     ledgerService,
		AlertService:      alertService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopWatcher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
