package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	_ "github.com/japanesestudent/embed-service/docs"
	authmw "github.com/japanesestudent/embed-service/internal/auth/middleware"
	"github.com/japanesestudent/embed-service/internal/auth/service"
	"github.com/japanesestudent/embed-service/internal/config"
	"github.com/japanesestudent/embed-service/internal/database"
	"github.com/japanesestudent/embed-service/internal/events"
	"github.com/japanesestudent/embed-service/internal/handlers"
	"github.com/japanesestudent/embed-service/internal/i18n"
	"github.com/japanesestudent/embed-service/internal/logger"
	loggerMiddleware "github.com/japanesestudent/embed-service/internal/logger/middleware"
	"github.com/japanesestudent/embed-service/internal/middlewares"
	"github.com/japanesestudent/embed-service/internal/repositories"
	"github.com/japanesestudent/embed-service/internal/resources"
	"github.com/japanesestudent/embed-service/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Lesson Embed API
// @version 1.0
// @description Renders lesson embed blocks and relays exploration player events to the platform event bus

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key of the host platform. Required for lifecycle, author and studio endpoints.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the learner access token. Optional.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Lesson Embed API", zap.String("event_publisher", cfg.Events.Publisher))

	// Connect to database
	db, err := database.Open(context.Background(), cfg.DSN(), database.APIPool)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Migrations live next to the binary or at the repository root when run from cmd/api
	if err := database.Migrate(db, database.MigrationsSource("migrations", "../../migrations")); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis when the event publisher needs it
	var (
		rdb         *redis.Client
		asynqClient *asynq.Client
	)
	switch cfg.Events.Publisher {
	case config.PublisherRedis:
		rdb = redis.NewClient(cfg.RedisOptions())
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	case config.PublisherQueue:
		asynqClient = asynq.NewClient(cfg.AsynqRedis())
		defer asynqClient.Close()
	}

	publisher, err := events.NewPublisher(cfg, rdb, asynqClient, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to create event publisher", zap.Error(err))
	}

	// Packaged templates and scripts
	renderer, err := resources.NewRenderer(resources.FS())
	if err != nil {
		logger.Logger.Fatal("Failed to load templates", zap.Error(err))
	}
	loader := resources.NewLoader(resources.FS())
	if packaged, err := loader.Locales(); err == nil {
		logger.Logger.Info("Translations loaded", zap.Strings("locales", packaged))
	}

	resolver, err := i18n.NewResolver(cfg.Locales)
	if err != nil {
		logger.Logger.Fatal("Failed to configure locales", zap.Error(err))
	}

	// Learner tokens are optional
	var tokens authmw.TokenValidator
	if cfg.JWT.Secret != "" {
		tokens = service.NewTokenValidator(cfg.JWT.Secret)
	}

	// Initialize repositories, services and handlers
	blockRepo := repositories.NewBlockRepository(db, logger.Logger)
	blockService := services.NewBlockService(blockRepo, publisher, renderer, loader, cfg.Block, logger.Logger)
	blockHandler := handlers.NewBlockHandler(blockService, cfg.APIKey, tokens, logger.Logger)
	healthHandler := handlers.NewHealthHandler(db, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(300, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(1 << 20)) // 1MB
	r.Use(i18n.Middleware(resolver))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(cfg.Server.BaseURL+"/swagger/doc.json"),
	))

	healthHandler.RegisterRoutes(r)
	blockHandler.RegisterRoutes(r)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
