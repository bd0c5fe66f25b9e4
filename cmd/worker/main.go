package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/japanesestudent/embed-service/internal/config"
	"github.com/japanesestudent/embed-service/internal/database"
	"github.com/japanesestudent/embed-service/internal/events"
	"github.com/japanesestudent/embed-service/internal/logger"
	"github.com/japanesestudent/embed-service/internal/repositories"
	"github.com/japanesestudent/embed-service/internal/services"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

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

	logger.Logger.Info("Starting Lesson Embed Event Worker")

	// Connect to database
	db, err := database.Open(context.Background(), cfg.DSN(), database.WorkerPool)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Test Redis connection
	if err := pingRedis(cfg); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	eventLogService := services.NewEventLogService(repositories.NewEventLogRepository(db, logger.Logger), logger.Logger)
	worker := NewWorker(logger.Logger, eventLogService, cfg.Worker.Retention)

	srv := asynq.NewServer(
		cfg.AsynqRedis(),
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues: map[string]int{
				cfg.Events.Queue: 1,
			},
		},
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(events.TaskTypeEvent, worker.HandleEvent)

	// Schedule event log retention
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Worker.RetentionCron, worker.PurgeExpired); err != nil {
		logger.Logger.Fatal("Failed to schedule retention job", zap.Error(err))
	}
	scheduler.Start()

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()

	logger.Logger.Info("Worker started",
		zap.String("queue", cfg.Events.Queue),
		zap.String("retention_cron", cfg.Worker.RetentionCron),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	<-scheduler.Stop().Done()
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}

// pingRedis checks the Redis instance shared with the asynq server
func pingRedis(cfg *config.Config) error {
	rdb := redis.NewClient(cfg.RedisOptions())
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return rdb.Ping(ctx).Err()
}
