// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/japanesestudent/embed-service/internal/models"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Event publisher kinds
const (
	PublisherLog   = "log"
	PublisherRedis = "redis"
	PublisherQueue = "queue"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	JWT      JWTConfig
	Events   EventsConfig
	Worker   WorkerConfig
	Block    models.BlockConfig
	Locales  []string
	APIKey   string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port    int
	BaseURL string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds learner token settings
type JWTConfig struct {
	Secret string
}

// EventsConfig holds event relay settings
type EventsConfig struct {
	Publisher string
	Channel   string
	Queue     string
}

// WorkerConfig holds analytics worker settings
type WorkerConfig struct {
	Concurrency   int
	Retention     time.Duration
	RetentionCron string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPort, err := intEnv("DB_PORT", "")
	if err != nil {
		return nil, err
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	serverPort, err := intEnv("SERVER_PORT", "8080")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	cfg.Server.BaseURL = os.Getenv("BASE_URL")
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	}

	// API key guards studio and block lifecycle endpoints
	cfg.APIKey = os.Getenv("API_KEY")
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}

	// JWT secret is optional; without it learner events are anonymous
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	// Redis configuration
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost" // default
	}
	cfg.Redis.Host = redisHost

	redisPort, err := intEnv("REDIS_PORT", "6379")
	if err != nil {
		return nil, err
	}
	cfg.Redis.Port = redisPort

	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional

	redisDB, err := intEnv("REDIS_DB", "0")
	if err != nil {
		return nil, err
	}
	cfg.Redis.DB = redisDB

	// Event relay configuration
	publisher := strings.ToLower(os.Getenv("EVENT_PUBLISHER"))
	switch publisher {
	case "":
		publisher = PublisherLog
	case PublisherLog, PublisherRedis, PublisherQueue:
	default:
		return nil, fmt.Errorf("invalid EVENT_PUBLISHER: %s", publisher)
	}
	cfg.Events.Publisher = publisher

	cfg.Events.Channel = os.Getenv("REDIS_EVENT_CHANNEL")
	if cfg.Events.Channel == "" {
		cfg.Events.Channel = "lesson-events"
	}

	cfg.Events.Queue = os.Getenv("EVENT_QUEUE")
	if cfg.Events.Queue == "" {
		cfg.Events.Queue = "events"
	}

	// Worker configuration
	concurrency, err := intEnv("WORKER_CONCURRENCY", "5")
	if err != nil {
		return nil, err
	}
	cfg.Worker.Concurrency = concurrency

	retentionStr := os.Getenv("EVENT_RETENTION")
	if retentionStr == "" {
		retentionStr = "2160h" // 90 days
	}
	retention, err := time.ParseDuration(retentionStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETENTION: %w", err)
	}
	cfg.Worker.Retention = retention

	cfg.Worker.RetentionCron = os.Getenv("EVENT_RETENTION_CRON")
	if cfg.Worker.RetentionCron == "" {
		cfg.Worker.RetentionCron = "@daily"
	}
	if _, err := cron.ParseStandard(cfg.Worker.RetentionCron); err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETENTION_CRON: %w", err)
	}

	// Block defaults
	cfg.Block = models.BlockConfig{
		DisplayName: os.Getenv("DEFAULT_DISPLAY_NAME"),
		LessonID:    os.Getenv("DEFAULT_LESSON_ID"),
		SourceURL:   os.Getenv("DEFAULT_SOURCE_URL"),
	}.WithFallback(models.DefaultBlockConfig())

	// Platform locales; the first one is the default
	cfg.Locales = splitList(os.Getenv("SUPPORTED_LOCALES"))
	if len(cfg.Locales) == 0 {
		cfg.Locales = []string{"en", "ru", "ja", "eo"}
	}

	return cfg, nil
}

// DSN returns the database connection string.
// clientFoundRows makes an UPDATE that changes nothing still report the matched row.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&clientFoundRows=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// RedisOptions returns go-redis client options
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.RedisAddr(),
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	}
}

// AsynqRedis returns the asynq connection settings for the same Redis instance
func (c *Config) AsynqRedis() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.RedisAddr(),
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	}
}

// intEnv reads an integer variable; an empty default makes it required
func intEnv(key, def string) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		if def == "" {
			return 0, fmt.Errorf("%s is required", key)
		}
		value = def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// splitList parses a comma-separated list, dropping empty items
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}
