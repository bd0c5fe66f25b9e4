// Package events delivers relayed exploration events to the host event bus
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/japanesestudent/embed-service/internal/block"
	"github.com/japanesestudent/embed-service/internal/config"
	"github.com/japanesestudent/embed-service/internal/models"
	"go.uber.org/zap"
)

// NewPublisher builds the adapter selected by cfg.Events.Publisher
func NewPublisher(cfg *config.Config, rdb *redis.Client, asynqClient *asynq.Client, logger *zap.Logger) (block.Publisher, error) {
	switch cfg.Events.Publisher {
	case config.PublisherRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis client is required for %s publisher", config.PublisherRedis)
		}
		return NewRedisPublisher(rdb, cfg.Events.Channel, logger), nil
	case config.PublisherQueue:
		if asynqClient == nil {
			return nil, fmt.Errorf("asynq client is required for %s publisher", config.PublisherQueue)
		}
		return NewQueuePublisher(asynqClient, cfg.Events.Queue, logger), nil
	case config.PublisherLog, "":
		return NewLogPublisher(logger), nil
	}
	return nil, fmt.Errorf("unknown event publisher: %s", cfg.Events.Publisher)
}

// encodeEnvelope wraps the payload and encodes it as JSON
func encodeEnvelope(source models.EventSource, eventName string, payload map[string]any, at time.Time) ([]byte, error) {
	data, err := json.Marshal(models.NewEventEnvelope(source, eventName, payload, at))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, nil
}
