package events

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/japanesestudent/embed-service/internal/models"
	"go.uber.org/zap"
)

// RedisClient is the subset of *redis.Client used for pub/sub
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type redisPublisher struct {
	client  RedisClient
	channel string
	logger  *zap.Logger
	now     func() time.Time
}

// NewRedisPublisher creates a publisher that sends event envelopes to a Redis pub/sub channel
func NewRedisPublisher(client RedisClient, channel string, logger *zap.Logger) *redisPublisher {
	return &redisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
		now:     time.Now,
	}
}

// Publish sends the event envelope to the configured channel
func (p *redisPublisher) Publish(ctx context.Context, source models.EventSource, eventName string, payload map[string]any) error {
	data, err := encodeEnvelope(source, eventName, payload, p.now())
	if err != nil {
		return err
	}

	receivers, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		p.logger.Error("failed to publish event to redis",
			zap.String("channel", p.channel),
			zap.String("event_type", eventName),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish event to redis: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("channel", p.channel),
		zap.String("event_type", eventName),
		zap.Int("block_id", source.BlockID),
		zap.Int64("receivers", receivers),
	)
	return nil
}
