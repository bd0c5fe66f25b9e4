package events

import (
	"context"
	"time"

	"github.com/japanesestudent/embed-service/internal/models"
	"go.uber.org/zap"
)

type logPublisher struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewLogPublisher creates a publisher that writes events to the process log
func NewLogPublisher(logger *zap.Logger) *logPublisher {
	return &logPublisher{logger: logger, now: time.Now}
}

// Publish logs the event envelope at info level
func (p *logPublisher) Publish(ctx context.Context, source models.EventSource, eventName string, payload map[string]any) error {
	fields := []zap.Field{
		zap.String("event_type", eventName),
		zap.Int("block_id", source.BlockID),
		zap.Any("event", payload),
		zap.Time("time", p.now().UTC()),
	}
	if source.UserID != nil {
		fields = append(fields, zap.Int("user_id", *source.UserID))
	}

	p.logger.Info("exploration event", fields...)
	return nil
}
