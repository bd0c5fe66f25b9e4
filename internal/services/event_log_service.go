package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/japanesestudent/embed-service/internal/models"
	"go.uber.org/zap"
)

// EventLogRepository is the interface that wraps methods for exploration_events table data access
type EventLogRepository interface {
	// Method Create insert an event and set its ID.
	Create(ctx context.Context, event *models.ExplorationEvent) error
	// Method DeleteOlderThan remove events created before "cutoff" and return how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ErrInvalidEvent marks an envelope that can never be stored
var ErrInvalidEvent = errors.New("invalid event")

type eventLogService struct {
	repo   EventLogRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewEventLogService creates a new event log service
func NewEventLogService(repo EventLogRepository, logger *zap.Logger) *eventLogService {
	return &eventLogService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Record decodes an event envelope and stores it in the event log
func (s *eventLogService) Record(ctx context.Context, data []byte) error {
	var env models.EventEnvelope
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return fmt.Errorf("%w: failed to decode event: %v", ErrInvalidEvent, err)
	}
	if env.EventType == "" {
		return fmt.Errorf("%w: event_type is required", ErrInvalidEvent)
	}
	if env.BlockID <= 0 {
		return fmt.Errorf("%w: block_id must be positive", ErrInvalidEvent)
	}

	payload, err := json.Marshal(env.Event)
	if err != nil {
		return fmt.Errorf("%w: failed to encode event payload: %v", ErrInvalidEvent, err)
	}

	createdAt := env.Time
	if createdAt.IsZero() {
		createdAt = s.now().UTC()
	}

	event := &models.ExplorationEvent{
		BlockID:   env.BlockID,
		UserID:    env.UserID,
		EventType: env.EventType,
		Payload:   payload,
		CreatedAt: createdAt,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return err
	}

	s.logger.Debug("event recorded",
		zap.Int("event_id", event.ID),
		zap.String("event_type", event.EventType),
		zap.Int("block_id", event.BlockID),
	)
	return nil
}

// Purge removes events older than the retention window
func (s *eventLogService) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-retention)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.logger.Info("exploration events purged", zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))
	return deleted, nil
}
