package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/japanesestudent/embed-service/internal/services"
	"go.uber.org/zap"
)

// EventLogService defines the interface for the exploration event log
type EventLogService interface {
	// Record stores an encoded event envelope
	//
	// "data" is the JSON envelope carried by the lesson:event task.
	//
	// Returns an error wrapping services.ErrInvalidEvent when the envelope can never be stored.
	Record(ctx context.Context, data []byte) error
	// Purge removes events older than "retention"
	//
	// Returns the number of removed events.
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

// Worker handles event log tasks
type Worker struct {
	logger    *zap.Logger
	events    EventLogService
	retention time.Duration
}

// NewWorker creates a new worker instance
func NewWorker(logger *zap.Logger, events EventLogService, retention time.Duration) *Worker {
	return &Worker{
		logger:    logger,
		events:    events,
		retention: retention,
	}
}

// HandleEvent stores a relayed exploration event.
// Malformed envelopes are not retried.
func (w *Worker) HandleEvent(ctx context.Context, t *asynq.Task) error {
	if err := w.events.Record(ctx, t.Payload()); err != nil {
		if errors.Is(err, services.ErrInvalidEvent) {
			w.logger.Warn("Dropping invalid event", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}
	return nil
}

// PurgeExpired removes events older than the retention window
func (w *Worker) PurgeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := w.events.Purge(ctx, w.retention); err != nil {
		w.logger.Error("Failed to purge exploration events", zap.Error(err))
	}
}
