package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/japanesestudent/embed-service/internal/models"
	"go.uber.org/zap"
)

type eventLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventLogRepository creates a new instance of the EventLogRepository interface
func NewEventLogRepository(db *sql.DB, logger *zap.Logger) *eventLogRepository {
	return &eventLogRepository{
		db:     db,
		logger: logger,
	}
}

// Method Create is an EventLogRepository implementation for storing a relayed exploration event.
func (r *eventLogRepository) Create(ctx context.Context, event *models.ExplorationEvent) error {
	query := `
		INSERT INTO exploration_events (block_id, user_id, event_type, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	var userID sql.NullInt64
	if event.UserID != nil {
		userID = sql.NullInt64{Int64: int64(*event.UserID), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, event.BlockID, userID, event.EventType, []byte(event.Payload), event.CreatedAt)
	if err != nil {
		r.logger.Error("failed to insert exploration event", zap.String("event_type", event.EventType), zap.Error(err))
		return fmt.Errorf("failed to insert exploration event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted event id: %w", err)
	}
	event.ID = int(id)

	return nil
}

// Method DeleteOlderThan is an EventLogRepository implementation for purging events created before cutoff.
// Returns the number of deleted rows.
func (r *eventLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exploration_events WHERE created_at < ?`, cutoff)
	if err != nil {
		r.logger.Error("failed to purge exploration events", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, fmt.Errorf("failed to purge exploration events: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
