package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/japanesestudent/embed-service/internal/models"
	"go.uber.org/zap"
)

// ErrBlockNotFound is returned when no block row matches the ID
var ErrBlockNotFound = errors.New("lesson embed block not found")

type blockRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBlockRepository creates a new instance of the BlockRepository interface
func NewBlockRepository(db *sql.DB, logger *zap.Logger) *blockRepository {
	return &blockRepository{
		db:     db,
		logger: logger,
	}
}

// Method GetByID is a BlockRepository implementation for retrieving a placed block with its configuration.
func (r *blockRepository) GetByID(ctx context.Context, id int) (*models.LessonEmbedBlock, error) {
	query := `
		SELECT id, display_name, lesson_id, source_url, created_at, updated_at
		FROM lesson_embed_blocks
		WHERE id = ?
	`

	var b models.LessonEmbedBlock
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Config.DisplayName, &b.Config.LessonID, &b.Config.SourceURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlockNotFound
		}
		r.logger.Error("failed to query block", zap.Int("block_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to query block: %w", err)
	}

	return &b, nil
}

// Method Create is a BlockRepository implementation for placing a new block.
// It returns the ID of the inserted row.
func (r *blockRepository) Create(ctx context.Context, cfg models.BlockConfig) (int, error) {
	query := `
		INSERT INTO lesson_embed_blocks (display_name, lesson_id, source_url)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, cfg.DisplayName, cfg.LessonID, cfg.SourceURL)
	if err != nil {
		r.logger.Error("failed to insert block", zap.Error(err))
		return 0, fmt.Errorf("failed to insert block: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get inserted block id", zap.Error(err))
		return 0, fmt.Errorf("failed to get inserted block id: %w", err)
	}

	return int(id), nil
}

// Method SaveConfig is a BlockRepository implementation for overwriting the stored configuration.
// Satisfies block.FieldStore.
func (r *blockRepository) SaveConfig(ctx context.Context, id int, cfg models.BlockConfig) error {
	query := `
		UPDATE lesson_embed_blocks
		SET display_name = ?, lesson_id = ?, source_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, cfg.DisplayName, cfg.LessonID, cfg.SourceURL, id)
	if err != nil {
		r.logger.Error("failed to update block", zap.Int("block_id", id), zap.Error(err))
		return fmt.Errorf("failed to update block: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// Method Delete is a BlockRepository implementation for removing a placed block.
func (r *blockRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lesson_embed_blocks WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete block", zap.Int("block_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete block: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}
