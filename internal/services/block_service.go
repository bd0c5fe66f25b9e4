package services

import (
	"context"
	"fmt"

	authmw "github.com/japanesestudent/embed-service/internal/auth/middleware"
	"github.com/japanesestudent/embed-service/internal/block"
	"github.com/japanesestudent/embed-service/internal/i18n"
	"github.com/japanesestudent/embed-service/internal/models"
	"go.uber.org/zap"
)

// BlockRepository is the interface that wraps methods for lesson_embed_blocks table data access
type BlockRepository interface {
	// Method GetByID retrieve a placed block with its stored configuration.
	//
	// If no block matches "id", an error containing "not found" is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.LessonEmbedBlock, error)
	// Method Create insert a new block row and return its ID.
	Create(ctx context.Context, cfg models.BlockConfig) (int, error)
	// Method SaveConfig overwrite the configuration of a placed block.
	//
	// If no block matches "id", an error containing "not found" is returned.
	SaveConfig(ctx context.Context, id int, cfg models.BlockConfig) error
	// Method Delete remove a placed block.
	//
	// Please reference SaveConfig method for error values.
	Delete(ctx context.Context, id int) error
}

type blockService struct {
	repo      BlockRepository
	publisher block.Publisher
	templates block.TemplateRenderer
	resources block.ResourceLoader
	defaults  models.BlockConfig
	logger    *zap.Logger
}

// NewBlockService creates a new block service.
// "defaults" is the configuration newly placed blocks start with.
func NewBlockService(
	repo BlockRepository,
	publisher block.Publisher,
	templates block.TemplateRenderer,
	resources block.ResourceLoader,
	defaults models.BlockConfig,
	logger *zap.Logger,
) *blockService {
	return &blockService{
		repo:      repo,
		publisher: publisher,
		templates: templates,
		resources: resources,
		defaults:  defaults,
		logger:    logger,
	}
}

// Create places a new block. Fields left empty in the request take the default values.
func (s *blockService) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.LessonEmbedBlock, error) {
	cfg := models.BlockConfig{
		DisplayName: req.DisplayName,
		LessonID:    req.LessonID,
		SourceURL:   req.SourceURL,
	}.WithFallback(s.defaults)

	id, err := s.repo.Create(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create block: %w", err)
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load created block: %w", err)
	}

	s.logger.Info("block created", zap.Int("block_id", id), zap.String("lesson_id", cfg.LessonID))
	return created, nil
}

// Delete removes a placed block together with its configuration
func (s *blockService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("block deleted", zap.Int("block_id", id))
	return nil
}

// StudentView renders the learner view of a block
func (s *blockService) StudentView(ctx context.Context, id int) (*models.Fragment, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.StudentView(ctx)
}

// AuthorView renders the preview shown to course authors
func (s *blockService) AuthorView(ctx context.Context, id int) (*models.Fragment, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.AuthorView(ctx)
}

// StudioView renders the configuration form
func (s *blockService) StudioView(ctx context.Context, id int) (*models.Fragment, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.StudioView(ctx)
}

// HandleJSON dispatches a JSON handler call to a placed block.
//
// Unknown handler names fail with block.ErrUnknownHandler and relay payloads
// lacking a required key fail with *block.MissingFieldError.
func (s *blockService) HandleJSON(ctx context.Context, id int, handler string, data map[string]any) (models.HandlerResult, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return models.HandlerResult{}, err
	}

	result, err := b.Handle(ctx, handler, data)
	if err != nil {
		s.logger.Warn("block handler failed",
			zap.Int("block_id", id),
			zap.String("handler", handler),
			zap.Error(err),
		)
		return models.HandlerResult{}, err
	}
	return result, nil
}

// Scenarios returns the canned workbench scenarios
func (s *blockService) Scenarios() []models.Scenario {
	return block.WorkbenchScenarios(s.defaults.SourceURL)
}

// ScenarioStudentView renders the first block declared by a workbench scenario.
// The block is kept in memory and never touches the database.
func (s *blockService) ScenarioStudentView(ctx context.Context, index int) (*models.Fragment, error) {
	scenarios := s.Scenarios()
	if index < 0 || index >= len(scenarios) {
		return nil, fmt.Errorf("scenario %d not found", index)
	}

	configs, err := block.ParseScenario(scenarios[index].XML, s.defaults)
	if err != nil {
		return nil, err
	}

	b, err := block.New(0, configs[0], s.runtime(block.NewMemoryStore()))
	if err != nil {
		return nil, err
	}
	return b.StudentView(ctx)
}

// load binds a stored block to a runtime backed by the repository
func (s *blockService) load(ctx context.Context, id int) (*block.LessonEmbedBlock, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return block.New(stored.ID, stored.Config, s.runtime(s.repo))
}

func (s *blockService) runtime(store block.FieldStore) block.Runtime {
	return block.Runtime{
		Publisher: s.publisher,
		Store:     store,
		Templates: s.templates,
		Resources: s.resources,
		Locale:    requestLocale,
		User:      authmw.GetUserID,
	}
}

// requestLocale reads the locale resolved by the i18n middleware
func requestLocale(ctx context.Context) string {
	if locale := i18n.LocaleFromContext(ctx); locale != "" {
		return locale
	}
	return block.FallbackLocale
}
