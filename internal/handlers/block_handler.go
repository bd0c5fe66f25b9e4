package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	authmw "github.com/japanesestudent/embed-service/internal/auth/middleware"
	"github.com/japanesestudent/embed-service/internal/block"
	"github.com/japanesestudent/embed-service/internal/models"
	"go.uber.org/zap"
)

// BlockService is the interface that wraps methods for lesson embed block business logic.
type BlockService interface {
	// Method Create place a new block using configured repository.
	//
	// Fields left empty in "req" take the default configuration values.
	Create(ctx context.Context, req *models.CreateBlockRequest) (*models.LessonEmbedBlock, error)
	// Method Delete remove a placed block.
	//
	// If the block does not exist, an error containing "not found" is returned.
	Delete(ctx context.Context, id int) error
	// Method StudentView render the learner view of a block.
	//
	// The active locale is read from "ctx". Please reference Delete method for error values.
	StudentView(ctx context.Context, id int) (*models.Fragment, error)
	// Method AuthorView render the author preview of a block.
	//
	// Please reference StudentView method for more information.
	AuthorView(ctx context.Context, id int) (*models.Fragment, error)
	// Method StudioView render the configuration form of a block.
	//
	// Please reference StudentView method for more information.
	StudioView(ctx context.Context, id int) (*models.Fragment, error)
	// Method HandleJSON dispatch a JSON handler call to a block.
	//
	// "handler" is one of the block handler names. Unknown names fail with block.ErrUnknownHandler,
	// relay payloads without a required key fail with *block.MissingFieldError.
	HandleJSON(ctx context.Context, id int, handler string, data map[string]any) (models.HandlerResult, error)
	// Method Scenarios return the canned workbench scenarios.
	Scenarios() []models.Scenario
	// Method ScenarioStudentView render the learner view of a workbench scenario without storage.
	ScenarioStudentView(ctx context.Context, index int) (*models.Fragment, error)
}

// BlockHandler handles HTTP requests for lesson embed blocks
type BlockHandler struct {
	BaseHandler
	service BlockService
	apiKey  string
	tokens  authmw.TokenValidator
}

// NewBlockHandler creates a new block handler.
// "tokens" may be nil, in which case learner events are anonymous.
func NewBlockHandler(svc BlockService, apiKey string, tokens authmw.TokenValidator, logger *zap.Logger) *BlockHandler {
	return &BlockHandler{
		service:     svc,
		apiKey:      apiKey,
		tokens:      tokens,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all block handler routes
func (h *BlockHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/blocks", func(r chi.Router) {
			// Studio and lifecycle endpoints are called by the host platform
			r.Group(func(r chi.Router) {
				r.Use(authmw.APIKeyMiddleware(h.apiKey))
				r.Post("/", h.Create)
				r.Delete("/{id}", h.Delete)
				r.Get("/{id}/author_view", h.AuthorView)
				r.Get("/{id}/studio_view", h.StudioView)
			})

			// Learner endpoints
			r.Group(func(r chi.Router) {
				r.Use(authmw.OptionalAuthMiddleware(h.tokens))
				r.Get("/{id}/student_view", h.StudentView)
				r.Post("/{id}/handler/{handler}", h.HandleJSON)
			})
		})
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.Scenarios)
			r.Get("/{index}/student_view", h.ScenarioStudentView)
		})
	})
}

// Create handles POST /api/v1/blocks
// @Summary Place a block
// @Description Create a lesson embed block. Omitted fields take the default configuration.
// @Tags blocks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateBlockRequest false "Initial configuration"
// @Success 201 {object} models.LessonEmbedBlock
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /blocks [post]
func (h *BlockHandler) Create(w http.ResponseWriter, r *http.Request) {
	// An empty body places a block with the default configuration
	var req models.CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create block", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to create block")
		return
	}

	h.respondJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/v1/blocks/{id}
// @Summary Delete a block
// @Description Remove a placed block together with its configuration
// @Tags blocks
// @Security ApiKeyAuth
// @Param id path int true "Block ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /blocks/{id} [delete]
func (h *BlockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.intParam(r, "id")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid block id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "failed to delete block", zap.Int("block_id", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StudentView handles GET /api/v1/blocks/{id}/student_view
// @Summary Render learner view
// @Description Render the embedded lesson player with its scripts
// @Tags blocks
// @Produce json
// @Param id path int true "Block ID"
// @Param lang query string false "Locale override"
// @Success 200 {object} models.Fragment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /blocks/{id}/student_view [get]
func (h *BlockHandler) StudentView(w http.ResponseWriter, r *http.Request) {
	h.renderView(w, r, "student", h.service.StudentView)
}

// AuthorView handles GET /api/v1/blocks/{id}/author_view
// @Summary Render author preview
// @Description Render the static preview shown to course authors
// @Tags blocks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Block ID"
// @Param lang query string false "Locale override"
// @Success 200 {object} models.Fragment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /blocks/{id}/author_view [get]
func (h *BlockHandler) AuthorView(w http.ResponseWriter, r *http.Request) {
	h.renderView(w, r, "author", h.service.AuthorView)
}

// StudioView handles GET /api/v1/blocks/{id}/studio_view
// @Summary Render studio form
// @Description Render the configuration form for lesson ID, source URL and display name
// @Tags blocks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Block ID"
// @Param lang query string false "Locale override"
// @Success 200 {object} models.Fragment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /blocks/{id}/studio_view [get]
func (h *BlockHandler) StudioView(w http.ResponseWriter, r *http.Request) {
	h.renderView(w, r, "studio", h.service.StudioView)
}

// HandleJSON handles POST /api/v1/blocks/{id}/handler/{handler}
// @Summary Call a block handler
// @Description Relay a player event (on_exploration_loaded, on_state_transition, on_exploration_completed) or save the studio form (studio_submit, API key required)
// @Tags blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Block ID"
// @Param handler path string true "Handler name"
// @Param request body object true "Handler payload"
// @Success 200 {object} models.HandlerResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /blocks/{id}/handler/{handler} [post]
func (h *BlockHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := h.intParam(r, "id")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid block id")
		return
	}
	handler := chi.URLParam(r, "handler")

	if handler == block.HandlerStudioSubmit && !authmw.ValidAPIKey(r, h.apiKey) {
		h.respondError(w, http.StatusUnauthorized, "invalid or missing API key")
		return
	}

	// Numbers are kept as sent so relayed values and stored ids keep their precision
	var data map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if data == nil {
		data = map[string]any{}
	}

	result, err := h.service.HandleJSON(r.Context(), id, handler, data)
	if err != nil {
		h.handleServiceError(w, err, "failed to handle block call", zap.Int("block_id", id), zap.String("handler", handler))
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Scenarios handles GET /api/v1/scenarios
// @Summary List workbench scenarios
// @Description Canned block markup for a host test harness
// @Tags scenarios
// @Produce json
// @Success 200 {array} models.Scenario
// @Router /scenarios [get]
func (h *BlockHandler) Scenarios(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.Scenarios())
}

// ScenarioStudentView handles GET /api/v1/scenarios/{index}/student_view
// @Summary Render a workbench scenario
// @Description Render the learner view of a scenario without database storage
// @Tags scenarios
// @Produce json
// @Param index path int true "Scenario index"
// @Param lang query string false "Locale override"
// @Success 200 {object} models.Fragment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /scenarios/{index}/student_view [get]
func (h *BlockHandler) ScenarioStudentView(w http.ResponseWriter, r *http.Request) {
	index, ok := h.intParam(r, "index")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid scenario index")
		return
	}

	frag, err := h.service.ScenarioStudentView(r.Context(), index)
	if err != nil {
		h.handleServiceError(w, err, "failed to render scenario", zap.Int("index", index))
		return
	}

	h.respondJSON(w, http.StatusOK, frag)
}

// renderView parses the block ID and responds with the rendered fragment
func (h *BlockHandler) renderView(w http.ResponseWriter, r *http.Request, view string, render func(ctx context.Context, id int) (*models.Fragment, error)) {
	id, ok := h.intParam(r, "id")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid block id")
		return
	}

	frag, err := render(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "failed to render "+view+" view", zap.Int("block_id", id))
		return
	}

	h.respondJSON(w, http.StatusOK, frag)
}

// handleServiceError maps service errors to HTTP status codes
func (h *BlockHandler) handleServiceError(w http.ResponseWriter, err error, message string, fields ...zap.Field) {
	var missing *block.MissingFieldError
	switch {
	case errors.As(err, &missing):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, block.ErrUnknownHandler):
		h.respondError(w, http.StatusNotFound, err.Error())
	case strings.Contains(err.Error(), "not found"):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error(message, append(fields, zap.Error(err))...)
		h.respondError(w, http.StatusInternalServerError, message)
	}
}
