package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	authmw "github.com/japanesestudent/embed-service/internal/auth/middleware"
	"github.com/japanesestudent/embed-service/internal/block"
	"github.com/japanesestudent/embed-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "host-key"

// mockBlockService is a mock implementation of BlockService
type mockBlockService struct {
	created      *models.LessonEmbedBlock
	fragment     *models.Fragment
	result       models.HandlerResult
	err          error
	lastReq      *models.CreateBlockRequest
	lastID       int
	lastHandler  string
	lastData     map[string]any
	lastUserID   int
	lastUserOK   bool
	handleCalled bool
}

func (m *mockBlockService) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.LessonEmbedBlock, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.created, nil
}

func (m *mockBlockService) Delete(ctx context.Context, id int) error {
	m.lastID = id
	return m.err
}

func (m *mockBlockService) view(id int) (*models.Fragment, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.fragment, nil
}

func (m *mockBlockService) StudentView(ctx context.Context, id int) (*models.Fragment, error) {
	return m.view(id)
}

func (m *mockBlockService) AuthorView(ctx context.Context, id int) (*models.Fragment, error) {
	return m.view(id)
}

func (m *mockBlockService) StudioView(ctx context.Context, id int) (*models.Fragment, error) {
	return m.view(id)
}

func (m *mockBlockService) HandleJSON(ctx context.Context, id int, handler string, data map[string]any) (models.HandlerResult, error) {
	m.handleCalled = true
	m.lastID = id
	m.lastHandler = handler
	m.lastData = data
	m.lastUserID, m.lastUserOK = authmw.GetUserID(ctx)
	if m.err != nil {
		return models.HandlerResult{}, m.err
	}
	return m.result, nil
}

func (m *mockBlockService) Scenarios() []models.Scenario {
	return block.WorkbenchScenarios(models.DefaultSourceURL)
}

func (m *mockBlockService) ScenarioStudentView(ctx context.Context, index int) (*models.Fragment, error) {
	return m.view(index)
}

type stubTokens struct{}

func (stubTokens) ValidateAccessToken(token string) (int, error) {
	if token == "good" {
		return 77, nil
	}
	return 0, errors.New("invalid token")
}

func setupBlockRouter(svc BlockService) chi.Router {
	r := chi.NewRouter()
	NewBlockHandler(svc, testAPIKey, stubTokens{}, zap.NewNop()).RegisterRoutes(r)
	return r
}

func testFragment() *models.Fragment {
	frag := models.NewFragment(`<lesson-embed lesson-id="abc"></lesson-embed>`)
	frag.AddJavaScript("var i18n = {};")
	frag.InitializeJS(block.InitStudent)
	return frag
}

func TestBlockHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		apiKey         string
		serviceErr     error
		expectedStatus int
		expectedReq    *models.CreateBlockRequest
	}{
		{
			name:           "empty body",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusCreated,
			expectedReq:    &models.CreateBlockRequest{},
		},
		{
			name:           "with fields",
			body:           `{"lesson_id":"xyz","display_name":"Algebra"}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusCreated,
			expectedReq:    &models.CreateBlockRequest{LessonID: "xyz", DisplayName: "Algebra"},
		},
		{
			name:           "invalid body",
			body:           `{`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing api key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "service error",
			apiKey:         testAPIKey,
			serviceErr:     errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedReq:    &models.CreateBlockRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBlockService{
				created: &models.LessonEmbedBlock{ID: 1, Config: models.DefaultBlockConfig()},
				err:     tt.serviceErr,
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/blocks", strings.NewReader(tt.body))
			if tt.apiKey != "" {
				req.Header.Set(authmw.APIKeyHeader, tt.apiKey)
			}
			w := httptest.NewRecorder()

			setupBlockRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedReq, svc.lastReq)
			if tt.expectedStatus == http.StatusCreated {
				var created models.LessonEmbedBlock
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
				assert.Equal(t, 1, created.ID)
			}
		})
	}
}

func TestBlockHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", path: "/api/v1/blocks/3", expectedStatus: http.StatusNoContent},
		{name: "not found", path: "/api/v1/blocks/3", serviceErr: errors.New("lesson embed block not found"), expectedStatus: http.StatusNotFound},
		{name: "invalid id", path: "/api/v1/blocks/abc", expectedStatus: http.StatusBadRequest},
		{name: "service error", path: "/api/v1/blocks/3", serviceErr: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBlockService{err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			req.Header.Set(authmw.APIKeyHeader, testAPIKey)
			w := httptest.NewRecorder()

			setupBlockRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestBlockHandler_Views(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		apiKey         string
		serviceErr     error
		expectedStatus int
	}{
		{name: "student view is public", path: "/api/v1/blocks/1/student_view", expectedStatus: http.StatusOK},
		{name: "author view", path: "/api/v1/blocks/1/author_view", apiKey: testAPIKey, expectedStatus: http.StatusOK},
		{name: "studio view", path: "/api/v1/blocks/1/studio_view", apiKey: testAPIKey, expectedStatus: http.StatusOK},
		{name: "author view requires api key", path: "/api/v1/blocks/1/author_view", expectedStatus: http.StatusUnauthorized},
		{name: "studio view requires api key", path: "/api/v1/blocks/1/studio_view", expectedStatus: http.StatusUnauthorized},
		{name: "missing block", path: "/api/v1/blocks/9/student_view", serviceErr: errors.New("lesson embed block not found"), expectedStatus: http.StatusNotFound},
		{name: "render error", path: "/api/v1/blocks/1/student_view", serviceErr: errors.New("failed to execute template"), expectedStatus: http.StatusInternalServerError},
		{name: "invalid id", path: "/api/v1/blocks/x/student_view", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBlockService{fragment: testFragment(), err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set(authmw.APIKeyHeader, tt.apiKey)
			}
			w := httptest.NewRecorder()

			setupBlockRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{
					"content": "<lesson-embed lesson-id=\"abc\"></lesson-embed>",
					"resources": [{"kind": "javascript", "data": "var i18n = {};"}],
					"js_init_fn": "LessonEmbedBlock"
				}`, w.Body.String())
			}
		})
	}
}

func TestBlockHandler_HandleJSON(t *testing.T) {
	tests := []struct {
		name           string
		handler        string
		body           string
		apiKey         string
		bearer         string
		serviceErr     error
		expectedStatus int
		expectCalled   bool
		expectedUserID int
	}{
		{
			name:           "relay anonymous",
			handler:        block.HandlerExplorationLoaded,
			body:           `{"explorationVersion": 2}`,
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "relay with learner token",
			handler:        block.HandlerExplorationCompleted,
			body:           `{"explorationVersion": 2}`,
			bearer:         "good",
			expectedStatus: http.StatusOK,
			expectCalled:   true,
			expectedUserID: 77,
		},
		{
			name:           "invalid token proceeds anonymously",
			handler:        block.HandlerExplorationCompleted,
			body:           `{"explorationVersion": 2}`,
			bearer:         "bad",
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "missing field",
			handler:        block.HandlerStateTransition,
			body:           `{"explorationVersion": 2}`,
			serviceErr:     &block.MissingFieldError{Field: "oldStateName"},
			expectedStatus: http.StatusBadRequest,
			expectCalled:   true,
		},
		{
			name:           "unknown handler",
			handler:        "on_magic",
			body:           `{}`,
			serviceErr:     fmt.Errorf("%w: on_magic", block.ErrUnknownHandler),
			expectedStatus: http.StatusNotFound,
			expectCalled:   true,
		},
		{
			name:           "publish failure",
			handler:        block.HandlerExplorationLoaded,
			body:           `{"explorationVersion": 2}`,
			serviceErr:     errors.New("failed to publish lesson.exploration.loaded: redis down"),
			expectedStatus: http.StatusInternalServerError,
			expectCalled:   true,
		},
		{
			name:           "studio submit with api key",
			handler:        block.HandlerStudioSubmit,
			body:           `{"lesson_id": "n", "src": "https://x.example.org", "display_name": "New"}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "studio submit without api key",
			handler:        block.HandlerStudioSubmit,
			body:           `{"lesson_id": "n"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid body",
			handler:        block.HandlerExplorationLoaded,
			body:           `[`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBlockService{result: models.ResultSuccess, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/blocks/5/handler/"+tt.handler, strings.NewReader(tt.body))
			if tt.apiKey != "" {
				req.Header.Set(authmw.APIKeyHeader, tt.apiKey)
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()

			setupBlockRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectCalled, svc.handleCalled)
			if !tt.expectCalled {
				return
			}
			assert.Equal(t, 5, svc.lastID)
			assert.Equal(t, tt.handler, svc.lastHandler)
			assert.Equal(t, tt.expectedUserID, svc.lastUserID)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"result":"success"}`, w.Body.String())
			}
		})
	}
}

func TestBlockHandler_HandleJSON_PreservesNumbers(t *testing.T) {
	tests := []struct {
		name     string
		handler  string
		body     string
		apiKey   string
		key      string
		expected json.Number
	}{
		{
			name:     "large exploration version",
			handler:  block.HandlerExplorationLoaded,
			body:     `{"explorationVersion": 9007199254740993}`,
			key:      "explorationVersion",
			expected: json.Number("9007199254740993"),
		},
		{
			name:     "integer lesson id",
			handler:  block.HandlerStudioSubmit,
			body:     `{"lesson_id": 1000000, "src": "https://x.example.org", "display_name": "New"}`,
			apiKey:   testAPIKey,
			key:      "lesson_id",
			expected: json.Number("1000000"),
		},
		{
			name:     "lesson id beyond int64",
			handler:  block.HandlerStudioSubmit,
			body:     `{"lesson_id": 12345678901234567890}`,
			apiKey:   testAPIKey,
			key:      "lesson_id",
			expected: json.Number("12345678901234567890"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBlockService{result: models.ResultSuccess}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/blocks/5/handler/"+tt.handler, strings.NewReader(tt.body))
			if tt.apiKey != "" {
				req.Header.Set(authmw.APIKeyHeader, tt.apiKey)
			}
			w := httptest.NewRecorder()

			setupBlockRouter(svc).ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expected, svc.lastData[tt.key])
		})
	}
}

func TestBlockHandler_Scenarios(t *testing.T) {
	svc := &mockBlockService{fragment: testFragment()}
	router := setupBlockRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scenarios", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var scenarios []models.Scenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scenarios))
	require.Len(t, scenarios, 1)
	assert.Equal(t, "Lesson Embedding", scenarios[0].Title)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/0/student_view", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.lastID)

	svc.err = errors.New("scenario 3 not found")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/3/student_view", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
