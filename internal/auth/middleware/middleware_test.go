package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockValidator struct {
	userID int
	err    error
}

func (m *mockValidator) ValidateAccessToken(token string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.userID, nil
}

func TestAPIKeyMiddleware(t *testing.T) {
	handler := APIKeyMiddleware("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name           string
		key            string
		expectedStatus int
	}{
		{name: "valid key", key: "secret", expectedStatus: http.StatusOK},
		{name: "wrong key", key: "guess", expectedStatus: http.StatusUnauthorized},
		{name: "missing key", key: "", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestValidAPIKey_EmptyConfiguredKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(APIKeyHeader, "")

	assert.False(t, ValidAPIKey(req, ""))
}

func TestOptionalAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		validator  TokenValidator
		header     string
		cookie     string
		expectedID int
		expectedOK bool
	}{
		{name: "bearer header", validator: &mockValidator{userID: 5}, header: "Bearer tok", expectedID: 5, expectedOK: true},
		{name: "cookie", validator: &mockValidator{userID: 6}, cookie: "tok", expectedID: 6, expectedOK: true},
		{name: "no token", validator: &mockValidator{userID: 5}},
		{name: "invalid token proceeds anonymously", validator: &mockValidator{err: errors.New("expired")}, header: "Bearer tok"},
		{name: "malformed header", validator: &mockValidator{userID: 5}, header: "Token tok"},
		{name: "no validator", validator: nil, header: "Bearer tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotID int
				gotOK bool
				hit   bool
			)
			handler := OptionalAuthMiddleware(tt.validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hit = true
				gotID, gotOK = GetUserID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.True(t, hit)
			assert.Equal(t, tt.expectedOK, gotOK)
			assert.Equal(t, tt.expectedID, gotID)
		})
	}
}
