package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader carries the host platform's service key
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware validates API key from X-API-Key header
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ValidAPIKey(r, apiKey) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid or missing API key"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ValidAPIKey reports whether the request carries the configured API key
func ValidAPIKey(r *http.Request, apiKey string) bool {
	provided := r.Header.Get(APIKeyHeader)
	if provided == "" || apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) == 1
}
