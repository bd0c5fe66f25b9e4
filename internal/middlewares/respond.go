package middlewares

import (
	"encoding/json"
	"net/http"
)

// writeError sends an error JSON response tagged with the request ID
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	body := map[string]string{"error": message}
	if id := GetRequestID(r.Context()); id != "" {
		body["request_id"] = id
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
