package middlewares

import (
	"net/http"
)

// RequestSizeLimitMiddleware caps handler payloads at limit bytes.
// Bodies with a declared length above the limit are rejected before the handler runs;
// streamed bodies fail on read once they cross it.
func RequestSizeLimitMiddleware(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > limit {
				writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
