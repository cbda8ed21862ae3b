package middleware

import (
	"net/http"
)

// DefaultBodyLimit caps JSON request bodies.
const DefaultBodyLimit = 1 << 20

// BodyLimit rejects requests whose declared Content-Length exceeds limit with a
// JSON 413 and caps the body reader for the rest, so chunked bodies fail on read.
// limit <= 0 uses DefaultBodyLimit.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
