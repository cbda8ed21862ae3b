package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type accessKey struct{}

// accessEntry is filled in while the request travels down the chain; Require
// records the caller there because the identity context never flows back up.
type accessEntry struct {
	userID int
}

// statusRecorder captures what the handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// RequestLog writes one access log line per request. 5xx responses are logged at
// error level. Mount after chi's RequestID.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := &accessEntry{}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		r = r.WithContext(context.WithValue(r.Context(), accessKey{}, entry))

		next.ServeHTTP(rec, r)

		attrs := []slog.Attr{
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			slog.Int("bytes", rec.bytes),
		}
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			attrs = append(attrs, slog.String("route", rc.RoutePattern()))
		}
		if entry.userID != 0 {
			attrs = append(attrs, slog.Int("user_id", entry.userID))
		}
		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.LogAttrs(r.Context(), level, "request", attrs...)
	})
}

func noteUser(ctx context.Context, userID int) {
	if e, ok := ctx.Value(accessKey{}).(*accessEntry); ok {
		e.userID = userID
	}
}

// notedUser returns the user id Require recorded for this request, or 0.
func notedUser(ctx context.Context) int {
	if e, ok := ctx.Value(accessKey{}).(*accessEntry); ok {
		return e.userID
	}
	return 0
}
