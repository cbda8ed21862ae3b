package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	apiCSP    = "default-src 'none'; frame-ancestors 'none'"
	uploadCSP = "default-src 'none'; img-src 'self'; sandbox"
)

// CORSOptions configures which browser origins may call the API with the token cookie.
type CORSOptions struct {
	Origins []string
	Methods []string
	Headers []string
	MaxAge  time.Duration
}

// DefaultCORSOptions returns options for origins covering every route the API serves.
func DefaultCORSOptions(origins []string) CORSOptions {
	return CORSOptions{
		Origins: origins,
		Methods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		Headers: []string{"Accept", "Content-Type"},
		MaxAge:  24 * time.Hour,
	}
}

// CORS answers preflight requests and marks responses to allowed origins as
// credentialed. Requests from other origins pass through without CORS headers.
// With no origins configured it returns next unchanged.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	if len(opts.Origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	allowed := make(map[string]struct{}, len(opts.Origins))
	for _, o := range opts.Origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	methods := strings.Join(opts.Methods, ", ")
	headers := strings.Join(opts.Headers, ", ")
	maxAge := strconv.Itoa(int(opts.MaxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				if r.Method == http.MethodOptions {
					h.Set("Access-Control-Allow-Methods", methods)
					h.Set("Access-Control-Allow-Headers", headers)
					h.Set("Access-Control-Max-Age", maxAge)
				}
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders sets hardening headers on every response. Stored photos under
// /uploads/ get a policy that still lets browsers render them as images from
// another origin. hsts adds Strict-Transport-Security.
func SecurityHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			if strings.HasPrefix(r.URL.Path, "/uploads/") {
				h.Set("Content-Security-Policy", uploadCSP)
				h.Set("Cross-Origin-Resource-Policy", "cross-origin")
			} else {
				h.Set("Content-Security-Policy", apiCSP)
				h.Set("X-Frame-Options", "DENY")
				h.Set("Cross-Origin-Resource-Policy", "same-site")
			}
			if hsts {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
