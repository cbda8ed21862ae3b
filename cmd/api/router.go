package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/staybook/internal/auth"
	"github.com/crucial707/staybook/internal/config"
	"github.com/crucial707/staybook/internal/handlers"
	"github.com/crucial707/staybook/internal/middleware"
	"github.com/crucial707/staybook/internal/repo"
	"github.com/crucial707/staybook/internal/service"
	"github.com/crucial707/staybook/internal/uploads"
)

// newRouter wires repositories, services and handlers onto a chi router.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	// ===== Repositories =====
	userRepo := repo.NewUserRepo(db)
	listingRepo := repo.NewListingRepo(db)
	bookingRepo := repo.NewBookingRepo(db)
	auditRepo := repo.NewAuditRepo(db)

	// ===== Services =====
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL())
	guard := middleware.NewGuard(tokens)
	authSvc := service.NewAuthService(userRepo, auth.NewPasswordHasher(cfg.BcryptCost), tokens)
	listingSvc := service.NewListingService(listingRepo, auditRepo)
	bookingSvc := service.NewBookingService(bookingRepo, listingRepo, auditRepo)
	store := uploads.NewStore(cfg.UploadDir, cfg.UploadMaxBytes, cfg.UploadFetchTimeout)

	// ===== Handlers =====
	authHandler := &handlers.AuthHandler{
		Auth:         authSvc,
		Guard:        guard,
		CookieSecure: cfg.CookieSecure,
		TokenTTL:     cfg.TokenTTL(),
	}
	listingHandler := &handlers.ListingHandler{Listings: listingSvc}
	bookingHandler := &handlers.BookingHandler{Bookings: bookingSvc}
	uploadHandler := &handlers.UploadHandler{Store: store, MaxFiles: cfg.UploadMaxFiles}
	activityHandler := &handlers.ActivityHandler{Audit: auditRepo}

	requireAuth := guard.Require(handlers.WriteError)
	h := handlers.Wrap

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.CookieSecure))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(cfg.CORSAllowedOrigins)))

	// A known path with the wrong method is reported like an unknown path.
	pageNotFound := func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "Page not found", http.StatusNotFound)
	}
	r.NotFound(pageNotFound)
	r.MethodNotAllowed(pageNotFound)

	// ===== Probes =====
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// ===== Static uploads =====
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// ===== Multipart upload (own body limit) =====
	r.With(middleware.BodyLimit(uploadBodyLimit(cfg))).Post("/uploadfromdevice", h(uploadHandler.FromDevice))

	// ===== JSON API =====
	r.Group(func(r chi.Router) {
		r.Use(middleware.BodyLimit(middleware.DefaultBodyLimit))

		r.Post("/register", h(authHandler.Register))
		r.Post("/login", h(authHandler.Login))
		r.Post("/logout", h(authHandler.Logout))
		r.Get("/profile", h(authHandler.Profile))

		r.Get("/listings", h(listingHandler.List))
		r.Get("/listings/{id}", h(listingHandler.Get))
		r.Get("/userlistings/{id}", h(listingHandler.Get))
		r.Get("/booking/{id}", h(bookingHandler.Get))
		r.Post("/uploadbylink", h(uploadHandler.ByLink))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/listings", h(listingHandler.Create))
			r.Put("/listings", h(listingHandler.Update))
			r.Get("/userlistings", h(listingHandler.Mine))
			r.Get("/booking", h(bookingHandler.Mine))
			r.Post("/booking", h(bookingHandler.Create))
			r.Get("/activity", h(activityHandler.List))
		})
	})

	return r
}

// uploadBodyLimit allows a full batch of maximum-size files plus form overhead.
func uploadBodyLimit(cfg config.Config) int64 {
	files := int64(cfg.UploadMaxFiles)
	if files <= 0 {
		files = 1
	}
	perFile := cfg.UploadMaxBytes
	if perFile <= 0 {
		perFile = 10 << 20
	}
	return files*perFile + middleware.DefaultBodyLimit
}
