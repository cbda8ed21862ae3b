package handlers

import (
	"net/http"
	"time"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/middleware"
	"github.com/crucial707/staybook/internal/service"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Auth  *service.AuthService
	Guard *middleware.Guard
	// CookieSecure marks the token cookie Secure and SameSite=None for cross-site frontends.
	CookieSecure bool
	TokenTTL     time.Duration
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var in registerRequest
	if err := decode(r, &in); err != nil {
		return err
	}
	user, err := h.Auth.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, user)
	return nil
}

// ==========================
// Login (sets the token cookie)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var in loginRequest
	if err := decode(r, &in); err != nil {
		return err
	}
	user, token, err := h.Auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		return err
	}
	http.SetCookie(w, h.cookie(token))
	writeJSON(w, http.StatusOK, user)
	return nil
}

// ==========================
// Logout (clears the token cookie)
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	c := h.cookie("")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
	writeJSON(w, http.StatusOK, true)
	return nil
}

// ==========================
// Profile (null when anonymous)
// ==========================
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) error {
	id, err := h.Guard.ResolveIdentity(r)
	if apperr.Is(err, apperr.KindUnauthenticated) {
		writeJSON(w, http.StatusOK, nil)
		return nil
	}
	if err != nil {
		return err
	}
	profile, err := h.Auth.Profile(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, profile)
	return nil
}

func (h *AuthHandler) cookie(value string) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.CookieSecure {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	if value != "" && h.TokenTTL > 0 {
		c.MaxAge = int(h.TokenTTL.Seconds())
	}
	return c
}
