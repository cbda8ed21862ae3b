package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/models"
	"github.com/crucial707/staybook/internal/repo"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityLister reads a user's audit trail. Implemented by repo.AuditRepo.
type ActivityLister interface {
	ListByUser(ctx context.Context, f repo.ActivityFilter) ([]models.AuditEntry, error)
}

// ActivityHandler serves the caller's own audit entries.
type ActivityHandler struct {
	Audit ActivityLister
}

// List returns the caller's recent changes.
// Query: resource (listing|booking), limit (1..200, default 50), offset (default 0).
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) error {
	userID, err := identity(r)
	if err != nil {
		return err
	}
	f, err := activityFilter(r)
	if err != nil {
		return err
	}
	f.UserID = userID

	entries, err := h.Audit.ListByUser(r.Context(), f)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
	return nil
}

func activityFilter(r *http.Request) (repo.ActivityFilter, error) {
	q := r.URL.Query()
	f := repo.ActivityFilter{Limit: defaultActivityLimit}
	fields := map[string]string{}

	switch res := q.Get("resource"); res {
	case "", models.ResourceListing, models.ResourceBooking:
		f.ResourceType = res
	default:
		fields["resource"] = "must be listing or booking"
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxActivityLimit {
			fields["limit"] = "must be between 1 and " + strconv.Itoa(maxActivityLimit)
		} else {
			f.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields["offset"] = "must be a non-negative integer"
		} else {
			f.Offset = n
		}
	}
	if len(fields) > 0 {
		return f, apperr.Validation("validation failed", fields)
	}
	return f, nil
}
