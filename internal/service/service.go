// Package service holds the authorization and consistency rules that sit
// between the HTTP handlers and the repositories: who may change a listing,
// what a booking must reference, and how credentials are checked.
package service

import (
	"context"
	"log/slog"

	"github.com/crucial707/staybook/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type ListingStore interface {
	Create(ctx context.Context, l models.Listing) (*models.Listing, error)
	GetByID(ctx context.Context, id int) (*models.Listing, error)
	Exists(ctx context.Context, id int) (bool, error)
	Update(ctx context.Context, l models.Listing) (*models.Listing, error)
	List(ctx context.Context) ([]models.Listing, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Listing, error)
}

type BookingStore interface {
	Create(ctx context.Context, b models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, id int) (*models.Booking, error)
	ListByUser(ctx context.Context, userID int) ([]models.Booking, error)
}

// AuditLogger records who changed what. Implemented by repo.AuditRepo.
type AuditLogger interface {
	Log(ctx context.Context, userID int, action, resourceType string, resourceID int, details string) error
}

// audit writes an audit entry when a logger is configured. Failures are logged, not returned.
func audit(ctx context.Context, a AuditLogger, userID int, action, resourceType string, resourceID int, details string) {
	if a == nil {
		return
	}
	if err := a.Log(ctx, userID, action, resourceType, resourceID, details); err != nil {
		slog.Warn("audit log write failed",
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
			"error", err)
	}
}
