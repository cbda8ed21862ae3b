package service

import (
	"context"
	"errors"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/metrics"
	"github.com/crucial707/staybook/internal/models"
	"github.com/crucial707/staybook/internal/repo"
)

// ListingService enforces listing ownership.
type ListingService struct {
	Listings ListingStore
	Audit    AuditLogger
}

func NewListingService(listings ListingStore, audit AuditLogger) *ListingService {
	return &ListingService{Listings: listings, Audit: audit}
}

// Create stores l owned by ownerID. Any owner set on l is ignored.
func (s *ListingService) Create(ctx context.Context, ownerID int, l models.Listing) (*models.Listing, error) {
	if ownerID <= 0 {
		return nil, apperr.Unauthenticated("login required")
	}
	l.ID = 0
	l.Owner = ownerID
	l.Perks = models.UniquePerks(l.Perks)

	created, err := s.Listings.Create(ctx, l)
	if err != nil {
		return nil, err
	}
	metrics.IncListingsCreated()
	audit(ctx, s.Audit, ownerID, models.AuditActionCreate, models.ResourceListing, created.ID, created.Title)
	return created, nil
}

// Update merges patch into listing id on behalf of callerID. Only the owner
// may update; anyone else gets Forbidden and nothing is written.
func (s *ListingService) Update(ctx context.Context, callerID, id int, patch models.ListingPatch) (*models.Listing, error) {
	if callerID <= 0 {
		return nil, apperr.Unauthenticated("login required")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Owner != callerID {
		return nil, apperr.Forbidden("only the owner can edit this listing")
	}

	patch.Apply(current)
	updated, err := s.Listings.Update(ctx, *current)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.NotFound("listing not found")
	}
	if err != nil {
		return nil, err
	}
	audit(ctx, s.Audit, callerID, models.AuditActionUpdate, models.ResourceListing, updated.ID, "")
	return updated, nil
}

func (s *ListingService) Get(ctx context.Context, id int) (*models.Listing, error) {
	if id <= 0 {
		return nil, apperr.NotFound("listing not found")
	}
	l, err := s.Listings.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.NotFound("listing not found")
	}
	return l, err
}

func (s *ListingService) ListAll(ctx context.Context) ([]models.Listing, error) {
	return s.Listings.List(ctx)
}

func (s *ListingService) ListByOwner(ctx context.Context, ownerID int) ([]models.Listing, error) {
	if ownerID <= 0 {
		return nil, apperr.Unauthenticated("login required")
	}
	return s.Listings.ListByOwner(ctx, ownerID)
}
