package service

import (
	"context"
	"errors"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/metrics"
	"github.com/crucial707/staybook/internal/models"
	"github.com/crucial707/staybook/internal/repo"
)

// BookingService creates and reads bookings.
type BookingService struct {
	Bookings BookingStore
	Listings ListingStore
	Audit    AuditLogger
}

func NewBookingService(bookings BookingStore, listings ListingStore, audit AuditLogger) *BookingService {
	return &BookingService{Bookings: bookings, Listings: listings, Audit: audit}
}

func unknownListing() error {
	return apperr.Validation("validation failed", map[string]string{"listing": "does not exist"})
}

// Create books b.ListingID for userID. The booking's user is always userID.
// Dates and guest count are stored as given; availability is not checked.
func (s *BookingService) Create(ctx context.Context, userID int, b models.Booking) (*models.Booking, error) {
	if userID <= 0 {
		return nil, apperr.Unauthenticated("login required")
	}
	exists, err := s.Listings.Exists(ctx, b.ListingID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, unknownListing()
	}

	b.ID = 0
	b.User = userID
	b.Listing = nil
	created, err := s.Bookings.Create(ctx, b)
	if errors.Is(err, repo.ErrMissingReference) {
		// listing vanished between the check and the insert
		return nil, unknownListing()
	}
	if err != nil {
		return nil, err
	}
	metrics.IncBookingsCreated()
	audit(ctx, s.Audit, userID, models.AuditActionCreate, models.ResourceBooking, created.ID, "")
	return created, nil
}

func (s *BookingService) Get(ctx context.Context, id int) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.NotFound("booking not found")
	}
	return b, err
}

func (s *BookingService) ListByUser(ctx context.Context, userID int) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, apperr.Unauthenticated("login required")
	}
	return s.Bookings.ListByUser(ctx, userID)
}
