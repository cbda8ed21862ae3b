package handlers

import (
	"net/http"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/middleware"
	"github.com/crucial707/staybook/internal/models"
	"github.com/crucial707/staybook/internal/service"
)

// ==========================
// Listing Handler
// ==========================
type ListingHandler struct {
	Listings *service.ListingService
}

// Pointer fields let zero values (check-in at hour 0, price 0) count as provided.
// Strings marked min=1 must also be non-empty.
type createListingRequest struct {
	Title       *string  `json:"title" validate:"required,min=1"`
	Address     *string  `json:"address" validate:"required"`
	AddedPhotos []string `json:"addedPhotos" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Perks       []string `json:"perks" validate:"required"`
	ExtraInfo   *string  `json:"extraInfo" validate:"required"`
	CheckIn     *float64 `json:"checkIn" validate:"required"`
	CheckOut    *float64 `json:"checkOut" validate:"required"`
	MaxGuests   *int     `json:"maxGuests" validate:"required,gte=1"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

type updateListingRequest struct {
	ID          *int     `json:"id" validate:"required,gt=0"`
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Address     *string  `json:"address"`
	AddedPhotos []string `json:"addedPhotos"`
	Description *string  `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   *string  `json:"extraInfo"`
	CheckIn     *float64 `json:"checkIn"`
	CheckOut    *float64 `json:"checkOut"`
	MaxGuests   *int     `json:"maxGuests" validate:"omitempty,gte=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (in createListingRequest) listing() models.Listing {
	return models.Listing{
		Title:       *in.Title,
		Address:     *in.Address,
		Photos:      in.AddedPhotos,
		Description: *in.Description,
		Perks:       in.Perks,
		ExtraInfo:   *in.ExtraInfo,
		CheckIn:     *in.CheckIn,
		CheckOut:    *in.CheckOut,
		MaxGuests:   *in.MaxGuests,
		Price:       *in.Price,
	}
}

func (in updateListingRequest) patch() models.ListingPatch {
	return models.ListingPatch{
		Title:       in.Title,
		Address:     in.Address,
		Photos:      in.AddedPhotos,
		Description: in.Description,
		Perks:       in.Perks,
		ExtraInfo:   in.ExtraInfo,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		MaxGuests:   in.MaxGuests,
		Price:       in.Price,
	}
}

// identity returns the caller stored by the auth guard.
func identity(r *http.Request) (int, error) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return 0, apperr.Unauthenticated("token missing")
	}
	return id.ID, nil
}

// ==========================
// Create Listing
// ==========================
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) error {
	userID, err := identity(r)
	if err != nil {
		return err
	}
	var in createListingRequest
	if err := decode(r, &in); err != nil {
		return err
	}
	created, err := h.Listings.Create(r.Context(), userID, in.listing())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, created)
	return nil
}

// ==========================
// Update Listing (owner only)
// ==========================
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) error {
	userID, err := identity(r)
	if err != nil {
		return err
	}
	var in updateListingRequest
	if err := decode(r, &in); err != nil {
		return err
	}
	updated, err := h.Listings.Update(r.Context(), userID, *in.ID, in.patch())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, updated)
	return nil
}

// ==========================
// List / Get
// ==========================
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) error {
	listings, err := h.Listings.ListAll(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, listings)
	return nil
}

// Mine lists the caller's own listings.
func (h *ListingHandler) Mine(w http.ResponseWriter, r *http.Request) error {
	userID, err := identity(r)
	if err != nil {
		return err
	}
	listings, err := h.Listings.ListByOwner(r.Context(), userID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, listings)
	return nil
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}
	l, err := h.Listings.Get(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, l)
	return nil
}
