package handlers

import (
	"net/http"

	"github.com/crucial707/staybook/internal/models"
	"github.com/crucial707/staybook/internal/service"
)

// ==========================
// Booking Handler
// ==========================
type BookingHandler struct {
	Bookings *service.BookingService
}

// The caller is always the booking's user; any "user" in the body is ignored.
type createBookingRequest struct {
	Listing  *int         `json:"listing" validate:"required,gt=0"`
	CheckIn  *models.Date `json:"checkIn" validate:"required"`
	CheckOut *models.Date `json:"checkOut" validate:"required"`
	Guests   *int         `json:"guests" validate:"required,gte=1"`
	Name     *string      `json:"name" validate:"required,min=1"`
	Phone    *string      `json:"phone" validate:"required,min=1"`
	Price    *float64     `json:"price" validate:"required,gte=0"`
}

func (in createBookingRequest) booking() models.Booking {
	return models.Booking{
		ListingID: *in.Listing,
		CheckIn:   *in.CheckIn,
		CheckOut:  *in.CheckOut,
		Guests:    *in.Guests,
		Name:      *in.Name,
		Phone:     *in.Phone,
		Price:     *in.Price,
	}
}

// ==========================
// Create Booking
// ==========================
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) error {
	userID, err := identity(r)
	if err != nil {
		return err
	}
	var in createBookingRequest
	if err := decode(r, &in); err != nil {
		return err
	}
	created, err := h.Bookings.Create(r.Context(), userID, in.booking())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, created)
	return nil
}

// Mine lists the caller's bookings, each joined with its listing.
func (h *BookingHandler) Mine(w http.ResponseWriter, r *http.Request) error {
	userID, err := identity(r)
	if err != nil {
		return err
	}
	bookings, err := h.Bookings.ListByUser(r.Context(), userID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, bookings)
	return nil
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}
	b, err := h.Bookings.Get(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, b)
	return nil
}
