package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/staybook/internal/models"
	"github.com/lib/pq"
	"github.com/samber/oops"
)

// BookingRepo persists bookings. Reads join the booked listing.
type BookingRepo struct {
	DB *sql.DB
}

// NewBookingRepo returns a new BookingRepo.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{DB: db}
}

const bookingJoinQuery = `
	SELECT b.id, b.listing_id, b.user_id, b.check_in, b.check_out, b.guests, b.name, b.phone, b.price,
	       l.id, l.owner_id, l.title, l.address, l.photos, l.description, l.perks,
	       l.extra_info, l.check_in, l.check_out, l.max_guests, l.price
	FROM bookings b
	JOIN listings l ON l.id = b.listing_id
`

func scanJoinedBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	l := &models.Listing{}
	err := row.Scan(
		&b.ID, &b.ListingID, &b.User, &b.CheckIn.Time, &b.CheckOut.Time, &b.Guests, &b.Name, &b.Phone, &b.Price,
		&l.ID, &l.Owner, &l.Title, &l.Address, pq.Array(&l.Photos), &l.Description, pq.Array(&l.Perks),
		&l.ExtraInfo, &l.CheckIn, &l.CheckOut, &l.MaxGuests, &l.Price,
	)
	b.Listing = l
	return b, err
}

// Create inserts a booking and returns it with id set. The listing is not joined.
func (r *BookingRepo) Create(ctx context.Context, b models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (listing_id, user_id, check_in, check_out, guests, name, phone, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		b.ListingID, b.User, b.CheckIn.Time, b.CheckOut.Time, b.Guests, b.Name, b.Phone, b.Price,
	).Scan(&b.ID)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return nil, oops.With("listing_id", b.ListingID).Wrap(ErrMissingReference)
		}
		return nil, oops.With("operation", "create booking").With("user_id", b.User).Wrap(err)
	}
	return &b, nil
}

// GetByID returns one booking with its listing.
func (r *BookingRepo) GetByID(ctx context.Context, id int) (*models.Booking, error) {
	b, err := scanJoinedBooking(r.DB.QueryRowContext(ctx, bookingJoinQuery+` WHERE b.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("booking_id", id).Wrap(ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get booking").With("booking_id", id).Wrap(err)
	}
	return &b, nil
}

// ListByUser returns the bookings made by userID, oldest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID int) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, bookingJoinQuery+` WHERE b.user_id = $1 ORDER BY b.id`, userID)
	if err != nil {
		return nil, oops.With("operation", "list bookings").With("user_id", userID).Wrap(err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanJoinedBooking(rows)
		if err != nil {
			return nil, oops.With("operation", "scan booking").Wrap(err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
