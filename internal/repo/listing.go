package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/staybook/internal/models"
	"github.com/lib/pq"
	"github.com/samber/oops"
)

// ========================
// REPOSITORY STRUCT
// ========================

type ListingRepo struct {
	DB *sql.DB
}

func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{DB: db}
}

const listingColumns = `id, owner_id, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner, l *models.Listing) error {
	return row.Scan(
		&l.ID,
		&l.Owner,
		&l.Title,
		&l.Address,
		pq.Array(&l.Photos),
		&l.Description,
		pq.Array(&l.Perks),
		&l.ExtraInfo,
		&l.CheckIn,
		&l.CheckOut,
		&l.MaxGuests,
		&l.Price,
	)
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ========================
// CREATE LISTING
// ========================

func (r *ListingRepo) Create(ctx context.Context, l models.Listing) (*models.Listing, error) {
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO listings (owner_id, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+listingColumns,
		l.Owner, l.Title, l.Address, pq.Array(nonNil(l.Photos)), l.Description, pq.Array(nonNil(l.Perks)),
		l.ExtraInfo, l.CheckIn, l.CheckOut, l.MaxGuests, l.Price,
	)
	out := &models.Listing{}
	if err := scanListing(row, out); err != nil {
		return nil, oops.With("operation", "create listing").With("owner_id", l.Owner).Wrap(err)
	}
	return out, nil
}

// ========================
// GET LISTING BY ID
// ========================

func (r *ListingRepo) GetByID(ctx context.Context, id int) (*models.Listing, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	l := &models.Listing{}
	err := scanListing(row, l)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("listing_id", id).Wrap(ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get listing").With("listing_id", id).Wrap(err)
	}
	return l, nil
}

// ========================
// LISTING EXISTS
// ========================

func (r *ListingRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, oops.With("operation", "check listing").With("listing_id", id).Wrap(err)
	}
	return exists, nil
}

// ========================
// UPDATE LISTING
// ========================

// Update overwrites every mutable column of l.ID. The owner never changes.
func (r *ListingRepo) Update(ctx context.Context, l models.Listing) (*models.Listing, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE listings
		 SET title = $1, address = $2, photos = $3, description = $4, perks = $5,
		     extra_info = $6, check_in = $7, check_out = $8, max_guests = $9, price = $10
		 WHERE id = $11
		 RETURNING `+listingColumns,
		l.Title, l.Address, pq.Array(nonNil(l.Photos)), l.Description, pq.Array(nonNil(l.Perks)),
		l.ExtraInfo, l.CheckIn, l.CheckOut, l.MaxGuests, l.Price, l.ID,
	)
	out := &models.Listing{}
	err := scanListing(row, out)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("listing_id", l.ID).Wrap(ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "update listing").With("listing_id", l.ID).Wrap(err)
	}
	return out, nil
}

// ========================
// LIST ALL LISTINGS
// ========================

func (r *ListingRepo) List(ctx context.Context) ([]models.Listing, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM listings ORDER BY id`)
	if err != nil {
		return nil, oops.With("operation", "list listings").Wrap(err)
	}
	return collectListings(rows)
}

// ========================
// LIST LISTINGS BY OWNER
// ========================

func (r *ListingRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.Listing, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, oops.With("operation", "list owner listings").With("owner_id", ownerID).Wrap(err)
	}
	return collectListings(rows)
}

func collectListings(rows *sql.Rows) ([]models.Listing, error) {
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, oops.With("operation", "scan listing").Wrap(err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
