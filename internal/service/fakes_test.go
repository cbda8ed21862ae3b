package service

import (
	"context"
	"sync"

	"github.com/crucial707/staybook/internal/models"
	"github.com/crucial707/staybook/internal/repo"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, name, email, hash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return nil, repo.ErrDuplicateEmail
		}
	}
	f.nextID++
	u := models.User{ID: f.nextID, Name: name, Email: email, PasswordHash: hash}
	f.byID[u.ID] = u
	return &u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakeListings struct {
	mu      sync.Mutex
	nextID  int
	rows    map[int]models.Listing
	updates int
}

func newFakeListings() *fakeListings {
	return &fakeListings{rows: map[int]models.Listing{}}
}

func (f *fakeListings) Create(_ context.Context, l models.Listing) (*models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	l.ID = f.nextID
	f.rows[l.ID] = l
	return &l, nil
}

func (f *fakeListings) GetByID(_ context.Context, id int) (*models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &l, nil
}

func (f *fakeListings) Exists(_ context.Context, id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeListings) Update(_ context.Context, l models.Listing) (*models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[l.ID]; !ok {
		return nil, repo.ErrNotFound
	}
	f.updates++
	f.rows[l.ID] = l
	return &l, nil
}

func (f *fakeListings) List(_ context.Context) ([]models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Listing{}
	for i := 1; i <= f.nextID; i++ {
		if l, ok := f.rows[i]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListings) ListByOwner(ctx context.Context, ownerID int) ([]models.Listing, error) {
	all, _ := f.List(ctx)
	out := []models.Listing{}
	for _, l := range all {
		if l.Owner == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeBookings struct {
	mu       sync.Mutex
	listings *fakeListings
	rows     []models.Booking
}

func (f *fakeBookings) Create(_ context.Context, b models.Booking) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = len(f.rows) + 1
	f.rows = append(f.rows, b)
	return &b, nil
}

func (f *fakeBookings) GetByID(ctx context.Context, id int) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id <= 0 || id > len(f.rows) {
		return nil, repo.ErrNotFound
	}
	b := f.rows[id-1]
	b.Listing, _ = f.listings.GetByID(ctx, b.ListingID)
	return &b, nil
}

func (f *fakeBookings) ListByUser(ctx context.Context, userID int) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for _, b := range f.rows {
		if b.User == userID {
			b.Listing, _ = f.listings.GetByID(ctx, b.ListingID)
			out = append(out, b)
		}
	}
	return out, nil
}

type auditCall struct {
	userID       int
	action       string
	resourceType string
	resourceID   int
}

type fakeAudit struct {
	calls []auditCall
}

func (f *fakeAudit) Log(_ context.Context, userID int, action, resourceType string, resourceID int, _ string) error {
	f.calls = append(f.calls, auditCall{userID, action, resourceType, resourceID})
	return nil
}
