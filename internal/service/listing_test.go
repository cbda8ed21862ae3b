package service

import (
	"context"
	"testing"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func seedListing(t *testing.T, svc *ListingService, owner int) *models.Listing {
	t.Helper()
	l, err := svc.Create(context.Background(), owner, models.Listing{
		Title: "Cabin", Address: "Lake road", Photos: []string{"a.jpg"}, Description: "Quiet",
		Perks: []string{"wifi", "wifi", "parking"}, ExtraInfo: "No pets",
		CheckIn: 14, CheckOut: 11, MaxGuests: 4, Price: 100,
	})
	require.NoError(t, err)
	return l
}

func TestListingService_CreateSetsOwner(t *testing.T) {
	audit := &fakeAudit{}
	svc := NewListingService(newFakeListings(), audit)

	l, err := svc.Create(context.Background(), 3, models.Listing{Owner: 99, Title: "Flat", Perks: []string{"a", "a"}})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Owner)
	assert.Equal(t, []string{"a"}, l.Perks)
	require.Len(t, audit.calls, 1)
	assert.Equal(t, auditCall{3, "create", "listing", l.ID}, audit.calls[0])
}

func TestListingService_CreateRequiresIdentity(t *testing.T) {
	svc := NewListingService(newFakeListings(), nil)
	_, err := svc.Create(context.Background(), 0, models.Listing{Title: "x"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
}

func TestListingService_UpdateByNonOwnerIsForbidden(t *testing.T) {
	store := newFakeListings()
	svc := NewListingService(store, nil)
	original := seedListing(t, svc, 1)

	_, err := svc.Update(context.Background(), 2, original.ID, models.ListingPatch{Title: ptr("Hijacked"), Price: ptr(1.0)})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	assert.Equal(t, 0, store.updates, "no write may happen for a non-owner")

	persisted, err := svc.Get(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, *original, *persisted)
}

func TestListingService_UpdatePartialAndIdempotent(t *testing.T) {
	svc := NewListingService(newFakeListings(), nil)
	original := seedListing(t, svc, 1)
	patch := models.ListingPatch{Title: ptr("Lake cabin"), MaxGuests: ptr(6)}

	first, err := svc.Update(context.Background(), 1, original.ID, patch)
	require.NoError(t, err)
	second, err := svc.Update(context.Background(), 1, original.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.Equal(t, "Lake cabin", second.Title)
	assert.Equal(t, 6, second.MaxGuests)

	expected := *original
	expected.Title = "Lake cabin"
	expected.MaxGuests = 6
	assert.Equal(t, expected, *second)
}

func TestListingService_UpdateMissing(t *testing.T) {
	svc := NewListingService(newFakeListings(), nil)
	_, err := svc.Update(context.Background(), 1, 42, models.ListingPatch{Title: ptr("x")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestListingService_ListByOwner(t *testing.T) {
	svc := NewListingService(newFakeListings(), nil)
	seedListing(t, svc, 1)
	seedListing(t, svc, 2)
	seedListing(t, svc, 1)

	mine, err := svc.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, l := range mine {
		assert.Equal(t, 1, l.Owner)
	}

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
