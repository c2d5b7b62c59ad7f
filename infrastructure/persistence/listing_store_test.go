package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/listingllm/domain/listing"
	"github.com/helixml/listingllm/domain/repository"
	"github.com/helixml/listingllm/infrastructure/persistence"
	"github.com/helixml/listingllm/internal/database"
	"github.com/helixml/listingllm/internal/testdb"
)

func ptr(f float64) *float64 { return &f }

func sampleRaw(hotelID string) listing.RawListing {
	return listing.NewRawListing(hotelID, "Loft", "Dhaka", ptr(23.8), ptr(90.4), "$120")
}

func TestListingStore_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewListingStore(testdb.New(t))

	created, isNew, err := store.GetOrCreate(ctx, sampleRaw("H1"))
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.NotZero(t, created.ID())
	assert.Equal(t, "H1", created.HotelID())
	assert.Equal(t, "Loft", created.Title())
	require.NotNil(t, created.Latitude())
	assert.InDelta(t, 23.8, *created.Latitude(), 1e-9)

	again, isNew, err := store.GetOrCreate(ctx, listing.NewRawListing("H1", "Other", "", nil, nil, ""))
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID(), again.ID())
	assert.Equal(t, "Loft", again.Title(), "existing fields are not overwritten on lookup")

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListingStore_SaveEnrichment(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewListingStore(testdb.New(t))

	l, _, err := store.GetOrCreate(ctx, sampleRaw("H1"))
	require.NoError(t, err)

	_, err = store.Save(ctx, l.WithEnrichment("Sunny Loft", "Bright and airy."))
	require.NoError(t, err)

	got, err := store.FindByHotelID(ctx, "H1")
	require.NoError(t, err)
	assert.Equal(t, "Sunny Loft", got.Title())
	assert.Equal(t, "Bright and airy.", got.Description())
	assert.Equal(t, "Dhaka", got.Location())
	assert.Equal(t, "$120", got.Price())
}

func TestListingStore_FindByHotelID_NotFound(t *testing.T) {
	store := persistence.NewListingStore(testdb.New(t))

	_, err := store.FindByHotelID(context.Background(), "missing")
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestListingStore_Find(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewListingStore(testdb.New(t))
	for _, id := range []string{"H2", "H1", "H3"} {
		_, _, err := store.GetOrCreate(ctx, sampleRaw(id))
		require.NoError(t, err)
	}

	got, err := store.Find(ctx, repository.WithOrderAsc("hotel_id"), repository.WithLimit(2))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "H1", got[0].HotelID())
	assert.Equal(t, "H2", got[1].HotelID())
}

func TestSummaryAndRatingStores(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	listings := persistence.NewListingStore(db)
	summaries := persistence.NewSummaryStore(db)
	ratings := persistence.NewRatingStore(db)

	l, _, err := listings.GetOrCreate(ctx, sampleRaw("H1"))
	require.NoError(t, err)

	_, err = summaries.Add(ctx, listing.NewSummary(l.ID(), "first"))
	require.NoError(t, err)
	_, err = summaries.Add(ctx, listing.NewSummary(l.ID(), "second"))
	require.NoError(t, err)

	rating, err := listing.NewRating(l.ID(), 4.5, "Great stay")
	require.NoError(t, err)
	saved, err := ratings.Add(ctx, rating)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())

	gotSummaries, err := summaries.FindByListing(ctx, l.ID())
	require.NoError(t, err)
	require.Len(t, gotSummaries, 2)
	assert.Equal(t, "first", gotSummaries[0].Text())
	assert.Equal(t, "second", gotSummaries[1].Text())

	gotRatings, err := ratings.FindByListing(ctx, l.ID())
	require.NoError(t, err)
	require.Len(t, gotRatings, 1)
	assert.InDelta(t, 4.5, gotRatings[0].Score(), 1e-9)
	assert.Equal(t, "Great stay", gotRatings[0].Review())
}

func TestRatingStore_RejectsOutOfRangeAtDatabase(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	l, _, err := persistence.NewListingStore(db).GetOrCreate(ctx, sampleRaw("H1"))
	require.NoError(t, err)

	bad := listing.ReconstructRating(0, l.ID(), 7, "too good", time.Now())
	_, err = persistence.NewRatingStore(db).Add(ctx, bad)
	assert.Error(t, err)
}

func TestListingStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	listings := persistence.NewListingStore(db)
	summaries := persistence.NewSummaryStore(db)

	l, _, err := listings.GetOrCreate(ctx, sampleRaw("H1"))
	require.NoError(t, err)
	_, err = summaries.Add(ctx, listing.NewSummary(l.ID(), "text"))
	require.NoError(t, err)

	require.NoError(t, listings.Delete(ctx, l))

	count, err := summaries.Count(ctx, repository.WithListingID(l.ID()))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSummaryStore_RequiresListing(t *testing.T) {
	_, err := persistence.NewSummaryStore(testdb.New(t)).Add(context.Background(), listing.NewSummary(999, "orphan"))
	assert.Error(t, err)
}
