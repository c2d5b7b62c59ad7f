package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/listingllm/domain/listing"
	"github.com/helixml/listingllm/infrastructure/persistence"
	"github.com/helixml/listingllm/internal/testdb"
)

func TestAutoMigrate_Idempotent(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, persistence.AutoMigrate(db))
	assert.NoError(t, persistence.ValidateSchema(db))
}

func TestValidateSchema_MissingTables(t *testing.T) {
	err := persistence.ValidateSchema(testdb.NewPlain(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property_property")
}

func TestUnitOfWork_Commit(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	uow := persistence.NewUnitOfWork(db)

	err := uow.Do(ctx, func(s listing.Stores) error {
		l, _, err := s.Listings.GetOrCreate(ctx, sampleRaw("H1"))
		if err != nil {
			return err
		}
		_, err = s.Summaries.Add(ctx, listing.NewSummary(l.ID(), "kept"))
		return err
	})
	require.NoError(t, err)

	l, err := persistence.NewListingStore(db).FindByHotelID(ctx, "H1")
	require.NoError(t, err)
	summaries, err := persistence.NewSummaryStore(db).FindByListing(ctx, l.ID())
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestUnitOfWork_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	boom := errors.New("model failed")

	err := persistence.NewUnitOfWork(db).Do(ctx, func(s listing.Stores) error {
		if _, _, err := s.Listings.GetOrCreate(ctx, sampleRaw("H1")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := persistence.NewListingStore(db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
