package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/helixml/listingllm/domain/listing"
	"github.com/helixml/listingllm/domain/repository"
	"github.com/helixml/listingllm/internal/database"
)

// ListingStore implements listing.ListingStore using GORM.
type ListingStore struct {
	database.Repository[listing.Listing, PropertyModel]
}

// NewListingStore creates a new ListingStore.
func NewListingStore(db database.Database) ListingStore {
	return ListingStore{
		Repository: database.NewRepository[listing.Listing, PropertyModel](db, ListingMapper{}, "listing"),
	}
}

// GetOrCreate returns the listing for raw's hotel ID, inserting it if absent.
func (s ListingStore) GetOrCreate(ctx context.Context, raw listing.RawListing) (listing.Listing, bool, error) {
	existing, err := s.FindByHotelID(ctx, raw.HotelID())
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return listing.Listing{}, false, err
	}

	created, err := s.Save(ctx, listing.NewListing(raw))
	if err != nil {
		return listing.Listing{}, false, err
	}
	return created, true, nil
}

// FindByHotelID returns the listing with the given hotel ID.
func (s ListingStore) FindByHotelID(ctx context.Context, hotelID string) (listing.Listing, error) {
	return s.FindOne(ctx, repository.WithHotelID(hotelID))
}

// Save creates or updates a listing.
func (s ListingStore) Save(ctx context.Context, l listing.Listing) (listing.Listing, error) {
	model := s.Mapper().ToModel(l)

	var result *gorm.DB
	if l.ID() == 0 {
		result = s.DB(ctx).Create(&model)
	} else {
		result = s.DB(ctx).Save(&model)
	}

	if result.Error != nil {
		return listing.Listing{}, fmt.Errorf("save listing: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes a listing. Its summaries and ratings are removed by the cascade.
func (s ListingStore) Delete(ctx context.Context, l listing.Listing) error {
	model := s.Mapper().ToModel(l)
	result := s.DB(ctx).Delete(&model)
	if result.Error != nil {
		return fmt.Errorf("delete listing: %w", result.Error)
	}
	return nil
}

// SummaryStore implements listing.SummaryStore using GORM.
type SummaryStore struct {
	database.Repository[listing.Summary, SummaryModel]
}

// NewSummaryStore creates a new SummaryStore.
func NewSummaryStore(db database.Database) SummaryStore {
	return SummaryStore{
		Repository: database.NewRepository[listing.Summary, SummaryModel](db, SummaryMapper{}, "summary"),
	}
}

// Add appends a summary.
func (s SummaryStore) Add(ctx context.Context, summary listing.Summary) (listing.Summary, error) {
	model := s.Mapper().ToModel(summary)
	if err := s.DB(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return listing.Summary{}, fmt.Errorf("add summary: %w", err)
	}
	return s.Mapper().ToDomain(model), nil
}

// FindByListing returns the summaries of a listing in insertion order.
func (s SummaryStore) FindByListing(ctx context.Context, listingID int64) ([]listing.Summary, error) {
	return s.Find(ctx, repository.WithListingID(listingID), repository.WithOrderAsc("id"))
}

// RatingStore implements listing.RatingStore using GORM.
type RatingStore struct {
	database.Repository[listing.Rating, RatingModel]
}

// NewRatingStore creates a new RatingStore.
func NewRatingStore(db database.Database) RatingStore {
	return RatingStore{
		Repository: database.NewRepository[listing.Rating, RatingModel](db, RatingMapper{}, "rating"),
	}
}

// Add appends a rating.
func (s RatingStore) Add(ctx context.Context, rating listing.Rating) (listing.Rating, error) {
	model := s.Mapper().ToModel(rating)
	if err := s.DB(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return listing.Rating{}, fmt.Errorf("add rating: %w", err)
	}
	return s.Mapper().ToDomain(model), nil
}

// FindByListing returns the ratings of a listing in insertion order.
func (s RatingStore) FindByListing(ctx context.Context, listingID int64) ([]listing.Rating, error) {
	return s.Find(ctx, repository.WithListingID(listingID), repository.WithOrderAsc("id"))
}

var (
	_ listing.ListingStore = ListingStore{}
	_ listing.SummaryStore = SummaryStore{}
	_ listing.RatingStore  = RatingStore{}
)
