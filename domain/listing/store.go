package listing

import (
	"context"

	"github.com/helixml/listingllm/domain/repository"
)

// Source reads scraped listings awaiting enrichment, one page at a time.
type Source interface {
	Page(ctx context.Context, limit, offset int) ([]RawListing, error)
}

// ListingStore persists listings keyed by hotel ID.
type ListingStore interface {
	// GetOrCreate returns the listing for raw's hotel ID, inserting it from raw if absent.
	// An existing listing is returned untouched.
	GetOrCreate(ctx context.Context, raw RawListing) (Listing, bool, error)
	FindByHotelID(ctx context.Context, hotelID string) (Listing, error)
	Find(ctx context.Context, options ...repository.Option) ([]Listing, error)
	Save(ctx context.Context, l Listing) (Listing, error)
	Delete(ctx context.Context, l Listing) error
}

// SummaryStore appends and lists listing summaries.
type SummaryStore interface {
	Add(ctx context.Context, s Summary) (Summary, error)
	FindByListing(ctx context.Context, listingID int64) ([]Summary, error)
}

// RatingStore appends and lists listing ratings.
type RatingStore interface {
	Add(ctx context.Context, r Rating) (Rating, error)
	FindByListing(ctx context.Context, listingID int64) ([]Rating, error)
}

// Stores groups the stores bound to one unit of work.
type Stores struct {
	Listings  ListingStore
	Summaries SummaryStore
	Ratings   RatingStore
}

// UnitOfWork runs fn atomically: everything fn writes is kept only if fn returns nil.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(stores Stores) error) error
}
