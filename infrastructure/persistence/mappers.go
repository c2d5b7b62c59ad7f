package persistence

import (
	"github.com/helixml/listingllm/domain/listing"
)

// ListingMapper maps between domain Listing and PropertyModel.
type ListingMapper struct{}

// ToDomain converts a PropertyModel to a domain Listing.
func (m ListingMapper) ToDomain(e PropertyModel) listing.Listing {
	return listing.ReconstructListing(
		e.ID,
		e.HotelID,
		e.Title,
		deref(e.Description),
		deref(e.Summary),
		deref(e.Location),
		e.Latitude,
		e.Longitude,
		deref(e.Price),
	)
}

// ToModel converts a domain Listing to a PropertyModel. Empty optional text is stored as NULL.
func (m ListingMapper) ToModel(l listing.Listing) PropertyModel {
	return PropertyModel{
		ID:          l.ID(),
		HotelID:     l.HotelID(),
		Title:       l.Title(),
		Summary:     nullable(l.Summary()),
		Description: nullable(l.Description()),
		Location:    nullable(l.Location()),
		Latitude:    l.Latitude(),
		Longitude:   l.Longitude(),
		Price:       nullable(l.Price()),
	}
}

// SummaryMapper maps between domain Summary and SummaryModel.
type SummaryMapper struct{}

// ToDomain converts a SummaryModel to a domain Summary.
func (m SummaryMapper) ToDomain(e SummaryModel) listing.Summary {
	return listing.ReconstructSummary(e.ID, e.PropertyID, e.Summary, e.CreatedAt)
}

// ToModel converts a domain Summary to a SummaryModel.
func (m SummaryMapper) ToModel(s listing.Summary) SummaryModel {
	return SummaryModel{
		ID:         s.ID(),
		PropertyID: s.ListingID(),
		Summary:    s.Text(),
		CreatedAt:  s.CreatedAt(),
	}
}

// RatingMapper maps between domain Rating and RatingModel.
type RatingMapper struct{}

// ToDomain converts a RatingModel to a domain Rating.
func (m RatingMapper) ToDomain(e RatingModel) listing.Rating {
	return listing.ReconstructRating(e.ID, e.PropertyID, e.Rating, e.Review, e.CreatedAt)
}

// ToModel converts a domain Rating to a RatingModel.
func (m RatingMapper) ToModel(r listing.Rating) RatingModel {
	return RatingModel{
		ID:         r.ID(),
		PropertyID: r.ListingID(),
		Rating:     r.Score(),
		Review:     r.Review(),
		CreatedAt:  r.CreatedAt(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
