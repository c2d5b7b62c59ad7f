// Package listing provides domain types for property listings and the records generated for them.
package listing

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRating indicates a rating outside the closed interval [MinRating, MaxRating].
var ErrInvalidRating = errors.New("rating out of range")

// Rating bounds, inclusive.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Listing is a property record undergoing enrichment.
// It is identified by its external hotel ID, which never changes once created.
type Listing struct {
	id          int64
	hotelID     string
	title       string
	description string
	summary     string
	location    string
	latitude    *float64
	longitude   *float64
	price       string
}

// NewListing creates a listing that has not been persisted yet from a scraped row.
func NewListing(raw RawListing) Listing {
	return Listing{
		hotelID:   raw.HotelID(),
		title:     raw.Title(),
		location:  raw.Location(),
		latitude:  copyFloat(raw.Latitude()),
		longitude: copyFloat(raw.Longitude()),
		price:     raw.Price(),
	}
}

// ReconstructListing recreates a listing from persistence.
func ReconstructListing(
	id int64,
	hotelID, title, description, summary, location string,
	latitude, longitude *float64,
	price string,
) Listing {
	return Listing{
		id:          id,
		hotelID:     hotelID,
		title:       title,
		description: description,
		summary:     summary,
		location:    location,
		latitude:    copyFloat(latitude),
		longitude:   copyFloat(longitude),
		price:       price,
	}
}

// ID returns the database identifier, zero before the listing is saved.
func (l Listing) ID() int64 { return l.id }

// HotelID returns the external reference of the listing.
func (l Listing) HotelID() string { return l.hotelID }

// Title returns the display title.
func (l Listing) Title() string { return l.title }

// Description returns the generated description.
func (l Listing) Description() string { return l.description }

// Summary returns the summary text stored on the listing itself.
func (l Listing) Summary() string { return l.summary }

// Location returns the location label.
func (l Listing) Location() string { return l.location }

// Latitude returns the latitude, or nil when unknown.
func (l Listing) Latitude() *float64 { return copyFloat(l.latitude) }

// Longitude returns the longitude, or nil when unknown.
func (l Listing) Longitude() *float64 { return copyFloat(l.longitude) }

// Price returns the price label.
func (l Listing) Price() string { return l.price }

// WithEnrichment returns a copy carrying a rewritten title and generated description.
func (l Listing) WithEnrichment(title, description string) Listing {
	l.title = title
	l.description = description
	return l
}

// Summary is a generated summary attached to a listing. Summaries are append-only.
type Summary struct {
	id        int64
	listingID int64
	text      string
	createdAt time.Time
}

// NewSummary creates a summary for the listing with the given database ID.
func NewSummary(listingID int64, text string) Summary {
	return Summary{listingID: listingID, text: text, createdAt: time.Now()}
}

// ReconstructSummary recreates a summary from persistence.
func ReconstructSummary(id, listingID int64, text string, createdAt time.Time) Summary {
	return Summary{id: id, listingID: listingID, text: text, createdAt: createdAt}
}

// ID returns the database identifier.
func (s Summary) ID() int64 { return s.id }

// ListingID returns the owning listing's database identifier.
func (s Summary) ListingID() int64 { return s.listingID }

// Text returns the summary text.
func (s Summary) Text() string { return s.text }

// CreatedAt returns when the summary was generated.
func (s Summary) CreatedAt() time.Time { return s.createdAt }

// Rating is a generated score and review attached to a listing. Ratings are append-only.
type Rating struct {
	id        int64
	listingID int64
	score     float64
	review    string
	createdAt time.Time
}

// NewRating creates a rating, rejecting scores outside [MinRating, MaxRating].
func NewRating(listingID int64, score float64, review string) (Rating, error) {
	if score < MinRating || score > MaxRating {
		return Rating{}, fmt.Errorf("%w: %g", ErrInvalidRating, score)
	}
	return Rating{listingID: listingID, score: score, review: review, createdAt: time.Now()}, nil
}

// ReconstructRating recreates a rating from persistence.
func ReconstructRating(id, listingID int64, score float64, review string, createdAt time.Time) Rating {
	return Rating{id: id, listingID: listingID, score: score, review: review, createdAt: createdAt}
}

// ID returns the database identifier.
func (r Rating) ID() int64 { return r.id }

// ListingID returns the owning listing's database identifier.
func (r Rating) ListingID() int64 { return r.listingID }

// Score returns the rating in [MinRating, MaxRating].
func (r Rating) Score() float64 { return r.score }

// Review returns the review text.
func (r Rating) Review() string { return r.review }

// CreatedAt returns when the rating was generated.
func (r Rating) CreatedAt() time.Time { return r.createdAt }

// RawListing is one scraped row awaiting enrichment.
type RawListing struct {
	hotelID   string
	title     string
	location  string
	latitude  *float64
	longitude *float64
	price     string
}

// NewRawListing creates a RawListing.
func NewRawListing(hotelID, title, location string, latitude, longitude *float64, price string) RawListing {
	return RawListing{
		hotelID:   hotelID,
		title:     title,
		location:  location,
		latitude:  copyFloat(latitude),
		longitude: copyFloat(longitude),
		price:     price,
	}
}

// HotelID returns the external reference.
func (r RawListing) HotelID() string { return r.hotelID }

// Title returns the scraped title.
func (r RawListing) Title() string { return r.title }

// Location returns the scraped location label.
func (r RawListing) Location() string { return r.location }

// Latitude returns the latitude, or nil when missing.
func (r RawListing) Latitude() *float64 { return copyFloat(r.latitude) }

// Longitude returns the longitude, or nil when missing.
func (r RawListing) Longitude() *float64 { return copyFloat(r.longitude) }

// Price returns the scraped price label.
func (r RawListing) Price() string { return r.price }

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
