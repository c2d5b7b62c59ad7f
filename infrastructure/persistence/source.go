package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/helixml/listingllm/domain/listing"
	"github.com/helixml/listingllm/internal/database"
)

// DefaultSourceTable is the table the scraper writes raw listings to.
const DefaultSourceTable = "properties"

// PropertySource reads pages of scraped listings with plain SQL.
type PropertySource struct {
	db    database.Database
	table string
}

// SourceOption configures a PropertySource.
type SourceOption func(*PropertySource)

// WithSourceTable reads from table instead of DefaultSourceTable.
func WithSourceTable(table string) SourceOption {
	return func(s *PropertySource) {
		if table != "" {
			s.table = table
		}
	}
}

// NewPropertySource creates a PropertySource.
func NewPropertySource(db database.Database, opts ...SourceOption) PropertySource {
	s := PropertySource{db: db, table: DefaultSourceTable}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Page returns up to limit rows ordered by hotel ID, skipping offset rows.
// All rows are read before returning so no cursor outlives the call.
func (s PropertySource) Page(ctx context.Context, limit, offset int) ([]listing.RawListing, error) {
	query := fmt.Sprintf(
		"SELECT hotel_id, title, location, latitude, longitude, price FROM %s ORDER BY hotel_id LIMIT ? OFFSET ?",
		s.table,
	)

	rows, err := s.db.Session(ctx).Raw(query, limit, offset).Rows()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer func() { _ = rows.Close() }()

	var page []listing.RawListing
	for rows.Next() {
		var (
			hotelID, title, location, price sql.NullString
			latitude, longitude             sql.NullFloat64
		)
		if err := rows.Scan(&hotelID, &title, &location, &latitude, &longitude, &price); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", s.table, err)
		}
		page = append(page, listing.NewRawListing(
			hotelID.String,
			title.String,
			location.String,
			nullFloat(latitude),
			nullFloat(longitude),
			price.String,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return page, nil
}

func nullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

var _ listing.Source = PropertySource{}
