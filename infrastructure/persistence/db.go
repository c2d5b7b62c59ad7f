// Package persistence provides database storage implementations.
package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/helixml/listingllm/domain/listing"
	"github.com/helixml/listingllm/internal/database"
)

// AutoMigrate creates or updates the listing, summary and rating tables.
// The scraped source table is owned by the scraper and is never migrated here.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// allModels returns every GORM model that AutoMigrate manages.
func allModels() []interface{} {
	return []interface{}{
		&PropertyModel{},
		&SummaryModel{},
		&RatingModel{},
	}
}

// ValidateSchema verifies every GORM model field has a corresponding column
// in the database. Returns an error listing any missing columns.
func ValidateSchema(db database.Database) error {
	gdb := db.GORM()
	migrator := gdb.Migrator()

	var missing []string
	for _, model := range allModels() {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("parse model schema: %w", err)
		}

		if !migrator.HasTable(model) {
			missing = append(missing, stmt.Table)
			continue
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return fmt.Errorf("get column types for %s: %w", stmt.Table, err)
		}

		actual := make(map[string]bool, len(columnTypes))
		for _, ct := range columnTypes {
			actual[ct.Name()] = true
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" || field.DBName == "-" {
				continue
			}
			if !actual[field.DBName] {
				missing = append(missing, stmt.Table+"."+field.DBName)
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("schema is missing %v; run the migrate command", missing)
	}
	return nil
}

// UnitOfWork implements listing.UnitOfWork with one GORM transaction per call.
type UnitOfWork struct {
	db database.Database
}

// NewUnitOfWork creates a UnitOfWork.
func NewUnitOfWork(db database.Database) UnitOfWork {
	return UnitOfWork{db: db}
}

// Do runs fn with stores bound to a new transaction. The transaction commits only if fn returns nil.
func (u UnitOfWork) Do(ctx context.Context, fn func(stores listing.Stores) error) error {
	return database.WithTransaction(ctx, u.db, func(tx *gorm.DB) error {
		scoped := database.FromGORM(tx)
		return fn(listing.Stores{
			Listings:  NewListingStore(scoped),
			Summaries: NewSummaryStore(scoped),
			Ratings:   NewRatingStore(scoped),
		})
	})
}

var _ listing.UnitOfWork = UnitOfWork{}
