// Package service orchestrates listing enrichment batches.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/helixml/listingllm/domain/content"
	"github.com/helixml/listingllm/domain/listing"
	domainservice "github.com/helixml/listingllm/domain/service"
	"github.com/helixml/listingllm/internal/log"
)

// unknownCoordinate is written into prompts when a coordinate is missing.
const unknownCoordinate = "unknown"

// BatchMetrics receives per-listing outcomes.
type BatchMetrics interface {
	ListingProcessed()
	ListingFailed()
	RatingSkipped()
	BatchCompleted(at time.Time)
}

// RunResult summarises one batch.
type RunResult struct {
	Fetched        int
	Processed      int
	Failed         int
	RatingsSkipped int
	NextOffset     int
}

// Rewriter enriches a page of scraped listings, one unit of work per listing.
type Rewriter struct {
	source   listing.Source
	uow      listing.UnitOfWork
	enricher domainservice.Enricher
	parser   content.Parser
	metrics  BatchMetrics
	log      *slog.Logger
}

// RewriterOption configures a Rewriter.
type RewriterOption func(*Rewriter)

// WithMetrics reports outcomes to m.
func WithMetrics(m BatchMetrics) RewriterOption {
	return func(r *Rewriter) { r.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RewriterOption {
	return func(r *Rewriter) { r.log = l }
}

// NewRewriter creates a Rewriter.
func NewRewriter(
	source listing.Source,
	uow listing.UnitOfWork,
	enricher domainservice.Enricher,
	parser content.Parser,
	opts ...RewriterOption,
) *Rewriter {
	r := &Rewriter{
		source:   source,
		uow:      uow,
		enricher: enricher,
		parser:   parser,
		metrics:  noopMetrics{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run enriches up to limit listings starting at offset.
// A failed listing is rolled back and skipped; only a failure to read the page is returned.
func (r *Rewriter) Run(ctx context.Context, limit, offset int) (RunResult, error) {
	runID := log.NewRunID()
	ctx = log.WithRunID(ctx, runID)
	logger := r.log.With(string(log.RunIDKey), runID)

	result := RunResult{NextOffset: offset + limit}

	page, err := r.source.Page(ctx, limit, offset)
	if err != nil {
		return result, fmt.Errorf("read listings page: %w", err)
	}
	result.Fetched = len(page)

	if len(page) == 0 {
		logger.Info("No properties found to process.")
		return result, nil
	}

	for _, raw := range page {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		ctx := log.WithHotelID(ctx, raw.HotelID())
		listingLog := logger.With(string(log.HotelIDKey), raw.HotelID())

		skipped, err := r.enrich(ctx, listingLog, raw)
		if err != nil {
			result.Failed++
			r.metrics.ListingFailed()
			listingLog.Error("error processing listing", "error", err)
			continue
		}

		if skipped {
			result.RatingsSkipped++
			r.metrics.RatingSkipped()
		}
		result.Processed++
		r.metrics.ListingProcessed()
		listingLog.Info("successfully processed listing", "progress", fmt.Sprintf("%d/%d", result.Processed, limit))
	}

	r.metrics.BatchCompleted(time.Now())
	logger.Info(fmt.Sprintf(
		"Completed processing %d properties. Use --offset %d to process the next batch.",
		result.Processed, result.NextOffset,
	),
		"fetched", result.Fetched,
		"failed", result.Failed,
		"ratings_skipped", result.RatingsSkipped,
	)
	return result, nil
}

// enrich runs the four model calls for one listing inside a unit of work.
// It reports whether the rating was skipped because its response did not parse.
func (r *Rewriter) enrich(ctx context.Context, logger *slog.Logger, raw listing.RawListing) (bool, error) {
	var skipped bool

	err := r.uow.Do(ctx, func(stores listing.Stores) error {
		skipped = false

		current, created, err := stores.Listings.GetOrCreate(ctx, raw)
		if err != nil {
			return fmt.Errorf("get or create listing: %w", err)
		}
		logger.Debug("listing loaded", "listing_id", current.ID(), "created", created)

		titleResponse, err := r.enricher.Enrich(ctx, titlePrompt(raw),
			domainservice.WithCategory(content.CategoryTitle),
			domainservice.WithRequestID(raw.HotelID()+"/title"),
		)
		if err != nil {
			return fmt.Errorf("rewrite title: %w", err)
		}
		title := r.parser.SelectBestTitle(titleResponse, raw.Title())
		logger.Info("selected title", "title", title)

		description, err := r.enricher.Enrich(ctx, descriptionPrompt(raw, title),
			domainservice.WithCategory(content.CategoryDescription),
			domainservice.WithRequestID(raw.HotelID()+"/description"),
		)
		if err != nil {
			return fmt.Errorf("generate description: %w", err)
		}

		updated, err := stores.Listings.Save(ctx, current.WithEnrichment(title, description))
		if err != nil {
			return fmt.Errorf("save listing: %w", err)
		}

		summaryText, err := r.enricher.Enrich(ctx, summaryPrompt(raw, title, description),
			domainservice.WithCategory(content.CategorySummary),
			domainservice.WithRequestID(raw.HotelID()+"/summary"),
		)
		if err != nil {
			return fmt.Errorf("generate summary: %w", err)
		}
		if _, err := stores.Summaries.Add(ctx, listing.NewSummary(updated.ID(), summaryText)); err != nil {
			return fmt.Errorf("add summary: %w", err)
		}

		reviewResponse, err := r.enricher.Enrich(ctx, reviewPrompt(raw, title, description),
			domainservice.WithRequestID(raw.HotelID()+"/review"),
		)
		if err != nil {
			return fmt.Errorf("generate review: %w", err)
		}

		score, review, err := r.parser.ExtractRatingReview(reviewResponse)
		if err != nil {
			if !errors.Is(err, content.ErrParse) {
				return fmt.Errorf("parse rating: %w", err)
			}
			logger.Error("failed to parse rating and review", "error", err)
			skipped = true
			return nil
		}

		rating, err := listing.NewRating(updated.ID(), score, review)
		if err != nil {
			logger.Error("rejected rating", "error", err)
			skipped = true
			return nil
		}
		if _, err := stores.Ratings.Add(ctx, rating); err != nil {
			return fmt.Errorf("add rating: %w", err)
		}
		return nil
	})

	return skipped, err
}

func titlePrompt(raw listing.RawListing) string {
	return "Rewrite this title: " + raw.Title()
}

func descriptionPrompt(raw listing.RawListing, title string) string {
	return "Generate a detailed description for the following property:\n" +
		"Title: " + title + "\n" +
		"Location: " + raw.Location() + "\n" +
		"Latitude: " + coordinate(raw.Latitude()) + "\n" +
		"Longitude: " + coordinate(raw.Longitude()) + "\n" +
		"Price: " + raw.Price()
}

func summaryPrompt(raw listing.RawListing, title, description string) string {
	return "Summarize the following property information:\n" +
		"Title: " + title + "\n" +
		"Description: " + description + "\n" +
		"Location: " + raw.Location() + "\n" +
		"Latitude: " + coordinate(raw.Latitude()) + "\n" +
		"Longitude: " + coordinate(raw.Longitude()) + "\n" +
		"Price: " + raw.Price()
}

func reviewPrompt(raw listing.RawListing, title, description string) string {
	return "Generate a rating (0-5) and review for this property. Format as 'Rating: X\nReview: Your review text':\n" +
		"Title: " + title + "\n" +
		"Description: " + description + "\n" +
		"Location: " + raw.Location() + "\n" +
		"Price: " + raw.Price()
}

func coordinate(v *float64) string {
	if v == nil {
		return unknownCoordinate
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

type noopMetrics struct{}

func (noopMetrics) ListingProcessed()        {}
func (noopMetrics) ListingFailed()           {}
func (noopMetrics) RatingSkipped()           {}
func (noopMetrics) BatchCompleted(time.Time) {}
