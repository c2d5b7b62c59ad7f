// Package enricher turns single model calls into retried, post-processed enrichments.
package enricher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/helixml/listingllm/domain/content"
	domainservice "github.com/helixml/listingllm/domain/service"
	"github.com/helixml/listingllm/infrastructure/provider"
)

// Retry defaults.
const (
	DefaultMaxAttempts   = 5
	DefaultInitialDelay  = time.Second
	DefaultBackoffFactor = 2.0
)

// Attempt outcomes reported to an Observer.
const (
	OutcomeSuccess     = "success"
	OutcomeRateLimited = "rate_limited"
	OutcomeTransient   = "transient"
	OutcomeMalformed   = "malformed"
	OutcomeError       = "error"
)

// ErrRetriesExhausted means every attempt failed with a retryable error.
var ErrRetriesExhausted = errors.New("retries exhausted")

// ModelError is a terminal failure of an Enrich call.
type ModelError struct {
	Message  string
	Attempts int
	Err      error
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s after %d attempts", e.Message, e.Attempts)
	}
	return fmt.Sprintf("%s after %d attempts: %v", e.Message, e.Attempts, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// Observer receives one call per model attempt.
type Observer interface {
	ObserveAttempt(outcome string, duration time.Duration)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ModelClient retries a TextGenerator and post-processes its output.
type ModelClient struct {
	generator     provider.TextGenerator
	parser        content.Parser
	maxAttempts   int
	initialDelay  time.Duration
	backoffFactor float64
	sleep         SleepFunc
	observer      Observer
	log           *slog.Logger
}

// Option configures a ModelClient.
type Option func(*ModelClient)

// WithMaxAttempts sets the total number of attempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(c *ModelClient) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the first delay and the multiplier applied per attempt.
func WithBackoff(initial time.Duration, factor float64) Option {
	return func(c *ModelClient) {
		if initial > 0 {
			c.initialDelay = initial
		}
		if factor >= 1 {
			c.backoffFactor = factor
		}
	}
}

// WithSleep replaces the wait between attempts.
func WithSleep(fn SleepFunc) Option {
	return func(c *ModelClient) { c.sleep = fn }
}

// WithObserver reports every attempt to o.
func WithObserver(o Observer) Option {
	return func(c *ModelClient) { c.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *ModelClient) { c.log = l }
}

// NewModelClient creates a ModelClient.
func NewModelClient(generator provider.TextGenerator, parser content.Parser, opts ...Option) *ModelClient {
	c := &ModelClient{
		generator:     generator,
		parser:        parser,
		maxAttempts:   DefaultMaxAttempts,
		initialDelay:  DefaultInitialDelay,
		backoffFactor: DefaultBackoffFactor,
		sleep:         sleepContext,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enrich sends prompt and returns the post-processed response.
func (c *ModelClient) Enrich(ctx context.Context, prompt string, opts ...domainservice.EnrichOption) (string, error) {
	cfg := domainservice.NewEnrichConfig(opts...)
	log := c.log
	if id := cfg.RequestID(); id != "" {
		log = log.With("request", id)
	}

	text, err := c.generate(ctx, log, prompt)
	if err != nil {
		return "", err
	}

	if cfg.ExtractTitle() {
		title, err := c.parser.ExtractTitle(text)
		if err != nil {
			return "", fmt.Errorf("extract title: %w", err)
		}
		return title, nil
	}
	return c.parser.Normalize(text, cfg.Category()), nil
}

func (c *ModelClient) generate(ctx context.Context, log *slog.Logger, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		start := time.Now()
		text, err := c.generator.GenerateText(ctx, prompt)
		if err == nil {
			c.observe(OutcomeSuccess, start)
			return text, nil
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		delay := c.delay(attempt)
		switch {
		case errors.Is(err, provider.ErrRateLimited):
			c.observe(OutcomeRateLimited, start)
			log.Warn("model endpoint rate limited, backing off",
				"attempt", attempt+1,
				"max_attempts", c.maxAttempts,
				"delay", delay,
			)
		case errors.Is(err, provider.ErrTransient):
			c.observe(OutcomeTransient, start)
			log.Error("model request failed", "attempt", attempt+1, "error", err)
			if attempt == c.maxAttempts-1 {
				return "", &ModelError{
					Message:  "max retries exceeded",
					Attempts: attempt + 1,
					Err:      fmt.Errorf("%w: %w", ErrRetriesExhausted, err),
				}
			}
		case errors.Is(err, provider.ErrMalformedResponse):
			c.observe(OutcomeMalformed, start)
			log.Error("failed to parse model response", "error", err)
			return "", err
		default:
			c.observe(OutcomeError, start)
			log.Error("model endpoint error", "error", err)
			return "", err
		}

		if err := c.sleep(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", &ModelError{
		Message:  "exhausted retries",
		Attempts: c.maxAttempts,
		Err:      fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr),
	}
}

// delay is initial × factor^attempt for a zero-based attempt.
func (c *ModelClient) delay(attempt int) time.Duration {
	return time.Duration(float64(c.initialDelay) * math.Pow(c.backoffFactor, float64(attempt)))
}

func (c *ModelClient) observe(outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveAttempt(outcome, time.Since(start))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ domainservice.Enricher = (*ModelClient)(nil)
