// Package provider implements single-attempt text generation against remote model endpoints.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Errors classifying a failed attempt. Retrying is the caller's decision.
var (
	// ErrRateLimited means the endpoint asked the caller to slow down (429 or 503).
	ErrRateLimited = errors.New("model endpoint rate limited")
	// ErrTransient means the request failed at the network level.
	ErrTransient = errors.New("model endpoint unreachable")
	// ErrMalformedResponse means a successful response did not carry generated text.
	ErrMalformedResponse = errors.New("unexpected response format")
)

// TextGenerator generates text for a prompt with exactly one request.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// StatusError is a non-success HTTP status returned by a model endpoint.
// Statuses 429 and 503 also match ErrRateLimited.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model endpoint call failed with status code %d: %s", e.StatusCode, e.Body)
}

// Is reports whether the status is a rate-limit signal.
func (e *StatusError) Is(target error) bool {
	return target == ErrRateLimited && IsRateLimitStatus(e.StatusCode)
}

// IsRateLimitStatus reports whether code asks the caller to back off.
func IsRateLimitStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// transportError classifies a failure to obtain a response at all.
func transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}
