// Package service declares domain services implemented by the infrastructure layer.
package service

import "context"

// Enricher sends a prompt to a generative model and returns the post-processed text.
type Enricher interface {
	Enrich(ctx context.Context, prompt string, opts ...EnrichOption) (string, error)
}
