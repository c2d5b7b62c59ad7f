package service

import "github.com/helixml/listingllm/domain/content"

// EnrichOption configures the behaviour of an Enrich call.
type EnrichOption func(*EnrichConfig)

// EnrichConfig holds the resolved configuration for an Enrich call.
type EnrichConfig struct {
	category     content.Category
	extractTitle bool
	requestID    string
}

// NewEnrichConfig applies all options and returns the resolved config.
func NewEnrichConfig(opts ...EnrichOption) EnrichConfig {
	var cfg EnrichConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Category returns the content category used to post-process the response.
// content.CategoryNone means the raw response is returned.
func (c EnrichConfig) Category() content.Category { return c.category }

// ExtractTitle reports whether a title should be extracted from the response.
func (c EnrichConfig) ExtractTitle() bool { return c.extractTitle }

// RequestID returns the identifier used when logging the call, or "".
func (c EnrichConfig) RequestID() string { return c.requestID }

// WithCategory post-processes the response as the given category.
func WithCategory(category content.Category) EnrichOption {
	return func(c *EnrichConfig) { c.category = category }
}

// WithTitleExtraction extracts and bounds a single title from the response.
// It takes precedence over WithCategory.
func WithTitleExtraction() EnrichOption {
	return func(c *EnrichConfig) { c.extractTitle = true }
}

// WithRequestID tags log lines of this call.
func WithRequestID(id string) EnrichOption {
	return func(c *EnrichConfig) { c.requestID = id }
}
