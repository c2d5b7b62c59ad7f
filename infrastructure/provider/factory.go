package provider

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/helixml/listingllm/internal/config"
)

// ErrNotConfigured indicates the endpoint has no model or credential.
var ErrNotConfigured = errors.New("model endpoint not configured")

// New builds the TextGenerator selected by the endpoint configuration.
func New(e config.Endpoint, logger *slog.Logger) (TextGenerator, error) {
	if !e.IsConfigured() {
		return nil, fmt.Errorf("%w: set MODEL_ENDPOINT_API_KEY and MODEL_ENDPOINT_MODEL", ErrNotConfigured)
	}

	client := &http.Client{
		Timeout:   e.Timeout(),
		Transport: NewLoggingTransport(nil, logger),
	}

	switch e.Provider() {
	case config.ProviderOpenAI:
		baseURL := e.BaseURL()
		if baseURL == config.DefaultEndpointBaseURL {
			baseURL = ""
		}
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:     e.APIKey(),
			BaseURL:    baseURL,
			Model:      e.Model(),
			HTTPClient: client,
		}), nil
	default:
		return NewGeminiProvider(e.APIKey(),
			WithGeminiBaseURL(e.BaseURL()),
			WithGeminiModel(e.Model()),
			WithGeminiHTTPClient(client),
		), nil
	}
}
