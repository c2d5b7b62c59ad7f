package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gemini defaults.
const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-1.5-flash"
	DefaultTimeout       = 30 * time.Second
)

const maxResponseBytes = 4 << 20

// GeminiProvider calls the generateContent method of the Gemini REST API.
type GeminiProvider struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
}

// GeminiOption is a functional option for GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithGeminiBaseURL sets the API root, e.g. https://generativelanguage.googleapis.com/v1beta.
func WithGeminiBaseURL(u string) GeminiOption {
	return func(p *GeminiProvider) { p.baseURL = strings.TrimRight(u, "/") }
}

// WithGeminiModel sets the model name.
func WithGeminiModel(model string) GeminiOption {
	return func(p *GeminiProvider) { p.model = model }
}

// WithGeminiTimeout sets the per-request timeout.
func WithGeminiTimeout(d time.Duration) GeminiOption {
	return func(p *GeminiProvider) { p.client = &http.Client{Timeout: d, Transport: p.client.Transport} }
}

// WithGeminiHTTPClient replaces the HTTP client.
func WithGeminiHTTPClient(c *http.Client) GeminiOption {
	return func(p *GeminiProvider) { p.client = c }
}

// NewGeminiProvider creates a GeminiProvider authenticating with apiKey.
func NewGeminiProvider(apiKey string, opts ...GeminiOption) *GeminiProvider {
	p := &GeminiProvider{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultGeminiBaseURL,
		model:   DefaultGeminiModel,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type geminiPart struct {
	Text *string `json:"text,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends prompt and returns the text of the first candidate.
func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: &prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", transportError(ctx, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return parseGeminiResponse(data)
}

func (p *GeminiProvider) endpoint() string {
	q := url.Values{}
	q.Set("key", p.apiKey)
	return fmt.Sprintf("%s/models/%s:generateContent?%s", p.baseURL, p.model, q.Encode())
}

func parseGeminiResponse(data []byte) (string, error) {
	var env geminiResponse
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(env.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	parts := env.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", fmt.Errorf("%w: candidate has no text", ErrMalformedResponse)
	}
	return *parts[0].Text, nil
}

var _ TextGenerator = (*GeminiProvider)(nil)
