// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultLogLevel              = "INFO"
	DefaultBatchLimit            = 10
	DefaultBatchOffset           = 0
	DefaultEndpointProvider      = ProviderGemini
	DefaultEndpointBaseURL       = "https://generativelanguage.googleapis.com/v1beta"
	DefaultEndpointModel         = "gemini-1.5-flash"
	DefaultEndpointTimeout       = 30 * time.Second
	DefaultEndpointMaxAttempts   = 5
	DefaultEndpointInitialDelay  = 1 * time.Second
	DefaultEndpointBackoffFactor = 2.0
	DefaultMaxTitleLength        = 100
	DefaultMaxDescriptionLength  = 200
	DefaultMaxSummaryLength      = 100
	DefaultMaxReviewLength       = 100
	DefaultDatabaseFile          = "listings.db"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Provider names the wire protocol spoken by the model endpoint.
type Provider string

// Provider values.
const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Endpoint configures the generative model endpoint.
type Endpoint struct {
	provider      Provider
	baseURL       string
	model         string
	apiKey        string
	timeout       time.Duration
	maxAttempts   int
	initialDelay  time.Duration
	backoffFactor float64
}

// NewEndpoint creates a new Endpoint with defaults.
func NewEndpoint() Endpoint {
	return Endpoint{
		provider:      DefaultEndpointProvider,
		baseURL:       DefaultEndpointBaseURL,
		model:         DefaultEndpointModel,
		timeout:       DefaultEndpointTimeout,
		maxAttempts:   DefaultEndpointMaxAttempts,
		initialDelay:  DefaultEndpointInitialDelay,
		backoffFactor: DefaultEndpointBackoffFactor,
	}
}

// Provider returns the endpoint protocol.
func (e Endpoint) Provider() Provider { return e.provider }

// BaseURL returns the base URL for the endpoint.
func (e Endpoint) BaseURL() string { return e.baseURL }

// Model returns the model identifier.
func (e Endpoint) Model() string { return e.model }

// APIKey returns the API key.
func (e Endpoint) APIKey() string { return e.apiKey }

// Timeout returns the per-request timeout.
func (e Endpoint) Timeout() time.Duration { return e.timeout }

// MaxAttempts returns the maximum number of attempts per prompt.
func (e Endpoint) MaxAttempts() int { return e.maxAttempts }

// InitialDelay returns the first backoff delay.
func (e Endpoint) InitialDelay() time.Duration { return e.initialDelay }

// BackoffFactor returns the backoff multiplier.
func (e Endpoint) BackoffFactor() float64 { return e.backoffFactor }

// IsConfigured returns true if the endpoint can be called.
func (e Endpoint) IsConfigured() bool {
	return e.model != "" && e.apiKey != ""
}

// EndpointOption is a functional option for Endpoint.
type EndpointOption func(*Endpoint)

// WithProvider sets the endpoint protocol.
func WithProvider(p Provider) EndpointOption {
	return func(e *Endpoint) { e.provider = p }
}

// WithBaseURL sets the base URL.
func WithBaseURL(url string) EndpointOption {
	return func(e *Endpoint) { e.baseURL = strings.TrimRight(url, "/") }
}

// WithModel sets the model.
func WithModel(model string) EndpointOption {
	return func(e *Endpoint) { e.model = model }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) EndpointOption {
	return func(e *Endpoint) { e.apiKey = key }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) EndpointOption {
	return func(e *Endpoint) { e.timeout = d }
}

// WithMaxAttempts sets the attempt budget.
func WithMaxAttempts(n int) EndpointOption {
	return func(e *Endpoint) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithInitialDelay sets the first backoff delay.
func WithInitialDelay(d time.Duration) EndpointOption {
	return func(e *Endpoint) { e.initialDelay = d }
}

// WithBackoffFactor sets the backoff multiplier.
func WithBackoffFactor(f float64) EndpointOption {
	return func(e *Endpoint) { e.backoffFactor = f }
}

// NewEndpointWithOptions creates an Endpoint with functional options.
func NewEndpointWithOptions(opts ...EndpointOption) Endpoint {
	e := NewEndpoint()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Limits holds the maximum length, in characters, of each generated field.
type Limits struct {
	title       int
	description int
	summary     int
	review      int
}

// NewLimits creates Limits with defaults.
func NewLimits() Limits {
	return Limits{
		title:       DefaultMaxTitleLength,
		description: DefaultMaxDescriptionLength,
		summary:     DefaultMaxSummaryLength,
		review:      DefaultMaxReviewLength,
	}
}

// Title returns the title bound.
func (l Limits) Title() int { return l.title }

// Description returns the description bound.
func (l Limits) Description() int { return l.description }

// Summary returns the summary bound.
func (l Limits) Summary() int { return l.summary }

// Review returns the review bound.
func (l Limits) Review() int { return l.review }

// WithTitle returns a copy with the title bound replaced.
func (l Limits) WithTitle(n int) Limits {
	if n > 0 {
		l.title = n
	}
	return l
}

// WithDescription returns a copy with the description bound replaced.
func (l Limits) WithDescription(n int) Limits {
	if n > 0 {
		l.description = n
	}
	return l
}

// WithSummary returns a copy with the summary bound replaced.
func (l Limits) WithSummary(n int) Limits {
	if n > 0 {
		l.summary = n
	}
	return l
}

// WithReview returns a copy with the review bound replaced.
func (l Limits) WithReview(n int) Limits {
	if n > 0 {
		l.review = n
	}
	return l
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	dataDir     string
	dbURL       string
	logLevel    string
	logFormat   LogFormat
	metricsFile string
	batchLimit  int
	batchOffset int
	endpoint    Endpoint
	limits      Limits
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".listingllm"
	}
	return filepath.Join(home, ".listingllm")
}

// PrepareDataDir creates the data directory if it does not exist and returns it.
func PrepareDataDir(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		dataDir:     dataDir,
		dbURL:       "sqlite:///" + filepath.Join(dataDir, DefaultDatabaseFile),
		logLevel:    DefaultLogLevel,
		logFormat:   LogFormatPretty,
		batchLimit:  DefaultBatchLimit,
		batchOffset: DefaultBatchOffset,
		endpoint:    NewEndpoint(),
		limits:      NewLimits(),
	}
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// MetricsFile returns the path batch metrics are written to, or "".
func (c AppConfig) MetricsFile() string { return c.metricsFile }

// BatchLimit returns the default number of listings per run.
func (c AppConfig) BatchLimit() int { return c.batchLimit }

// BatchOffset returns the default starting offset.
func (c AppConfig) BatchOffset() int { return c.batchOffset }

// Endpoint returns the model endpoint configuration.
func (c AppConfig) Endpoint() Endpoint { return c.endpoint }

// Limits returns the output length bounds.
func (c AppConfig) Limits() Limits { return c.limits }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	_, err := PrepareDataDir(c.dataDir)
	return err
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Update DB URL if it was using the default
		if c.dbURL == "" || strings.HasSuffix(c.dbURL, DefaultDatabaseFile) {
			c.dbURL = "sqlite:///" + filepath.Join(dir, DefaultDatabaseFile)
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithMetricsFile sets the metrics output path.
func WithMetricsFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.metricsFile = path }
}

// WithBatchLimit sets the default number of listings per run.
func WithBatchLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.batchLimit = n
		}
	}
}

// WithBatchOffset sets the default starting offset.
func WithBatchOffset(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n >= 0 {
			c.batchOffset = n
		}
	}
}

// WithEndpoint sets the model endpoint.
func WithEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.endpoint = e }
}

// WithLimits sets the output length bounds.
func WithLimits(l Limits) AppConfigOption {
	return func(c *AppConfig) { c.limits = l }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// The API key and database credentials are never included.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("provider", string(c.endpoint.provider)),
		slog.String("base_url", c.endpoint.baseURL),
		slog.String("model", c.endpoint.model),
		slog.Bool("api_key_set", c.endpoint.apiKey != ""),
		slog.Int("max_attempts", c.endpoint.maxAttempts),
		slog.Duration("initial_delay", c.endpoint.initialDelay),
		slog.Int("batch_limit", c.batchLimit),
		slog.Int("batch_offset", c.batchOffset),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}
