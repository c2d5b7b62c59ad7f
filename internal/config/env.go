package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., MODEL_ENDPOINT_API_KEY).
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.listingllm
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/listings.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// MetricsFile is where batch counters are written after each run.
	// Env: METRICS_FILE
	MetricsFile string `envconfig:"METRICS_FILE"`

	// BatchLimit is the number of listings processed per run.
	// Env: BATCH_LIMIT (default: 10)
	BatchLimit int `envconfig:"BATCH_LIMIT" default:"10"`

	// BatchOffset is the number of listings skipped before the run starts.
	// Env: BATCH_OFFSET (default: 0)
	BatchOffset int `envconfig:"BATCH_OFFSET" default:"0"`

	// ModelEndpoint configures the generative model service.
	ModelEndpoint EndpointEnv `envconfig:"MODEL_ENDPOINT"`

	// MaxTitleLength bounds rewritten titles.
	// Env: MAX_TITLE_LENGTH (default: 100)
	MaxTitleLength int `envconfig:"MAX_TITLE_LENGTH" default:"100"`

	// MaxDescriptionLength bounds generated descriptions.
	// Env: MAX_DESCRIPTION_LENGTH (default: 200)
	MaxDescriptionLength int `envconfig:"MAX_DESCRIPTION_LENGTH" default:"200"`

	// MaxSummaryLength bounds generated summaries.
	// Env: MAX_SUMMARY_LENGTH (default: 100)
	MaxSummaryLength int `envconfig:"MAX_SUMMARY_LENGTH" default:"100"`

	// MaxReviewLength bounds generated reviews.
	// Env: MAX_REVIEW_LENGTH (default: 100)
	MaxReviewLength int `envconfig:"MAX_REVIEW_LENGTH" default:"100"`
}

// EndpointEnv holds environment configuration for the model endpoint.
type EndpointEnv struct {
	// Provider selects the wire protocol (gemini or openai).
	// Env: *_PROVIDER (default: gemini)
	Provider string `envconfig:"PROVIDER" default:"gemini"`

	// BaseURL is the base URL for the endpoint.
	// Env: *_BASE_URL
	BaseURL string `envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`

	// Model is the model identifier.
	// Env: *_MODEL (default: gemini-1.5-flash)
	Model string `envconfig:"MODEL" default:"gemini-1.5-flash"`

	// APIKey is the API key for authentication.
	// Env: *_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	// Env: *_TIMEOUT (default: 30)
	Timeout float64 `envconfig:"TIMEOUT" default:"30"`

	// MaxAttempts is the maximum number of attempts per prompt.
	// Env: *_MAX_ATTEMPTS (default: 5)
	MaxAttempts int `envconfig:"MAX_ATTEMPTS" default:"5"`

	// InitialDelay is the first backoff delay in seconds.
	// Env: *_INITIAL_DELAY (default: 1.0)
	InitialDelay float64 `envconfig:"INITIAL_DELAY" default:"1.0"`

	// BackoffFactor is the backoff multiplier.
	// Env: *_BACKOFF_FACTOR (default: 2.0)
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR" default:"2.0"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "LISTINGLLM" would require LISTINGLLM_DB_URL instead of DB_URL.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.MetricsFile != "" {
		cfg = applyOption(cfg, WithMetricsFile(e.MetricsFile))
	}
	cfg = applyOption(cfg, WithBatchLimit(e.BatchLimit))
	cfg = applyOption(cfg, WithBatchOffset(e.BatchOffset))
	cfg = applyOption(cfg, WithEndpoint(e.ModelEndpoint.ToEndpoint()))

	limits := NewLimits().
		WithTitle(e.MaxTitleLength).
		WithDescription(e.MaxDescriptionLength).
		WithSummary(e.MaxSummaryLength).
		WithReview(e.MaxReviewLength)
	cfg = applyOption(cfg, WithLimits(limits))

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// ToEndpoint converts EndpointEnv to Endpoint.
func (e EndpointEnv) ToEndpoint() Endpoint {
	opts := []EndpointOption{
		WithProvider(parseProvider(e.Provider)),
		WithTimeout(seconds(e.Timeout)),
		WithMaxAttempts(e.MaxAttempts),
		WithInitialDelay(seconds(e.InitialDelay)),
		WithBackoffFactor(e.BackoffFactor),
	}

	if e.BaseURL != "" {
		opts = append(opts, WithBaseURL(e.BaseURL))
	}
	if e.Model != "" {
		opts = append(opts, WithModel(e.Model))
	}
	if e.APIKey != "" {
		opts = append(opts, WithAPIKey(e.APIKey))
	}

	return NewEndpointWithOptions(opts...)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}

// parseProvider parses a provider name, defaulting to gemini.
func parseProvider(s string) Provider {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai":
		return ProviderOpenAI
	default:
		return ProviderGemini
	}
}
