package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.DataDir)
	assert.Equal(t, "", cfg.DBURL)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, 10, cfg.BatchLimit)
	assert.Equal(t, 0, cfg.BatchOffset)
	assert.Equal(t, "gemini", cfg.ModelEndpoint.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.ModelEndpoint.Model)
	assert.Equal(t, "", cfg.ModelEndpoint.APIKey)
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	// Struct tag defaults must be literals; keep them in sync with config.go.
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultBatchLimit, cfg.BatchLimit)
	assert.Equal(t, DefaultBatchOffset, cfg.BatchOffset)
	assert.Equal(t, string(DefaultEndpointProvider), cfg.ModelEndpoint.Provider)
	assert.Equal(t, DefaultEndpointBaseURL, cfg.ModelEndpoint.BaseURL)
	assert.Equal(t, DefaultEndpointModel, cfg.ModelEndpoint.Model)
	assert.Equal(t, DefaultEndpointTimeout.Seconds(), cfg.ModelEndpoint.Timeout)
	assert.Equal(t, DefaultEndpointMaxAttempts, cfg.ModelEndpoint.MaxAttempts)
	assert.Equal(t, DefaultEndpointInitialDelay.Seconds(), cfg.ModelEndpoint.InitialDelay)
	assert.Equal(t, DefaultEndpointBackoffFactor, cfg.ModelEndpoint.BackoffFactor)
	assert.Equal(t, DefaultMaxTitleLength, cfg.MaxTitleLength)
	assert.Equal(t, DefaultMaxDescriptionLength, cfg.MaxDescriptionLength)
	assert.Equal(t, DefaultMaxSummaryLength, cfg.MaxSummaryLength)
	assert.Equal(t, DefaultMaxReviewLength, cfg.MaxReviewLength)
}

func TestLoadFromEnv_OverrideValues(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("DB_URL", "postgres://localhost/listings")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("BATCH_LIMIT", "25")
	t.Setenv("BATCH_OFFSET", "40")
	t.Setenv("MODEL_ENDPOINT_PROVIDER", "openai")
	t.Setenv("MODEL_ENDPOINT_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("MODEL_ENDPOINT_MODEL", "llama3")
	t.Setenv("MODEL_ENDPOINT_API_KEY", "key-123")
	t.Setenv("MODEL_ENDPOINT_TIMEOUT", "12.5")
	t.Setenv("MODEL_ENDPOINT_MAX_ATTEMPTS", "3")
	t.Setenv("MODEL_ENDPOINT_INITIAL_DELAY", "0.5")
	t.Setenv("MODEL_ENDPOINT_BACKOFF_FACTOR", "3")
	t.Setenv("MAX_DESCRIPTION_LENGTH", "250")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	app := cfg.ToAppConfig()
	assert.Equal(t, "postgres://localhost/listings", app.DBURL())
	assert.Equal(t, "DEBUG", app.LogLevel())
	assert.Equal(t, LogFormatJSON, app.LogFormat())
	assert.Equal(t, 25, app.BatchLimit())
	assert.Equal(t, 40, app.BatchOffset())
	assert.Equal(t, 250, app.Limits().Description())
	assert.Equal(t, 100, app.Limits().Title())

	e := app.Endpoint()
	assert.Equal(t, ProviderOpenAI, e.Provider())
	assert.Equal(t, "http://localhost:11434/v1", e.BaseURL())
	assert.Equal(t, "llama3", e.Model())
	assert.Equal(t, "key-123", e.APIKey())
	assert.Equal(t, 12500*time.Millisecond, e.Timeout())
	assert.Equal(t, 3, e.MaxAttempts())
	assert.Equal(t, 500*time.Millisecond, e.InitialDelay())
	assert.Equal(t, 3.0, e.BackoffFactor())
}

func TestLoadFromEnv_InvalidInteger(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("BATCH_LIMIT", "ten")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnvWithPrefix(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("LISTINGLLM_BATCH_LIMIT", "7")

	cfg, err := LoadFromEnvWithPrefix("LISTINGLLM")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.BatchLimit)
}

func TestParseProvider(t *testing.T) {
	assert.Equal(t, ProviderOpenAI, parseProvider("OpenAI"))
	assert.Equal(t, ProviderGemini, parseProvider("gemini"))
	assert.Equal(t, ProviderGemini, parseProvider(""))
	assert.Equal(t, ProviderGemini, parseProvider("unknown"))
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnvVars(t)

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "MODEL_ENDPOINT_API_KEY=from-dotenv\nBATCH_LIMIT=3\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	cfg, err := LoadConfig(envPath)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Endpoint().APIKey())
	assert.Equal(t, 3, cfg.BatchLimit())
}

func TestLoadConfig_EnvironmentWinsOverDotEnv(t *testing.T) {
	clearEnvVars(t)

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("BATCH_LIMIT=3\n"), 0o600))
	t.Setenv("BATCH_LIMIT", "9")

	cfg, err := LoadConfig(envPath)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.BatchLimit())
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)

	err = MustLoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

// clearEnvVars unsets every variable the config reads, restoring them after the test.
func clearEnvVars(t *testing.T) {
	t.Helper()

	vars := []string{
		"DATA_DIR",
		"DB_URL",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"METRICS_FILE",
		"BATCH_LIMIT",
		"BATCH_OFFSET",
		"MODEL_ENDPOINT_PROVIDER",
		"MODEL_ENDPOINT_BASE_URL",
		"MODEL_ENDPOINT_MODEL",
		"MODEL_ENDPOINT_API_KEY",
		"MODEL_ENDPOINT_TIMEOUT",
		"MODEL_ENDPOINT_MAX_ATTEMPTS",
		"MODEL_ENDPOINT_INITIAL_DELAY",
		"MODEL_ENDPOINT_BACKOFF_FACTOR",
		"MAX_TITLE_LENGTH",
		"MAX_DESCRIPTION_LENGTH",
		"MAX_SUMMARY_LENGTH",
		"MAX_REVIEW_LENGTH",
	}

	for _, v := range vars {
		t.Setenv(v, "")
		_ = os.Unsetenv(v)
	}
}
