package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/listingllm/internal/config"
)

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(config.NewEndpointWithOptions(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew_SelectsProvider(t *testing.T) {
	gemini, err := New(config.NewEndpointWithOptions(config.WithAPIKey("k")), nil)
	require.NoError(t, err)
	assert.IsType(t, &GeminiProvider{}, gemini)

	openaiGen, err := New(config.NewEndpointWithOptions(
		config.WithAPIKey("k"),
		config.WithProvider(config.ProviderOpenAI),
		config.WithModel("gpt-4o-mini"),
	), nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, openaiGen)
}
