package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestInitializeBuiltinOnly(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Initialize(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.LLMProviderRegistry.Has("openai-default"))
	assert.Equal(t, "openai-default", cfg.Defaults.LLMProvider)
	assert.Equal(t, DefaultFilterValuesOverLength, cfg.FilterValuesOverLength())
	assert.False(t, cfg.History.Enabled)

	stats := cfg.Stats()
	assert.Equal(t, 1, stats.LLMProviders)
	assert.Equal(t, 2, stats.Assistants)
}

func TestInitializeWithUserFiles(t *testing.T) {
	t.Setenv("GATEWAY_KEY", "gw-key")
	t.Setenv("GATEWAY_URL", "http://gateway.local/v1")

	dir := t.TempDir()
	writeConfigFile(t, dir, "llm-providers.yaml", `
llm_providers:
  gateway:
    type: openai-compatible
    model: gpt-4o-mini
    api_key_env: GATEWAY_KEY
    base_url: {{.GATEWAY_URL}}
    max_tokens: 2048
    timeout: 45s
`)
	writeConfigFile(t, dir, "anonymizer.yaml", `
defaults:
  llm_provider: gateway
  filter_values_over_length: 500
assistants:
  clean_sensitive_info:
    temperature: 0.7
history:
  enabled: true
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ConfigDir())
	assert.Equal(t, 500, cfg.FilterValuesOverLength())
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, DefaultRetentionConfig(), cfg.History.Retention)

	gateway, err := cfg.GetLLMProvider("gateway")
	require.NoError(t, err)
	assert.Equal(t, "http://gateway.local/v1", gateway.BaseURL)
	assert.Equal(t, 45*time.Second, gateway.Timeout)

	sniff, err := cfg.ResolveAssistant(AssistantSniffSensitiveInfo)
	require.NoError(t, err)
	assert.Equal(t, "gateway", sniff.ProviderName)
	assert.Equal(t, 2048, sniff.MaxTokens)
	assert.Nil(t, sniff.Temperature)

	clean, err := cfg.ResolveAssistant(AssistantCleanSensitiveInfo)
	require.NoError(t, err)
	require.NotNil(t, clean.Temperature)
	assert.InDelta(t, 0.7, *clean.Temperature, 1e-9)
}

func TestInitializeHistoryRetention(t *testing.T) {
	tests := []struct {
		name         string
		history      string
		wantDays     int
		wantInterval time.Duration
	}{
		{
			name:         "explicit zero days keeps runs forever",
			history:      "history:\n  enabled: true\n  retention:\n    retention_days: 0\n",
			wantDays:     0,
			wantInterval: 12 * time.Hour,
		},
		{
			name:         "interval only keeps default days",
			history:      "history:\n  enabled: true\n  retention:\n    cleanup_interval: 1h\n",
			wantDays:     30,
			wantInterval: time.Hour,
		},
		{
			name:         "empty retention block keeps defaults",
			history:      "history:\n  enabled: true\n  retention: {}\n",
			wantDays:     30,
			wantInterval: 12 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "test-key")
			dir := t.TempDir()
			writeConfigFile(t, dir, "anonymizer.yaml", tt.history)

			cfg, err := Initialize(context.Background(), dir)
			require.NoError(t, err)

			require.NotNil(t, cfg.History.Retention)
			assert.Equal(t, tt.wantDays, cfg.History.Retention.RetentionDays)
			assert.Equal(t, tt.wantInterval, cfg.History.Retention.CleanupInterval)
		})
	}
}

func TestInitializeConfigNotFound(t *testing.T) {
	_, err := Initialize(context.Background(), "/nonexistent/directory")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestInitializeInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "anonymizer.yaml", "defaults: [unclosed")

	_, err := Initialize(context.Background(), dir)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidYAML))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "anonymizer.yaml", loadErr.File)
}

func TestInitializeValidationFailure(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	dir := t.TempDir()
	writeConfigFile(t, dir, "anonymizer.yaml", `
assistants:
  sniff_sensitive_info:
    llm_provider: does-not-exist
`)

	_, err := Initialize(context.Background(), dir)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.True(t, errors.Is(err, ErrLLMProviderNotFound))
	assert.Contains(t, err.Error(), "does-not-exist")
	assert.Contains(t, err.Error(), "known providers: openai-default")
}

func TestInitializeUnknownAssistant(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	dir := t.TempDir()
	writeConfigFile(t, dir, "anonymizer.yaml", `
assistants:
  summarize_request:
    max_tokens: 10
`)

	_, err := Initialize(context.Background(), dir)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidReference))
	assert.Contains(t, err.Error(), "summarize_request")
}

func TestInitializeMissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Initialize(context.Background(), t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment variable OPENAI_API_KEY is not set")
}
