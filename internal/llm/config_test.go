package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for name := range envVars(&Config{}) {
		t.Setenv(name, "")
	}
	for _, name := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(name, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("DRILLBUDDY_LLM_PROVIDER", "openai")
	t.Setenv("DRILLBUDDY_OPENAI_API_KEY", "sk-test")
	t.Setenv("DRILLBUDDY_OPENAI_BASE_URL", "http://localhost:1234/v1")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "http://localhost:1234/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverConfig(t *testing.T) {
	clearLLMEnv(t)
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "o", cfg.OpenAI.APIKey)

	t.Setenv("DRILLBUDDY_LLM_PROVIDER", "mock")
	cfg, ok = DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "mock", cfg.Provider)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic missing key", Config{Provider: "anthropic"}, "DRILLBUDDY_ANTHROPIC_API_KEY"},
		{"gemini missing key", Config{Provider: "gemini"}, "DRILLBUDDY_GEMINI_API_KEY"},
		{"openrouter ok", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "k"}}, ""},
		{"mock", Config{Provider: "mock"}, ""},
		{"unknown", Config{Provider: "llama"}, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.75, c.Cost(1_000_000, 1_000_000), 1e-9)
	assert.Nil(t, LookupCost("made-up"))
}
