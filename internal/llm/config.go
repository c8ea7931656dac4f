package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single generation including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. Drill generation
// needs a fast model more than a smart one.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// envVars maps DRILLBUDDY_* variables onto config fields.
func envVars(cfg *Config) map[string]*string {
	return map[string]*string{
		"DRILLBUDDY_LLM_PROVIDER":       &cfg.Provider,
		"DRILLBUDDY_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"DRILLBUDDY_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"DRILLBUDDY_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"DRILLBUDDY_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"DRILLBUDDY_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"DRILLBUDDY_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"DRILLBUDDY_GEMINI_MODEL":       &cfg.Gemini.Model,
		"DRILLBUDDY_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"DRILLBUDDY_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	}
}

// ConfigFromEnv builds a Config from DRILLBUDDY_* variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, field := range envVars(&cfg) {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	return cfg
}

// DiscoverConfig returns the explicit DRILLBUDDY_* configuration when a
// provider is named, otherwise probes the standard API key variables
// (Gemini, OpenAI, Anthropic, OpenRouter). Returns false if no key is found.
func DiscoverConfig() (Config, bool) {
	if os.Getenv("DRILLBUDDY_LLM_PROVIDER") != "" {
		cfg := ConfigFromEnv()
		return cfg, cfg.Validate() == nil
	}

	cfg := ConfigFromEnv()
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "DRILLBUDDY_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "DRILLBUDDY_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "DRILLBUDDY_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "DRILLBUDDY_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
