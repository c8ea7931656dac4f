package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "DEEPGRAM_API_KEY", "DRILLBUDDY_OPENAI_API_KEY", "DRILLBUDDY_DEEPGRAM_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if !cfg.Narration.Enabled || cfg.Narration.Engine != "auto" {
		t.Errorf("Narration = %+v, want enabled auto", cfg.Narration)
	}
	if cfg.Session.Quota != 5 {
		t.Errorf("Quota = %d, want 5", cfg.Session.Quota)
	}
	if cfg.Timing.HintAfter != 2 {
		t.Errorf("HintAfter = %d, want 2", cfg.Timing.HintAfter)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRILLBUDDY_NARRATION", "false")
	t.Setenv("DRILLBUDDY_DICTATION_ENGINE", "deepgram")
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("DRILLBUDDY_DICTATION_MAX", "7s")
	t.Setenv("DRILLBUDDY_FEEDBACK_MIN_MS", "800")
	t.Setenv("DRILLBUDDY_QUOTA", "12")
	t.Setenv("DRILLBUDDY_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Narration.Enabled {
		t.Error("narration should be disabled")
	}
	if cfg.DeepgramAPIKey != "dg-key" {
		t.Errorf("DeepgramAPIKey = %q", cfg.DeepgramAPIKey)
	}
	if cfg.Dictation.MaxDuration != 7*time.Second {
		t.Errorf("MaxDuration = %s, want 7s", cfg.Dictation.MaxDuration)
	}
	if cfg.Timing.FeedbackMin != 800*time.Millisecond {
		t.Errorf("FeedbackMin = %s, want 800ms", cfg.Timing.FeedbackMin)
	}
	if cfg.Session.Quota != 12 {
		t.Errorf("Quota = %d, want 12", cfg.Session.Quota)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFromEnv_PrefixedKeyWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "plain")
	t.Setenv("DRILLBUDDY_OPENAI_API_KEY", "prefixed")

	cfg, _ := FromEnv()
	if cfg.OpenAIAPIKey != "prefixed" {
		t.Errorf("OpenAIAPIKey = %q, want prefixed", cfg.OpenAIAPIKey)
	}
}

func TestFromEnv_MalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRILLBUDDY_QUOTA", "lots")
	t.Setenv("DRILLBUDDY_NOTIFY", "sometimes")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, name := range []string{"DRILLBUDDY_QUOTA", "DRILLBUDDY_NOTIFY"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"openai narration without key", func(c *Config) { c.Narration.Engine = "openai" }, "OPENAI_API_KEY"},
		{"unknown dictation engine", func(c *Config) { c.Dictation.Engine = "telepathy" }, "unknown dictation engine"},
		{"deepgram without key", func(c *Config) { c.Dictation.Engine = "deepgram" }, "DEEPGRAM_API_KEY"},
		{"inverted delays", func(c *Config) { c.Timing.FeedbackMin = 10 * time.Second }, "exceeds max"},
		{"zero quota", func(c *Config) { c.Session.Quota = 0 }, "quota"},
		{"zero hint threshold", func(c *Config) { c.Timing.HintAfter = 0 }, "hint threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestTrackerConfig(t *testing.T) {
	cfg := Default()
	cfg.Session.Quota = 3
	tc := cfg.TrackerConfig()
	if tc.Quota != 3 || tc.BaseBonus != 10 || tc.PenaltyPerWrong != 2 {
		t.Errorf("TrackerConfig() = %+v", tc)
	}
}
