// Package config collects runtime settings from DRILLBUDDY_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/drillbuddy/internal/session"
	"github.com/abhisek/drillbuddy/internal/turn"
)

// Config holds everything outside the LLM settings, which llm.DiscoverConfig
// owns.
type Config struct {
	Narration NarrationConfig
	Dictation DictationConfig
	Timing    turn.Timing
	Session   SessionConfig

	// OpenAIAPIKey and DeepgramAPIKey back the cloud speech engines.
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	DeepgramAPIKey string

	// Notify enables a desktop notification when a session completes.
	Notify bool

	// LogFile defaults to drillbuddy.log in the data directory.
	LogFile  string
	LogLevel slog.Level

	SentryDSN string
}

// NarrationConfig selects the text-to-speech engine.
type NarrationConfig struct {
	Enabled bool
	// Engine is one of "auto", "system", "openai" or "none".
	Engine string
	Voice  string
	// Rate is words per minute for system engines. Zero keeps the default.
	Rate int
}

// DictationConfig selects the speech-to-text engine.
type DictationConfig struct {
	Enabled bool
	// Engine is one of "auto", "openai", "deepgram" or "none".
	Engine      string
	Language    string
	MaxDuration time.Duration
}

// SessionConfig sizes sessions and their completion bonus.
type SessionConfig struct {
	Quota           int
	BaseBonus       int
	PenaltyPerWrong int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	sc := session.DefaultConfig()
	return Config{
		Narration: NarrationConfig{Enabled: true, Engine: "auto"},
		Dictation: DictationConfig{Enabled: true, Engine: "auto", Language: "en", MaxDuration: 10 * time.Second},
		Timing:    turn.DefaultTiming(),
		Session: SessionConfig{
			Quota:           sc.Quota,
			BaseBonus:       sc.BaseBonus,
			PenaltyPerWrong: sc.PenaltyPerWrong,
		},
		Notify:   true,
		LogLevel: slog.LevelInfo,
	}
}

// FromEnv overlays DRILLBUDDY_* variables on the defaults. The standard
// OPENAI_API_KEY and DEEPGRAM_API_KEY are used when the prefixed variables
// are unset. Malformed values are reported together.
func FromEnv() (Config, error) {
	cfg := Default()
	p := &parser{}

	p.flag("DRILLBUDDY_NARRATION", &cfg.Narration.Enabled)
	p.text("DRILLBUDDY_NARRATION_ENGINE", &cfg.Narration.Engine)
	p.text("DRILLBUDDY_VOICE", &cfg.Narration.Voice)
	p.number("DRILLBUDDY_SPEECH_RATE", &cfg.Narration.Rate)

	p.flag("DRILLBUDDY_DICTATION", &cfg.Dictation.Enabled)
	p.text("DRILLBUDDY_DICTATION_ENGINE", &cfg.Dictation.Engine)
	p.text("DRILLBUDDY_DICTATION_LANGUAGE", &cfg.Dictation.Language)
	p.duration("DRILLBUDDY_DICTATION_MAX", &cfg.Dictation.MaxDuration)

	p.millis("DRILLBUDDY_FEEDBACK_MS_PER_CHAR", &cfg.Timing.FeedbackPerChar)
	p.millis("DRILLBUDDY_FEEDBACK_MIN_MS", &cfg.Timing.FeedbackMin)
	p.millis("DRILLBUDDY_FEEDBACK_MAX_MS", &cfg.Timing.FeedbackMax)
	p.millis("DRILLBUDDY_REVEAL_DELAY_MS", &cfg.Timing.RevealDelay)
	p.number("DRILLBUDDY_HINT_AFTER", &cfg.Timing.HintAfter)

	p.number("DRILLBUDDY_QUOTA", &cfg.Session.Quota)
	p.number("DRILLBUDDY_BASE_BONUS", &cfg.Session.BaseBonus)
	p.number("DRILLBUDDY_PENALTY_PER_WRONG", &cfg.Session.PenaltyPerWrong)

	cfg.OpenAIAPIKey = firstEnv("DRILLBUDDY_OPENAI_API_KEY", "OPENAI_API_KEY")
	cfg.OpenAIBaseURL = os.Getenv("DRILLBUDDY_OPENAI_BASE_URL")
	cfg.DeepgramAPIKey = firstEnv("DRILLBUDDY_DEEPGRAM_API_KEY", "DEEPGRAM_API_KEY")

	p.flag("DRILLBUDDY_NOTIFY", &cfg.Notify)
	p.text("DRILLBUDDY_LOG_FILE", &cfg.LogFile)
	if v := os.Getenv("DRILLBUDDY_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			p.errs = append(p.errs, fmt.Errorf("DRILLBUDDY_LOG_LEVEL: %w", err))
		}
	}
	p.text("DRILLBUDDY_SENTRY_DSN", &cfg.SentryDSN)

	return cfg, errors.Join(p.errs...)
}

// Validate checks for settings that cannot work together.
func (c Config) Validate() error {
	var errs []error
	switch c.Narration.Engine {
	case "auto", "system", "none":
	case "openai":
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("narration engine openai requires OPENAI_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown narration engine %q", c.Narration.Engine))
	}
	switch c.Dictation.Engine {
	case "auto", "none":
	case "openai":
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("dictation engine openai requires OPENAI_API_KEY"))
		}
	case "deepgram":
		if c.DeepgramAPIKey == "" {
			errs = append(errs, errors.New("dictation engine deepgram requires DEEPGRAM_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown dictation engine %q", c.Dictation.Engine))
	}
	if c.Narration.Rate < 0 {
		errs = append(errs, fmt.Errorf("speech rate must not be negative, got %d", c.Narration.Rate))
	}
	if c.Timing.FeedbackMin > c.Timing.FeedbackMax {
		errs = append(errs, fmt.Errorf("feedback min delay %s exceeds max %s", c.Timing.FeedbackMin, c.Timing.FeedbackMax))
	}
	if c.Timing.HintAfter < 1 {
		errs = append(errs, fmt.Errorf("hint threshold must be at least 1, got %d", c.Timing.HintAfter))
	}
	if c.Session.Quota < 1 {
		errs = append(errs, fmt.Errorf("quota must be at least 1, got %d", c.Session.Quota))
	}
	if c.Session.BaseBonus < 0 || c.Session.PenaltyPerWrong < 0 {
		errs = append(errs, errors.New("bonus and penalty must not be negative"))
	}
	return errors.Join(errs...)
}

// TrackerConfig returns the tracker configuration for a quota session.
func (c Config) TrackerConfig() session.Config {
	return session.Config{
		Mode:            session.ModeQuota,
		Quota:           c.Session.Quota,
		BaseBonus:       c.Session.BaseBonus,
		PenaltyPerWrong: c.Session.PenaltyPerWrong,
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// parser reads typed variables, collecting errors instead of stopping.
type parser struct {
	errs []error
}

func (p *parser) text(name string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

func (p *parser) flag(name string, dst *bool) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a boolean", name, v))
		return
	}
	*dst = b
}

func (p *parser) number(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not an integer", name, v))
		return
	}
	*dst = n
}

func (p *parser) millis(name string, dst *time.Duration) {
	ms := -1
	p.number(name, &ms)
	if ms >= 0 {
		*dst = time.Duration(ms) * time.Millisecond
	}
}

func (p *parser) duration(name string, dst *time.Duration) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = d
}
