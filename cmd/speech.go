package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/drillbuddy/internal/config"
	"github.com/abhisek/drillbuddy/internal/speech"
	"github.com/abhisek/drillbuddy/internal/speech/audio"
	"github.com/abhisek/drillbuddy/internal/speech/deepgram"
	"github.com/abhisek/drillbuddy/internal/speech/openai"
	"github.com/abhisek/drillbuddy/internal/speech/system"
)

// defaultRate is the system engines' words-per-minute baseline.
const defaultRate = 175

// speechEngines owns the narration and dictation backends and the audio
// device session behind them.
type speechEngines struct {
	synth      speech.Synthesizer
	recognizer speech.Recognizer
	audioOpen  bool
}

// openSpeech builds the engines cfg asks for. Missing engines are not
// errors: narration falls back to silence and dictation to typing.
func openSpeech(cfg config.Config, logger *slog.Logger) *speechEngines {
	se := &speechEngines{}

	needsAudio := (cfg.Narration.Enabled && cfg.Narration.Engine == "openai") ||
		(cfg.Dictation.Enabled && cfg.Dictation.Engine != "none")
	if needsAudio {
		if err := audio.Initialize(); err != nil {
			logger.Warn("audio unavailable", "error", err)
		} else {
			se.audioOpen = true
		}
	}

	if cfg.Narration.Enabled {
		synth, err := newSynthesizer(cfg, se.audioOpen)
		if err != nil {
			logger.Warn("narration unavailable", "engine", cfg.Narration.Engine, "error", err)
		} else {
			se.synth = synth
			logger.Info("narration ready", "engine", synth.Name())
		}
	}

	if cfg.Dictation.Enabled {
		rec, err := newRecognizer(cfg, se.audioOpen, logger)
		if err != nil {
			logger.Warn("dictation unavailable", "engine", cfg.Dictation.Engine, "error", err)
		} else {
			se.recognizer = rec
			logger.Info("dictation ready", "engine", rec.Name())
		}
	}
	return se
}

func newSynthesizer(cfg config.Config, audioOpen bool) (speech.Synthesizer, error) {
	switch cfg.Narration.Engine {
	case "none":
		return nil, speech.ErrNoEngine
	case "system":
		return system.Detect(cfg.Narration.Rate)
	case "openai":
		return openAISynthesizer(cfg, audioOpen)
	}

	// auto prefers the local command, then the cloud voice.
	if s, err := system.Detect(cfg.Narration.Rate); err == nil {
		return s, nil
	}
	if cfg.OpenAIAPIKey != "" {
		return openAISynthesizer(cfg, audioOpen)
	}
	return nil, speech.ErrNoEngine
}

func openAISynthesizer(cfg config.Config, audioOpen bool) (speech.Synthesizer, error) {
	if !audioOpen || !audio.HasOutput() {
		return nil, fmt.Errorf("openai narration: %w", speech.ErrNoEngine)
	}
	var speed float64
	if cfg.Narration.Rate > 0 {
		speed = float64(cfg.Narration.Rate) / defaultRate
	}
	return openai.NewSynthesizer(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Voice:   cfg.Narration.Voice,
		Speed:   speed,
	}, audio.NewPlayer()), nil
}

func newRecognizer(cfg config.Config, audioOpen bool, logger *slog.Logger) (speech.Recognizer, error) {
	if cfg.Dictation.Engine == "none" {
		return nil, speech.ErrNoEngine
	}
	if !audioOpen || !audio.HasInput() {
		return nil, fmt.Errorf("no microphone: %w", speech.ErrNoEngine)
	}

	engine := cfg.Dictation.Engine
	if engine == "auto" {
		switch {
		case cfg.DeepgramAPIKey != "":
			engine = "deepgram"
		case cfg.OpenAIAPIKey != "":
			engine = "openai"
		default:
			return nil, errors.New("dictation needs DEEPGRAM_API_KEY or OPENAI_API_KEY")
		}
	}

	switch engine {
	case "deepgram":
		return deepgram.NewRecognizer(deepgram.Config{APIKey: cfg.DeepgramAPIKey}, audio.NewRecorder(), logger), nil
	case "openai":
		return openai.NewRecognizer(openai.Config{APIKey: cfg.OpenAIAPIKey, BaseURL: cfg.OpenAIBaseURL}, audio.NewRecorder()), nil
	}
	return nil, fmt.Errorf("unknown dictation engine %q", engine)
}

func (se *speechEngines) Close() {
	if se.audioOpen {
		_ = audio.Terminate()
		se.audioOpen = false
	}
}
