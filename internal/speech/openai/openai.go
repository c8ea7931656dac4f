// Package openai implements narration and dictation on the OpenAI audio API:
// text-to-speech rendered as raw PCM and Whisper transcription.
package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/abhisek/drillbuddy/internal/speech"
	"github.com/abhisek/drillbuddy/internal/speech/audio"
)

// pcmRate is the sample rate of the API's "pcm" response format.
const pcmRate = 24000

// Player plays PCM samples.
type Player interface {
	Play(ctx context.Context, pcm []int16, sampleRate int, progress func(played int)) error
	Pause() error
	Resume() error
}

// Capturer records one utterance.
type Capturer interface {
	Capture(ctx context.Context, opts audio.CaptureOptions) ([]int16, error)
}

// Config holds the API settings shared by both directions.
type Config struct {
	APIKey  string
	BaseURL string
	Voice   string
	// Speed is the speaking rate, 0.25 to 4.0. Zero means 1.0.
	Speed float64
}

func newClient(cfg Config) *goopenai.Client {
	c := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return goopenai.NewClientWithConfig(c)
}

// Synthesizer speaks through OpenAI TTS.
type Synthesizer struct {
	client *goopenai.Client
	player Player
	voice  goopenai.SpeechVoice
	speed  float64
}

// NewSynthesizer returns a synthesizer that plays audio through player.
func NewSynthesizer(cfg Config, player Player) *Synthesizer {
	voice := goopenai.VoiceNova
	if cfg.Voice != "" {
		voice = goopenai.SpeechVoice(cfg.Voice)
	}
	speed := cfg.Speed
	if speed <= 0 {
		speed = 1.0
	}
	return &Synthesizer{client: newClient(cfg), player: player, voice: voice, speed: speed}
}

func (s *Synthesizer) Name() string { return "openai-tts" }

func (s *Synthesizer) Speak(ctx context.Context, text string, boundaries chan<- speech.Boundary) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	pcm, err := s.render(ctx, text)
	if err != nil {
		return err
	}
	tracker := speech.NewBoundaryTracker(text, boundaries)
	total := len(pcm)
	return s.player.Play(ctx, pcm, pcmRate, func(played int) {
		tracker.Progress(ctx, float64(played)/float64(total))
	})
}

func (s *Synthesizer) render(ctx context.Context, text string) ([]int16, error) {
	resp, err := s.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          goopenai.TTSModel1,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: goopenai.SpeechResponseFormatPcm,
		Speed:          s.speed,
	})
	if err != nil {
		return nil, mapError(ctx, err)
	}
	defer resp.Close()
	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, mapError(ctx, err)
	}
	return audio.DecodePCM16(data), nil
}

func (s *Synthesizer) Pause() error  { return s.player.Pause() }
func (s *Synthesizer) Resume() error { return s.player.Resume() }

// Recognizer transcribes a captured utterance with Whisper.
type Recognizer struct {
	client   *goopenai.Client
	capturer Capturer
}

func NewRecognizer(cfg Config, capturer Capturer) *Recognizer {
	return &Recognizer{client: newClient(cfg), capturer: capturer}
}

func (r *Recognizer) Name() string { return "openai-whisper" }

func (r *Recognizer) Listen(ctx context.Context, opts speech.ListenOptions) (string, error) {
	copts := audio.DefaultCaptureOptions()
	if opts.MaxDuration > 0 {
		copts.MaxDuration = opts.MaxDuration
	}
	samples, err := r.capturer.Capture(ctx, copts)
	if err != nil {
		return "", err
	}
	return r.Transcribe(ctx, samples, opts.Language)
}

// Transcribe sends 16 kHz samples to Whisper.
func (r *Recognizer) Transcribe(ctx context.Context, samples []int16, language string) (string, error) {
	wav := audio.EncodeWAV(samples, audio.SampleRate)
	resp, err := r.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    goopenai.Whisper1,
		Reader:   bytes.NewReader(wav),
		FilePath: "answer.wav",
		Language: language,
	})
	if err != nil {
		return "", mapError(ctx, err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", speech.ErrNoMatch
	}
	return text, nil
}

func mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return speech.ErrCanceled
	}
	return fmt.Errorf("%w: %v", speech.ErrUnavailable, err)
}
