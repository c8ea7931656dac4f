// Package deepgram implements dictation over Deepgram's streaming
// websocket API. Microphone frames are streamed while the learner speaks and
// the transcript ends at Deepgram's speech_final marker.
package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abhisek/drillbuddy/internal/speech"
	"github.com/abhisek/drillbuddy/internal/speech/audio"
)

const defaultURL = "wss://api.deepgram.com/v1/listen"

// Capturer records one utterance, handing each frame to opts.OnFrame.
type Capturer interface {
	Capture(ctx context.Context, opts audio.CaptureOptions) ([]int16, error)
}

// Config holds Deepgram connection settings.
type Config struct {
	APIKey string
	URL    string
	Model  string

	// Endpointing is the server-side silence, in milliseconds, that marks
	// speech_final.
	Endpointing int

	// FinalizeWait bounds how long to wait for trailing results after the
	// local capture has stopped.
	FinalizeWait time.Duration
}

func (c Config) withDefaults() Config {
	if c.URL == "" {
		c.URL = defaultURL
	}
	if c.Model == "" {
		c.Model = "nova-3"
	}
	if c.Endpointing <= 0 {
		c.Endpointing = 300
	}
	if c.FinalizeWait <= 0 {
		c.FinalizeWait = 2 * time.Second
	}
	return c
}

// Recognizer streams one utterance per Listen call.
type Recognizer struct {
	cfg      Config
	capturer Capturer
	logger   *slog.Logger
}

func NewRecognizer(cfg Config, capturer Capturer, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recognizer{cfg: cfg.withDefaults(), capturer: capturer, logger: logger}
}

func (r *Recognizer) Name() string { return "deepgram" }

func (r *Recognizer) Listen(ctx context.Context, opts speech.ListenOptions) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, err := dial(ctx, r.cfg, opts.Language, r.logger)
	if err != nil {
		if ctx.Err() != nil {
			return "", speech.ErrCanceled
		}
		return "", fmt.Errorf("%w: %v", speech.ErrUnavailable, err)
	}
	defer st.Close()

	captured := make(chan error, 1)
	go func() {
		copts := audio.DefaultCaptureOptions()
		if opts.MaxDuration > 0 {
			copts.MaxDuration = opts.MaxDuration
		}
		copts.OnFrame = func(frame []int16) {
			_ = st.Send(audio.EncodePCM16(frame))
		}
		_, err := r.capturer.Capture(ctx, copts)
		captured <- err
	}()

	var parts []string
	var grace <-chan time.Time
	done := func() (string, error) {
		if len(parts) == 0 {
			return "", speech.ErrNoMatch
		}
		return strings.Join(parts, " "), nil
	}

	for {
		select {
		case <-ctx.Done():
			return "", speech.ErrCanceled

		case err := <-captured:
			captured = nil
			if err != nil && !errors.Is(err, speech.ErrNoMatch) {
				return "", err
			}
			_ = st.Finalize()
			grace = time.After(r.cfg.FinalizeWait)

		case ev := <-st.events:
			if ev.err != nil {
				if len(parts) > 0 {
					return done()
				}
				return "", fmt.Errorf("%w: %v", speech.ErrUnavailable, ev.err)
			}
			if ev.segmentFinal && ev.text != "" {
				parts = append(parts, ev.text)
			}
			if ev.speechFinal && len(parts) > 0 {
				return done()
			}

		case <-grace:
			return done()
		}
	}
}

type event struct {
	text         string
	segmentFinal bool
	speechFinal  bool
	err          error
}

// response is one message from the listen endpoint.
type response struct {
	Type    string `json:"type"`
	Channel struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"channel"`
	IsFinal     bool `json:"is_final"`
	SpeechFinal bool `json:"speech_final"`
}

// stream is one open listen connection.
type stream struct {
	conn      *websocket.Conn
	events    chan event
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	wg        sync.WaitGroup
	logger    *slog.Logger
}

func dial(ctx context.Context, cfg Config, language string, logger *slog.Logger) (*stream, error) {
	q := url.Values{}
	q.Set("model", cfg.Model)
	q.Set("encoding", "linear16")
	q.Set("sample_rate", strconv.Itoa(audio.SampleRate))
	q.Set("channels", "1")
	q.Set("interim_results", "true")
	q.Set("endpointing", strconv.Itoa(cfg.Endpointing))
	if language != "" {
		q.Set("language", language)
	}

	headers := http.Header{}
	headers.Set("Authorization", "Token "+cfg.APIKey)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.URL+"?"+q.Encode(), headers)
	if err != nil {
		return nil, fmt.Errorf("connect to deepgram: %w", err)
	}

	s := &stream{
		conn:   conn,
		events: make(chan event, 32),
		done:   make(chan struct{}),
		logger: logger,
	}
	s.wg.Add(1)
	go s.readLoop()
	return s, nil
}

// Send streams one chunk of linear16 audio.
func (s *stream) Send(pcm []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return errors.New("stream closed")
	default:
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, pcm)
}

// Finalize asks the server to flush results for audio sent so far.
func (s *stream) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return nil
	default:
	}
	return s.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"Finalize"}`))
}

func (s *stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		close(s.done)
		_ = s.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"CloseStream"}`))
		s.mu.Unlock()

		err = s.conn.Close()
		s.wg.Wait()
	})
	return err
}

func (s *stream) readLoop() {
	defer s.wg.Done()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			s.emit(event{err: err})
			return
		}

		var resp response
		if err := json.Unmarshal(msg, &resp); err != nil {
			s.logger.Debug("deepgram: unparseable message", "error", err)
			continue
		}
		if resp.Type != "Results" {
			continue
		}

		var text string
		if len(resp.Channel.Alternatives) > 0 {
			text = strings.TrimSpace(resp.Channel.Alternatives[0].Transcript)
		}
		if text == "" && !resp.IsFinal && !resp.SpeechFinal {
			continue
		}
		if !s.emit(event{text: text, segmentFinal: resp.IsFinal, speechFinal: resp.SpeechFinal}) {
			return
		}
	}
}

func (s *stream) emit(ev event) bool {
	select {
	case <-s.done:
		return false
	case s.events <- ev:
		return true
	}
}
