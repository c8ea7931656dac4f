package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drillbuddy/internal/speech"
	"github.com/abhisek/drillbuddy/internal/speech/audio"
)

type fakePlayer struct {
	mu     sync.Mutex
	played []int16
	rate   int
}

func (p *fakePlayer) Play(ctx context.Context, pcm []int16, rate int, progress func(int)) error {
	p.mu.Lock()
	p.played, p.rate = pcm, rate
	p.mu.Unlock()
	for off := 0; off < len(pcm); off++ {
		if ctx.Err() != nil {
			return speech.ErrCanceled
		}
		progress(off + 1)
	}
	return nil
}

func (p *fakePlayer) Pause() error  { return nil }
func (p *fakePlayer) Resume() error { return nil }

type fakeCapturer struct {
	samples []int16
	err     error
}

func (c fakeCapturer) Capture(context.Context, audio.CaptureOptions) ([]int16, error) {
	return c.samples, c.err
}

func TestSynthesizerSpeak(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write(audio.EncodePCM16([]int16{1, 2, 3, 4, 5, 6, 7, 8}))
	}))
	defer srv.Close()

	player := &fakePlayer{}
	s := NewSynthesizer(Config{APIKey: "k", BaseURL: srv.URL}, player)

	bounds := make(chan speech.Boundary, 8)
	require.NoError(t, s.Speak(context.Background(), "seven plus five", bounds))

	assert.Equal(t, "seven plus five", got["input"])
	assert.Equal(t, "pcm", got["response_format"])
	assert.Equal(t, []int16{1, 2, 3, 4, 5, 6, 7, 8}, player.played)
	assert.Equal(t, pcmRate, player.rate)
	assert.Len(t, bounds, 3)
}

func TestSynthesizerServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSynthesizer(Config{APIKey: "k", BaseURL: srv.URL}, &fakePlayer{})
	err := s.Speak(context.Background(), "hello", nil)
	assert.ErrorIs(t, err, speech.ErrUnavailable)
}

func TestSynthesizerEmptyText(t *testing.T) {
	s := NewSynthesizer(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"}, &fakePlayer{})
	assert.NoError(t, s.Speak(context.Background(), "  ", nil))
}

func TestRecognizerListen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":" twelve "}`))
	}))
	defer srv.Close()

	r := NewRecognizer(Config{APIKey: "k", BaseURL: srv.URL}, fakeCapturer{samples: make([]int16, 1600)})
	text, err := r.Listen(context.Background(), speech.ListenOptions{Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "twelve", text)
}

func TestRecognizerEmptyTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":""}`))
	}))
	defer srv.Close()

	r := NewRecognizer(Config{APIKey: "k", BaseURL: srv.URL}, fakeCapturer{samples: make([]int16, 10)})
	_, err := r.Listen(context.Background(), speech.ListenOptions{})
	assert.ErrorIs(t, err, speech.ErrNoMatch)
}

func TestRecognizerCaptureError(t *testing.T) {
	r := NewRecognizer(Config{APIKey: "k"}, fakeCapturer{err: speech.ErrPermissionDenied})
	_, err := r.Listen(context.Background(), speech.ListenOptions{})
	assert.ErrorIs(t, err, speech.ErrPermissionDenied)
}
