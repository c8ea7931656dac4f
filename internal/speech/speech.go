// Package speech defines the platform speech capabilities the drill engine
// consumes: a Synthesizer for narration and a Recognizer for dictation.
// Both are optional; callers degrade to silent narration and typed input.
package speech

import (
	"context"
	"errors"
	"time"
	"unicode"
)

var (
	// ErrInterrupted is returned when a newer utterance replaced this one.
	ErrInterrupted = errors.New("speech interrupted")

	// ErrCanceled is returned when the caller canceled the operation.
	ErrCanceled = errors.New("speech canceled")

	// ErrPermissionDenied is returned when the microphone cannot be opened.
	ErrPermissionDenied = errors.New("microphone permission denied")

	// ErrNoEngine is returned when no speech engine or device is available.
	ErrNoEngine = errors.New("no speech engine available")

	// ErrNoMatch is returned when capture finished without usable speech.
	ErrNoMatch = errors.New("no speech recognized")

	// ErrUnavailable is returned when a remote speech service failed.
	ErrUnavailable = errors.New("speech service unavailable")
)

// IsSupersede reports whether err only means the operation was replaced or
// canceled, which callers treat as a normal end rather than a failure.
func IsSupersede(err error) bool {
	return errors.Is(err, ErrInterrupted) || errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled)
}

// Boundary marks a word about to be spoken, as a character range of the
// utterance text.
type Boundary struct {
	CharIndex  int
	CharLength int
}

// Synthesizer speaks text aloud.
type Synthesizer interface {
	// Speak blocks until the utterance finishes, fails, or ctx is canceled
	// (returning ErrCanceled). If boundaries is non-nil, word boundaries are
	// sent on it as they are spoken; Speak never closes the channel.
	Speak(ctx context.Context, text string, boundaries chan<- Boundary) error

	// Name identifies the engine for logs.
	Name() string
}

// Pauser is implemented by synthesizers that can pause the active utterance.
type Pauser interface {
	Pause() error
	Resume() error
}

// ListenOptions configures one dictation capture.
type ListenOptions struct {
	// Language is a BCP-47 or ISO-639-1 code ("en").
	Language string

	// MaxDuration caps the capture. Zero uses the engine default.
	MaxDuration time.Duration
}

// Recognizer captures a single utterance and transcribes it.
type Recognizer interface {
	// Listen returns the final transcript of one utterance. It returns
	// ErrNoMatch when nothing was said and ErrCanceled when ctx ends first.
	Listen(ctx context.Context, opts ListenOptions) (string, error)

	Name() string
}

// Noop is a Synthesizer that finishes immediately and a Recognizer that
// reports no engine.
type Noop struct{}

func (Noop) Speak(ctx context.Context, _ string, _ chan<- Boundary) error {
	if ctx.Err() != nil {
		return ErrCanceled
	}
	return nil
}

func (Noop) Listen(context.Context, ListenOptions) (string, error) {
	return "", ErrNoEngine
}

func (Noop) Name() string { return "none" }

// Words splits text into word boundaries. Engines that only know playback
// progress use it to estimate which word is being spoken.
func Words(text string) []Boundary {
	var out []Boundary
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, Boundary{CharIndex: start, CharLength: i - start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, Boundary{CharIndex: start, CharLength: len(text) - start})
	}
	return out
}

// BoundaryTracker emits estimated word boundaries as playback progresses,
// assuming speech time is proportional to character position.
type BoundaryTracker struct {
	words []Boundary
	total int
	next  int
	out   chan<- Boundary
}

// NewBoundaryTracker prepares boundaries for text. A nil out disables it.
func NewBoundaryTracker(text string, out chan<- Boundary) *BoundaryTracker {
	return &BoundaryTracker{words: Words(text), total: len(text), out: out}
}

// Progress reports that fraction (0..1) of the audio has played and sends
// every boundary whose word starts at or before that point.
func (t *BoundaryTracker) Progress(ctx context.Context, fraction float64) {
	if t.out == nil || t.total == 0 {
		return
	}
	for t.next < len(t.words) {
		w := t.words[t.next]
		if float64(w.CharIndex)/float64(t.total) > fraction {
			return
		}
		select {
		case t.out <- w:
		case <-ctx.Done():
			return
		}
		t.next++
	}
}
