package audio

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/abhisek/drillbuddy/internal/speech"
)

const (
	// SampleRate is the capture rate expected by the recognizers.
	SampleRate = 16000

	// FramesPerBuffer is the size of one capture read.
	FramesPerBuffer = 1024
)

// CaptureOptions tunes energy-based endpointing.
type CaptureOptions struct {
	// Threshold is the RMS level (0..1) above which a frame counts as speech.
	Threshold float64

	// Silence ends the capture once speech was heard and then stopped.
	Silence time.Duration

	// NoSpeech ends the capture with ErrNoMatch if nothing was heard.
	NoSpeech time.Duration

	// MaxDuration caps the total capture.
	MaxDuration time.Duration

	// OnFrame, if set, receives every captured frame as it arrives.
	OnFrame func([]int16)
}

// DefaultCaptureOptions returns endpointing tuned for short spoken answers.
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{
		Threshold:   0.02,
		Silence:     900 * time.Millisecond,
		NoSpeech:    5 * time.Second,
		MaxDuration: 10 * time.Second,
	}
}

// Recorder captures mono 16-bit audio from the default input device.
type Recorder struct{}

// NewRecorder returns a recorder. PortAudio must already be initialized.
func NewRecorder() *Recorder { return &Recorder{} }

// Capture records until the speaker stops, then returns the samples.
func (r *Recorder) Capture(ctx context.Context, opts CaptureOptions) ([]int16, error) {
	if !HasInput() {
		return nil, speech.ErrNoEngine
	}

	buf := make([]int16, FramesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", speech.ErrPermissionDenied, err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", speech.ErrPermissionDenied, err)
	}
	defer stream.Stop()

	ep := newEndpointer(opts)
	for {
		if ctx.Err() != nil {
			return nil, speech.ErrCanceled
		}
		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("read microphone: %w", err)
		}
		frame := make([]int16, len(buf))
		copy(frame, buf)
		if opts.OnFrame != nil {
			opts.OnFrame(frame)
		}
		done, err := ep.push(frame)
		if err != nil {
			return nil, err
		}
		if done {
			return ep.samples, nil
		}
	}
}

// endpointer decides when an utterance has ended from frame energy alone.
type endpointer struct {
	opts    CaptureOptions
	samples []int16
	elapsed time.Duration
	quiet   time.Duration
	heard   bool
}

func newEndpointer(opts CaptureOptions) *endpointer {
	d := DefaultCaptureOptions()
	if opts.Threshold <= 0 {
		opts.Threshold = d.Threshold
	}
	if opts.Silence <= 0 {
		opts.Silence = d.Silence
	}
	if opts.NoSpeech <= 0 {
		opts.NoSpeech = d.NoSpeech
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = d.MaxDuration
	}
	return &endpointer{opts: opts}
}

// push adds a frame and reports whether capture should stop.
func (e *endpointer) push(frame []int16) (bool, error) {
	dur := time.Duration(len(frame)) * time.Second / SampleRate
	e.elapsed += dur
	e.samples = append(e.samples, frame...)

	if RMS(frame) >= e.opts.Threshold {
		e.heard = true
		e.quiet = 0
	} else if e.heard {
		e.quiet += dur
	}

	switch {
	case e.heard && e.quiet >= e.opts.Silence:
		return true, nil
	case !e.heard && e.elapsed >= e.opts.NoSpeech:
		return false, speech.ErrNoMatch
	case e.elapsed >= e.opts.MaxDuration:
		if !e.heard {
			return false, speech.ErrNoMatch
		}
		return true, nil
	}
	return false, nil
}

// RMS returns the normalized root-mean-square level of a frame.
func RMS(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		v := float64(s) / math.MaxInt16
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}
