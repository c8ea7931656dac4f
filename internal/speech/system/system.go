// Package system speaks through a local text-to-speech command such as
// macOS say or espeak-ng.
package system

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"sync"

	"github.com/abhisek/drillbuddy/internal/speech"
)

// engine describes how to invoke one TTS command.
type engine struct {
	bin  string
	args func(rate int, text string) []string
}

var engines = []engine{
	{"say", func(rate int, text string) []string {
		return []string{"-r", strconv.Itoa(rate), text}
	}},
	{"espeak-ng", func(rate int, text string) []string {
		return []string{"-s", strconv.Itoa(rate), text}
	}},
	{"espeak", func(rate int, text string) []string {
		return []string{"-s", strconv.Itoa(rate), text}
	}},
	{"spd-say", func(rate int, text string) []string {
		return []string{"-w", text}
	}},
}

// Synthesizer runs one TTS process per utterance.
type Synthesizer struct {
	name string
	path string
	args func(rate int, text string) []string
	rate int

	mu  sync.Mutex
	cmd *exec.Cmd
}

// Detect returns a synthesizer for the first TTS command found on PATH.
// rate is in words per minute; zero means 175.
func Detect(rate int) (*Synthesizer, error) {
	for _, e := range engines {
		if path, err := exec.LookPath(e.bin); err == nil {
			return newSynthesizer(e.bin, path, e.args, rate), nil
		}
	}
	return nil, speech.ErrNoEngine
}

// NewCommand returns a synthesizer that runs bin with args followed by the
// utterance text.
func NewCommand(bin string, args ...string) (*Synthesizer, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", speech.ErrNoEngine, err)
	}
	return newSynthesizer(bin, path, func(_ int, text string) []string {
		return append(append([]string{}, args...), text)
	}, 0), nil
}

func newSynthesizer(name, path string, args func(int, string) []string, rate int) *Synthesizer {
	if rate <= 0 {
		rate = 175
	}
	return &Synthesizer{name: name, path: path, args: args, rate: rate}
}

func (s *Synthesizer) Name() string { return s.name }

// Speak runs the command and waits for it. Local engines do not report word
// boundaries, so boundaries is never written.
func (s *Synthesizer) Speak(ctx context.Context, text string, _ chan<- speech.Boundary) error {
	if ctx.Err() != nil {
		return speech.ErrCanceled
	}

	cmd := exec.Command(s.path, s.args(s.rate, text)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start %s: %v", speech.ErrUnavailable, s.name, err)
	}

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		if s.cmd == cmd {
			s.cmd = nil
		}
		s.mu.Unlock()
	}()

	waited := make(chan error, 1)
	go func() { waited <- cmd.Wait() }()

	select {
	case err := <-waited:
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		return nil
	case <-ctx.Done():
		// A stopped process must be continued before it can die.
		_ = resume(cmd)
		_ = cmd.Process.Kill()
		<-waited
		return speech.ErrCanceled
	}
}

func (s *Synthesizer) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return nil
	}
	return pause(s.cmd)
}

func (s *Synthesizer) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return nil
	}
	return resume(s.cmd)
}

var errPauseUnsupported = errors.New("pause not supported on this platform")
