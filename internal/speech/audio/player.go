package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/abhisek/drillbuddy/internal/speech"
)

const playChunk = 1024

// Player plays mono 16-bit PCM on the default output device. It plays one
// buffer at a time and can be paused between chunks.
type Player struct {
	mu     sync.Mutex
	paused bool
	resume chan struct{}
}

// NewPlayer returns a player. PortAudio must already be initialized.
func NewPlayer() *Player {
	return &Player{resume: make(chan struct{})}
}

// Play writes pcm at sampleRate, calling progress with the number of samples
// played after each chunk. It returns ErrCanceled if ctx ends first.
func (p *Player) Play(ctx context.Context, pcm []int16, sampleRate int, progress func(played int)) error {
	if !HasOutput() {
		return speech.ErrNoEngine
	}

	buf := make([]int16, playChunk)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), len(buf), buf)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer stream.Close()
	if err := stream.Start(); err != nil {
		return fmt.Errorf("start output: %w", err)
	}
	defer stream.Stop()

	for off := 0; off < len(pcm); off += len(buf) {
		if err := p.wait(ctx); err != nil {
			return err
		}
		n := copy(buf, pcm[off:])
		clear(buf[n:])
		if err := stream.Write(); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if progress != nil {
			progress(off + n)
		}
	}
	return nil
}

// wait blocks while paused.
func (p *Player) wait(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return speech.ErrCanceled
		}
		p.mu.Lock()
		paused, resume := p.paused, p.resume
		p.mu.Unlock()
		if !paused {
			return nil
		}
		select {
		case <-resume:
		case <-ctx.Done():
			return speech.ErrCanceled
		}
	}
}

func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
	return nil
}

func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.paused = false
		close(p.resume)
		p.resume = make(chan struct{})
	}
	return nil
}
