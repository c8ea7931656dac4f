// Package audio wraps PortAudio for microphone capture and PCM playback.
package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

var (
	initMu   sync.Mutex
	initRefs int
)

// Initialize starts PortAudio. Calls nest; each must be paired with Terminate.
func Initialize() error {
	initMu.Lock()
	defer initMu.Unlock()
	if initRefs == 0 {
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("initialize portaudio: %w", err)
		}
	}
	initRefs++
	return nil
}

// Terminate releases PortAudio once the last Initialize is paired.
func Terminate() error {
	initMu.Lock()
	defer initMu.Unlock()
	if initRefs == 0 {
		return nil
	}
	initRefs--
	if initRefs == 0 {
		return portaudio.Terminate()
	}
	return nil
}

// HasInput reports whether a default input device exists.
func HasInput() bool {
	dev, err := portaudio.DefaultInputDevice()
	return err == nil && dev != nil
}

// HasOutput reports whether a default output device exists.
func HasOutput() bool {
	dev, err := portaudio.DefaultOutputDevice()
	return err == nil && dev != nil
}
