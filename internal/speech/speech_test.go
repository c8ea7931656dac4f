package speech

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	got := Words("  What is  7 plus 5? ")
	want := []Boundary{{2, 4}, {7, 2}, {11, 1}, {13, 4}, {18, 2}}
	assert.Equal(t, want, got)
	assert.Empty(t, Words("   "))
}

func TestIsSupersede(t *testing.T) {
	assert.True(t, IsSupersede(ErrInterrupted))
	assert.True(t, IsSupersede(fmt.Errorf("say: %w", ErrCanceled)))
	assert.True(t, IsSupersede(context.Canceled))
	assert.False(t, IsSupersede(ErrUnavailable))
	assert.False(t, IsSupersede(errors.New("boom")))
}

func TestBoundaryTracker(t *testing.T) {
	out := make(chan Boundary, 10)
	text := "one two three four"
	tr := NewBoundaryTracker(text, out)

	tr.Progress(context.Background(), 0)
	assert.Len(t, out, 1, "first word starts at zero")

	tr.Progress(context.Background(), 0.5)
	assert.Len(t, out, 3)

	tr.Progress(context.Background(), 1)
	assert.Len(t, out, 4)

	tr.Progress(context.Background(), 1)
	assert.Len(t, out, 4, "boundaries are sent once")

	NewBoundaryTracker(text, nil).Progress(context.Background(), 1)
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NoError(t, n.Speak(context.Background(), "hi", nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Speak(ctx, "hi", nil), ErrCanceled)

	_, err := n.Listen(context.Background(), ListenOptions{})
	assert.ErrorIs(t, err, ErrNoEngine)
}
