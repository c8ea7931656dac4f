package telemetry

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledReporter(t *testing.T) {
	r, err := Init("", "v0")
	require.NoError(t, err)
	assert.False(t, r.Enabled())

	// Neither call may panic.
	r.Capture(errors.New("boom"), nil)
	r.Flush(time.Millisecond)

	var nilReporter *Reporter
	nilReporter.Capture(errors.New("boom"), nil)
	assert.False(t, nilReporter.Enabled())
}

func TestCaptureAttachesTags(t *testing.T) {
	var mu sync.Mutex
	var events []*sentry.Event

	r, err := New(sentry.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			events = append(events, event)
			mu.Unlock()
			return nil
		},
	})
	require.NoError(t, err)
	require.True(t, r.Enabled())

	r.Capture(errors.New("synth crashed"), map[string]string{"stage": "narration"})
	r.Capture(nil, nil)
	r.Flush(time.Second)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 1)
	assert.Equal(t, "narration", events[0].Tags["stage"])
	require.NotEmpty(t, events[0].Exception)
	assert.Equal(t, "synth crashed", events[0].Exception[0].Value)
}

func TestInvalidDSN(t *testing.T) {
	_, err := Init("not a dsn", "v0")
	assert.Error(t, err)
}
