// Package telemetry reports unexpected failures to Sentry.
package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter captures errors on its own hub. The zero Reporter and a nil
// *Reporter drop everything.
type Reporter struct {
	hub *sentry.Hub
}

// Init returns a Reporter for dsn. An empty dsn yields a disabled Reporter.
func Init(dsn, release string) (*Reporter, error) {
	if dsn == "" {
		return &Reporter{}, nil
	}
	return New(sentry.ClientOptions{
		Dsn:         dsn,
		Release:     release,
		Environment: "desktop",
	})
}

// New returns a Reporter for the given client options.
func New(opts sentry.ClientOptions) (*Reporter, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	return &Reporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Enabled reports whether events are sent anywhere.
func (r *Reporter) Enabled() bool { return r != nil && r.hub != nil }

// Capture sends err with tags attached.
func (r *Reporter) Capture(err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		r.hub.CaptureException(err)
	})
}

// Flush waits up to timeout for queued events.
func (r *Reporter) Flush(timeout time.Duration) {
	if r.Enabled() {
		r.hub.Flush(timeout)
	}
}
