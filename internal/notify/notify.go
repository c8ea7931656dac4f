// Package notify shows desktop notifications.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

const appName = "DrillBuddy"

// Sender delivers one notification.
type Sender func(title, message, icon string) error

// Notifier sends notifications when enabled. Delivery errors are ignored.
type Notifier struct {
	enabled bool
	send    Sender
}

// New returns a Notifier backed by the desktop notification service.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, send: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
}

// NewWithSender returns a Notifier that delivers through send.
func NewWithSender(enabled bool, send Sender) *Notifier {
	return &Notifier{enabled: enabled, send: send}
}

// SetEnabled turns notifications on or off.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// SessionComplete announces a finished session.
func (n *Notifier) SessionComplete(exercise string, correct, total, points int) {
	n.notify("Session complete", fmt.Sprintf("%s: %d of %d correct, +%d points", exercise, correct, total, points))
}

// Error announces a failure the learner should know about.
func (n *Notifier) Error(msg string) {
	if len(msg) > 100 {
		msg = msg[:100] + "..."
	}
	n.notify("Something went wrong", msg)
}

func (n *Notifier) notify(title, message string) {
	if n == nil || !n.enabled || n.send == nil {
		return
	}
	_ = n.send(appName+": "+title, message, "")
}
