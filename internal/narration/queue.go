// Package narration owns the single active utterance of the process. A new
// Speak supersedes the previous utterance instead of queueing behind it, and
// every speech event re-enters the Bubble Tea loop as a message tagged with
// the utterance id so superseded events can be dropped.
package narration

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/drillbuddy/internal/speech"
)

// Request is one utterance and its continuations. Callbacks run inside
// Update on the UI loop and may be nil.
type Request struct {
	Text       string
	OnBoundary func(charIndex, charLength int) tea.Cmd
	OnEnd      func() tea.Cmd
	OnError    func(err error) tea.Cmd
}

// BoundaryMsg reports a word being spoken.
type BoundaryMsg struct {
	ID       string
	Boundary speech.Boundary
}

// EndMsg reports that an utterance finished, with Err set if it failed.
type EndMsg struct {
	ID  string
	Err error
}

// Queue wraps a Synthesizer and tracks the active utterance.
type Queue struct {
	synth   speech.Synthesizer
	enabled bool
	logger  *slog.Logger
	active  *Handle
}

// New returns a queue. A nil synth behaves like a disabled queue.
func New(synth speech.Synthesizer, enabled bool, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Queue{synth: synth, enabled: enabled && synth != nil, logger: logger}
}

// Enabled reports whether utterances are synthesized.
func (q *Queue) Enabled() bool { return q.enabled }

// SetEnabled toggles synthesis. Disabling stops the audio of the active
// utterance but lets it complete so its OnEnd still fires.
func (q *Queue) SetEnabled(on bool) {
	q.enabled = on && q.synth != nil
	if !q.enabled && q.active != nil && q.active.cancel != nil {
		q.active.cancel()
	}
}

// Active returns the active handle, or nil.
func (q *Queue) Active() *Handle { return q.active }

// Speak supersedes the active utterance and starts req. The returned command
// must be run for the request's callbacks to fire.
func (q *Queue) Speak(req Request) (*Handle, tea.Cmd) {
	q.Stop()

	h := &Handle{id: uuid.NewString(), req: req, q: q}
	q.active = h

	if !q.enabled {
		id := h.id
		return h, func() tea.Msg { return EndMsg{ID: id} }
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.boundaries = make(chan speech.Boundary, 64)
	h.done = make(chan error, 1)

	synth, text := q.synth, req.Text
	go func() {
		h.done <- synth.Speak(ctx, text, h.boundaries)
	}()
	return h, h.wait()
}

// Stop cancels the active utterance without firing any of its callbacks.
func (q *Queue) Stop() {
	if q.active == nil {
		return
	}
	if q.active.cancel != nil {
		q.active.cancel()
	}
	q.active = nil
}

// Update routes narration messages to the active request. Messages from
// superseded utterances are ignored.
func (q *Queue) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case BoundaryMsg:
		h := q.active
		if h == nil || h.id != msg.ID {
			return nil
		}
		var cmd tea.Cmd
		if h.req.OnBoundary != nil {
			cmd = h.req.OnBoundary(msg.Boundary.CharIndex, msg.Boundary.CharLength)
		}
		return tea.Batch(cmd, h.wait())

	case EndMsg:
		h := q.active
		if h == nil || h.id != msg.ID {
			return nil
		}
		q.active = nil
		if h.cancel != nil {
			h.cancel()
		}

		var cmds []tea.Cmd
		if msg.Err != nil && !speech.IsSupersede(msg.Err) {
			q.logger.Warn("narration failed", "engine", q.synth.Name(), "error", msg.Err)
			if h.req.OnError != nil {
				cmds = append(cmds, h.req.OnError(msg.Err))
			}
		}
		if h.req.OnEnd != nil {
			cmds = append(cmds, h.req.OnEnd())
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// Handle controls one utterance.
type Handle struct {
	id         string
	req        Request
	q          *Queue
	cancel     context.CancelFunc
	boundaries chan speech.Boundary
	done       chan error
}

// ID returns the utterance id carried by its messages.
func (h *Handle) ID() string { return h.id }

// Text returns the utterance text.
func (h *Handle) Text() string { return h.req.Text }

// Live reports whether h is still the active utterance.
func (h *Handle) Live() bool { return h.q.active == h }

// Pause pauses playback if the engine supports it.
func (h *Handle) Pause() bool {
	p, ok := h.pauser()
	return ok && p.Pause() == nil
}

// Resume continues a paused utterance.
func (h *Handle) Resume() bool {
	p, ok := h.pauser()
	return ok && p.Resume() == nil
}

// Cancel stops h if it is still active. No callbacks fire.
func (h *Handle) Cancel() {
	if h.Live() {
		h.q.Stop()
	}
}

func (h *Handle) pauser() (speech.Pauser, bool) {
	if !h.Live() || h.cancel == nil {
		return nil, false
	}
	p, ok := h.q.synth.(speech.Pauser)
	return p, ok
}

// wait delivers the next boundary or the end of the utterance.
func (h *Handle) wait() tea.Cmd {
	id, boundaries, done := h.id, h.boundaries, h.done
	return func() tea.Msg {
		select {
		case b := <-boundaries:
			return BoundaryMsg{ID: id, Boundary: b}
		default:
		}
		select {
		case b := <-boundaries:
			return BoundaryMsg{ID: id, Boundary: b}
		case err := <-done:
			return EndMsg{ID: id, Err: err}
		}
	}
}
