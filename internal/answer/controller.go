// Package answer collects one answer per attempt, typed or dictated.
// A successful dictation fills the input and submits it without a
// confirmation step; once submitted, the controller stays locked until the
// turn re-arms it.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/speech"
	"github.com/abhisek/drillbuddy/internal/ui/components"
)

// Source records how an answer was entered.
type Source string

const (
	SourceTyped    Source = "typed"
	SourceDictated Source = "dictated"
)

// SubmitMsg carries one submitted answer to the turn engine.
type SubmitMsg struct {
	Answer string
	Source Source
}

// dictationMsg is the outcome of one capture.
type dictationMsg struct {
	id         string
	transcript string
	err        error
}

type clearNoticeMsg struct{ seq int }

// Dictation is the single in-flight capture.
type Dictation struct {
	ID         string
	Active     bool
	Transcript string
	Parsed     string
	cancel     context.CancelFunc
}

// Options configures dictation.
type Options struct {
	Dictation   bool
	Language    string
	MaxDuration time.Duration
	NoticeTTL   time.Duration
}

// Controller owns the answer input for the current turn.
type Controller struct {
	recognizer speech.Recognizer
	opts       Options

	problem   *problemgen.Problem
	input     components.TextInput
	choice    components.MultiChoice
	dictation Dictation
	locked    bool

	notice    string
	noticeSeq int
}

// New returns a controller. A nil recognizer means typed input only.
func New(recognizer speech.Recognizer, opts Options) *Controller {
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = 3 * time.Second
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	return &Controller{recognizer: recognizer, opts: opts, locked: true}
}

// Bind prepares input for a new problem.
func (c *Controller) Bind(p *problemgen.Problem) {
	c.CancelDictation()
	c.problem = p
	c.locked = false
	c.notice = ""

	if p.Kind == problemgen.KindChoice {
		c.choice = components.NewMultiChoice(p.Options)
		return
	}
	placeholder := "Type your answer..."
	if p.Kind == problemgen.KindText {
		placeholder = "Type the word..."
	}
	c.input = components.NewTextInput(placeholder, p.Kind == problemgen.KindNumeric, 40)
}

// Rearm opens input again after an incorrect attempt.
func (c *Controller) Rearm() {
	if c.problem == nil {
		return
	}
	c.locked = false
	if c.problem.Kind == problemgen.KindChoice {
		c.choice.Reset()
		return
	}
	c.input.Reset()
}

// Lock refuses further submissions and cancels any capture.
func (c *Controller) Lock() {
	c.locked = true
	c.CancelDictation()
}

// Locked reports whether submissions are refused.
func (c *Controller) Locked() bool { return c.locked }

// Mark shows the evaluation result on the input.
func (c *Controller) Mark(submitted string, correct bool) {
	if c.problem == nil {
		return
	}
	if c.problem.Kind == problemgen.KindChoice {
		c.choice.Reveal(problemgen.OptionIndex(c.problem, submitted), problemgen.OptionIndex(c.problem, c.problem.Answer))
		return
	}
	c.input.Submit(correct)
}

// CanDictate reports whether a recognizer is configured and enabled.
func (c *Controller) CanDictate() bool {
	return c.opts.Dictation && c.recognizer != nil
}

// SetDictation toggles dictation at runtime.
func (c *Controller) SetDictation(on bool) {
	c.opts.Dictation = on
	if !on {
		c.CancelDictation()
	}
}

// Listening reports whether a capture is in flight.
func (c *Controller) Listening() bool { return c.dictation.Active }

// Dictation returns the current or last capture.
func (c *Controller) Dictation() Dictation { return c.dictation }

// Value returns the answer currently entered or selected.
func (c *Controller) Value() string {
	if c.problem != nil && c.problem.Kind == problemgen.KindChoice {
		return c.choice.Current()
	}
	return c.input.Value()
}

// View renders the input area.
func (c *Controller) View() string {
	if c.problem == nil {
		return ""
	}
	if c.problem.Kind == problemgen.KindChoice {
		return c.choice.View()
	}
	return c.input.View()
}

// Notice returns the transient message to show, if any.
func (c *Controller) Notice() string { return c.notice }

// StartDictation begins a single-shot capture. It is a no-op while another
// capture is active or the input is locked.
func (c *Controller) StartDictation() tea.Cmd {
	if c.locked || c.dictation.Active {
		return nil
	}
	if !c.CanDictate() {
		return c.showNotice("Dictation is off. Type your answer.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.dictation = Dictation{ID: uuid.NewString(), Active: true, cancel: cancel}
	c.notice = ""

	id, rec := c.dictation.ID, c.recognizer
	opts := speech.ListenOptions{Language: c.opts.Language, MaxDuration: c.opts.MaxDuration}
	return func() tea.Msg {
		text, err := rec.Listen(ctx, opts)
		return dictationMsg{id: id, transcript: text, err: err}
	}
}

// CancelDictation abandons the active capture; its result will be ignored.
func (c *Controller) CancelDictation() {
	if c.dictation.cancel != nil {
		c.dictation.cancel()
	}
	c.dictation.Active = false
	c.dictation.cancel = nil
}

// Update handles keys and capture results.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dictationMsg:
		return c.handleDictation(msg)

	case clearNoticeMsg:
		if msg.seq == c.noticeSeq {
			c.notice = ""
		}
		return nil

	case tea.KeyMsg:
		if c.locked || c.problem == nil {
			return nil
		}
		return c.handleKey(msg)
	}

	if c.problem != nil && c.problem.Kind != problemgen.KindChoice && !c.locked {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	}
	return nil
}

func (c *Controller) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if c.problem.Kind == problemgen.KindChoice {
		switch key {
		case "enter":
			return c.submit(c.choice.Current(), SourceTyped)
		}
		if n, err := strconv.Atoi(key); err == nil && c.choice.Select(n-1) {
			return c.submit(c.choice.Current(), SourceTyped)
		}
		var cmd tea.Cmd
		c.choice, cmd = c.choice.Update(msg)
		return cmd
	}

	if key == "enter" {
		return c.submit(c.input.Value(), SourceTyped)
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *Controller) handleDictation(msg dictationMsg) tea.Cmd {
	if msg.id != c.dictation.ID || !c.dictation.Active {
		return nil
	}
	c.dictation.Active = false
	c.dictation.cancel = nil
	c.dictation.Transcript = msg.transcript
	if c.locked {
		return nil
	}

	if msg.err != nil {
		return c.showNotice(dictationNotice(msg.err))
	}

	ans, ok := Interpret(c.problem, msg.transcript)
	if !ok {
		return c.showNotice(fmt.Sprintf("Heard %q but couldn't use it. Type your answer.", msg.transcript))
	}
	c.dictation.Parsed = ans

	if c.problem.Kind == problemgen.KindChoice {
		c.choice.Select(problemgen.OptionIndex(c.problem, ans))
	} else {
		c.input.SetValue(ans)
	}
	return c.submit(ans, SourceDictated)
}

func (c *Controller) submit(ans string, src Source) tea.Cmd {
	if c.locked || ans == "" {
		return nil
	}
	c.Lock()
	return func() tea.Msg { return SubmitMsg{Answer: ans, Source: src} }
}

func (c *Controller) showNotice(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	c.notice = text
	c.noticeSeq++
	seq := c.noticeSeq
	return tea.Tick(c.opts.NoticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

func dictationNotice(err error) string {
	switch {
	case speech.IsSupersede(err):
		return ""
	case errors.Is(err, speech.ErrPermissionDenied):
		return "Microphone access was denied. Type your answer instead."
	case errors.Is(err, speech.ErrNoEngine):
		return "No speech recognizer is available. Type your answer instead."
	case errors.Is(err, speech.ErrNoMatch):
		return "I didn't catch that. Try again or type your answer."
	default:
		return "Listening failed. Type your answer instead."
	}
}
