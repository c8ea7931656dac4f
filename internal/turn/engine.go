package turn

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drillbuddy/internal/answer"
	"github.com/abhisek/drillbuddy/internal/narration"
	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/session"
	"github.com/abhisek/drillbuddy/internal/store"
	"github.com/abhisek/drillbuddy/internal/wordlist"
)

// Recorder persists session and answer events.
type Recorder interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// ErrorReporter forwards unexpected failures to an error tracker.
type ErrorReporter interface {
	Capture(err error, tags map[string]string)
}

// Config selects what is drilled.
type Config struct {
	Exercise   problemgen.Exercise
	Difficulty problemgen.Difficulty
	Topic      string
	Category   string

	// Words backs list sessions. Nil for generated sessions.
	Words *wordlist.List

	Timing Timing

	// MaxPrior bounds the prompts sent back to the provider for dedup.
	MaxPrior int
}

// Deps are the collaborators the engine drives. Recorder, Rewards, Errors
// and Logger may be nil.
type Deps struct {
	Provider problemgen.Provider
	Narrator *narration.Queue
	Input    *answer.Controller
	Tracker  *session.Tracker
	Recorder Recorder
	Rewards  session.RewardSink
	Errors   ErrorReporter
	Logger   *slog.Logger
}

// Engine runs one session at a time.
type Engine struct {
	cfg  Config
	deps Deps

	seq       int
	turn      *Turn
	prior     []string
	loading   bool
	genErr    error
	genCancel context.CancelFunc
	completed bool
	paused    bool

	notice    string
	noticeSeq int

	caption      string
	captionStart int
	captionLen   int
}

// New returns an engine. Call Start to begin the first session.
func New(cfg Config, deps Deps) *Engine {
	if cfg.Timing == (Timing{}) {
		cfg.Timing = DefaultTiming()
	}
	if cfg.MaxPrior <= 0 {
		cfg.MaxPrior = 8
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{cfg: cfg, deps: deps, captionStart: -1}
}

// Start begins a fresh session and requests the first problem.
func (e *Engine) Start() tea.Cmd {
	e.deps.Tracker.Start()
	e.seq = 0
	e.turn = nil
	e.prior = nil
	e.completed = false
	e.genErr = nil
	e.notice = ""
	e.deps.Logger.Info("session started",
		"session_id", e.deps.Tracker.SessionID(),
		"exercise", e.cfg.Exercise,
		"mode", e.deps.Tracker.Mode(),
	)
	e.recordSession("start")
	return e.next()
}

// Restart abandons the current session and starts over with a new order.
func (e *Engine) Restart() tea.Cmd {
	e.recordSession("restart")
	e.halt()
	return e.Start()
}

// Leave cancels all in-flight work for the session.
func (e *Engine) Leave() {
	if !e.completed {
		e.recordSession("quit")
	}
	e.halt()
}

func (e *Engine) halt() {
	e.deps.Narrator.Stop()
	e.deps.Input.Lock()
	if e.genCancel != nil {
		e.genCancel()
		e.genCancel = nil
	}
	e.turn = nil
	e.loading = false
	e.clearCaption()
}

// Update applies one message.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case narration.BoundaryMsg, narration.EndMsg:
		return e.deps.Narrator.Update(msg)

	case answer.SubmitMsg:
		return e.submit(msg)

	case problemMsg:
		return e.handleProblem(msg)

	case advanceMsg:
		return e.advance(msg)

	case noticeClearMsg:
		if msg.seq == e.noticeSeq {
			e.notice = ""
		}
		return nil
	}
	return e.deps.Input.Update(msg)
}

func (e *Engine) token() Token {
	return Token{Epoch: e.deps.Tracker.Epoch(), Turn: e.seq}
}

// live reports whether tok still identifies the bound turn.
func (e *Engine) live(tok Token) bool {
	return e.turn != nil && e.turn.Token == tok
}

// next requests the problem for the following turn, or completes.
func (e *Engine) next() tea.Cmd {
	item, ok := e.deps.Tracker.Next()
	if !ok {
		return e.complete()
	}

	e.seq++
	tok := e.token()
	e.turn = nil
	e.loading = true
	e.genErr = nil
	e.clearCaption()

	params := e.params(item)
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timing.GenerateTimeout)
	e.genCancel = cancel
	provider := e.deps.Provider
	return func() tea.Msg {
		defer cancel()
		p, err := provider.Generate(ctx, params)
		return problemMsg{tok: tok, problem: p, err: err}
	}
}

// Retry re-requests a problem after a generation failure.
func (e *Engine) Retry() tea.Cmd {
	if e.genErr == nil || e.loading || e.completed {
		return nil
	}
	return e.next()
}

func (e *Engine) params(item string) problemgen.Params {
	p := problemgen.Params{
		Exercise:   e.cfg.Exercise,
		Difficulty: e.cfg.Difficulty,
		Topic:      e.cfg.Topic,
		Category:   e.cfg.Category,
	}
	if n := len(e.prior); n > e.cfg.MaxPrior {
		p.Prior = append(p.Prior, e.prior[n-e.cfg.MaxPrior:]...)
	} else {
		p.Prior = append(p.Prior, e.prior...)
	}
	if e.cfg.Words != nil {
		p.Items = e.cfg.Words.Items
		if it, ok := e.cfg.Words.Lookup(item); ok {
			p.Item = &it
		}
	}
	return p
}

func (e *Engine) handleProblem(msg problemMsg) tea.Cmd {
	if msg.tok != e.token() || !e.loading {
		return nil
	}
	e.loading = false
	e.genCancel = nil

	if msg.err != nil {
		e.genErr = msg.err
		e.deps.Logger.Warn("problem generation failed", "exercise", e.cfg.Exercise, "error", msg.err)
		e.capture(msg.err, "generate")
		return nil
	}
	if err := problemgen.Validate(msg.problem); err != nil {
		e.genErr = fmt.Errorf("invalid problem: %w", err)
		e.deps.Logger.Warn("provider returned an invalid problem", "error", err)
		return nil
	}
	return e.bind(msg.tok, msg.problem)
}

// bind presents p. Input opens immediately while the prompt is spoken.
func (e *Engine) bind(tok Token, p *problemgen.Problem) tea.Cmd {
	if p.Exercise == "" {
		p.Exercise = e.cfg.Exercise
	}
	e.turn = &Turn{
		Problem: p,
		State:   Unattempted,
		Phase:   PhasePresented,
		Token:   tok,
		Started: time.Now(),
	}
	e.prior = append(e.prior, p.Prompt)
	e.deps.Input.Bind(p)
	e.paused = false

	speak := e.speakPrompt()
	e.turn.Phase = PhaseAwaiting
	return speak
}

// speakPrompt narrates the current prompt with word highlighting.
func (e *Engine) speakPrompt() tea.Cmd {
	t := e.turn
	tok := t.Token
	text := t.Problem.SpokenText()
	e.caption = text
	e.captionStart = -1

	_, cmd := e.deps.Narrator.Speak(narration.Request{
		Text: text,
		OnBoundary: func(i, n int) tea.Cmd {
			if e.live(tok) {
				e.captionStart, e.captionLen = i, n
			}
			return nil
		},
		OnEnd: func() tea.Cmd {
			if e.live(tok) {
				e.captionStart = -1
			}
			return nil
		},
		OnError: e.narrationFailed(tok),
	})
	return cmd
}

func (e *Engine) submit(msg answer.SubmitMsg) tea.Cmd {
	t := e.turn
	if t == nil || t.Phase != PhaseAwaiting {
		return nil
	}
	t.Phase = PhaseEvaluating
	e.deps.Input.Lock()

	t.RawInput = msg.Answer
	t.Attempts++
	correct := problemgen.CheckAnswer(msg.Answer, t.Problem)
	e.deps.Input.Mark(msg.Answer, correct)
	e.recordAnswer(t, msg, correct)

	if correct {
		t.State = Correct
	} else {
		t.State = Incorrect
		e.deps.Tracker.RecordWrong()
	}
	return e.feedback(correct)
}

func (e *Engine) feedback(correct bool) tea.Cmd {
	t := e.turn
	p := t.Problem
	t.Phase = PhaseFeedback

	switch {
	case correct:
		t.Feedback = fmt.Sprintf("Correct! The answer is %s.", p.Answer)
		e.deps.Tracker.EndTurn(p.ItemID, true)
		return e.advanceAfter(t.Feedback)

	case p.Exercise.MultiAttempt():
		t.Feedback = "Not quite. Try again."
		t.Phase = PhaseAwaiting
		e.deps.Input.Rearm()
		_, cmd := e.deps.Narrator.Speak(narration.Request{
			Text:    t.Feedback,
			OnError: e.narrationFailed(t.Token),
		})
		return cmd

	default:
		t.Feedback = strings.TrimSpace(fmt.Sprintf("Not quite. The answer is %s. %s", p.Answer, p.Explanation))
		e.deps.Tracker.EndTurn(p.ItemID, false)
		return e.advanceAfter(t.Feedback)
	}
}

// advanceAfter shows feedback and schedules exactly one advance. With
// narration on, the end of the utterance advances and a longer timer backs
// it up; with narration off, a timer sized to the message does.
func (e *Engine) advanceAfter(text string) tea.Cmd {
	tok := e.turn.Token
	delay := e.cfg.Timing.FeedbackDelay(text)
	advance := func(time.Time) tea.Msg { return advanceMsg{tok: tok} }

	if !e.deps.Narrator.Enabled() {
		e.deps.Narrator.Stop()
		return tea.Tick(delay, advance)
	}

	_, speak := e.deps.Narrator.Speak(narration.Request{
		Text: text,
		OnEnd: func() tea.Cmd {
			return func() tea.Msg { return advanceMsg{tok: tok} }
		},
		OnError: e.narrationFailed(tok),
	})
	return tea.Batch(speak, tea.Tick(delay+e.cfg.Timing.FallbackSlack, advance))
}

func (e *Engine) advance(msg advanceMsg) tea.Cmd {
	if !e.live(msg.tok) || e.turn.advanced {
		return nil
	}
	e.turn.advanced = true
	e.turn.Phase = PhaseAdvancing
	e.deps.Input.Lock()
	return e.next()
}

// HintAvailable reports whether the hint can be shown now.
func (e *Engine) HintAvailable() bool {
	t := e.turn
	return t != nil && t.Phase == PhaseAwaiting && t.Problem.Exercise.MultiAttempt() &&
		!t.HintShown && t.Problem.Hint != "" && t.Attempts >= e.cfg.Timing.HintAfter
}

// ShowHint displays and speaks the hint.
func (e *Engine) ShowHint() tea.Cmd {
	if !e.HintAvailable() {
		return nil
	}
	t := e.turn
	t.HintShown = true
	_, cmd := e.deps.Narrator.Speak(narration.Request{
		Text:    t.Problem.Hint,
		OnError: e.narrationFailed(t.Token),
	})
	return cmd
}

// RevealAvailable reports whether the answer can be revealed now.
func (e *Engine) RevealAvailable() bool {
	t := e.turn
	return t != nil && t.Phase == PhaseAwaiting && t.Problem.Exercise.MultiAttempt() &&
		!t.Revealed && t.Attempts >= e.cfg.Timing.HintAfter+2
}

// Reveal shows the answer, resolves the turn as incorrect and advances after
// RevealDelay whether or not narration finishes.
func (e *Engine) Reveal() tea.Cmd {
	if !e.RevealAvailable() {
		return nil
	}
	t := e.turn
	p := t.Problem
	t.Revealed = true
	t.Phase = PhaseFeedback
	e.deps.Input.Lock()
	e.deps.Tracker.EndTurn(p.ItemID, false)

	t.Feedback = fmt.Sprintf("The answer is %s.", p.Answer)
	spoken := t.Feedback
	if p.Kind == problemgen.KindText {
		spoken = fmt.Sprintf("%s is spelled %s.", p.Answer, letters(p.Answer))
	}
	_, speak := e.deps.Narrator.Speak(narration.Request{
		Text:    spoken,
		OnError: e.narrationFailed(t.Token),
	})
	tok := t.Token
	return tea.Batch(speak, tea.Tick(e.cfg.Timing.RevealDelay, func(time.Time) tea.Msg {
		return advanceMsg{tok: tok}
	}))
}

func letters(word string) string {
	out := make([]string, 0, len(word))
	for _, r := range strings.ToUpper(word) {
		out = append(out, string(r))
	}
	return strings.Join(out, ", ")
}

// Replay speaks the current prompt again.
func (e *Engine) Replay() tea.Cmd {
	if e.turn == nil || e.turn.Phase != PhaseAwaiting {
		return nil
	}
	e.paused = false
	return e.speakPrompt()
}

// TogglePause pauses or resumes the active utterance.
func (e *Engine) TogglePause() {
	h := e.deps.Narrator.Active()
	if h == nil {
		return
	}
	if e.paused {
		if h.Resume() {
			e.paused = false
		}
		return
	}
	e.paused = h.Pause()
}

// ToggleMute switches narration on or off. Muting lets the active utterance
// complete so anything chained on it still runs.
func (e *Engine) ToggleMute() bool {
	on := !e.deps.Narrator.Enabled()
	e.deps.Narrator.SetEnabled(on)
	e.paused = false
	return e.deps.Narrator.Enabled()
}

// Dictate starts listening for an answer. Narration stops first so the
// microphone does not hear it.
func (e *Engine) Dictate() tea.Cmd {
	if e.turn == nil || e.turn.Phase != PhaseAwaiting {
		return nil
	}
	e.deps.Narrator.Stop()
	e.clearCaption()
	return e.deps.Input.StartDictation()
}

func (e *Engine) complete() tea.Cmd {
	e.completed = true
	e.turn = nil
	e.loading = false
	tr := e.deps.Tracker
	summary := session.BuildSummary(tr)
	e.recordSession("end")
	e.deps.Logger.Info("session completed",
		"session_id", tr.SessionID(),
		"correct", summary.TurnsCorrect,
		"turns", summary.TotalTurns,
		"bonus", summary.Bonus,
	)

	_, speak := e.deps.Narrator.Speak(narration.Request{
		Text: fmt.Sprintf("All done! You got %d out of %d.", summary.TurnsCorrect, summary.TotalTurns),
	})

	report, ok := tr.TakeReport()
	sink, epoch := e.deps.Rewards, tr.Epoch()
	done := func() tea.Msg {
		var err error
		if ok && sink != nil {
			err = sink.Report(context.Background(), report)
		}
		return CompletedMsg{Epoch: epoch, Summary: summary, RewardErr: err}
	}
	return tea.Batch(speak, done)
}

func (e *Engine) narrationFailed(tok Token) func(error) tea.Cmd {
	return func(err error) tea.Cmd {
		e.capture(err, "narration")
		if e.turn != nil && e.turn.Token != tok {
			return nil
		}
		return e.showNotice("Narration isn't working right now. Read along instead.")
	}
}

func (e *Engine) showNotice(text string) tea.Cmd {
	e.notice = text
	e.noticeSeq++
	seq := e.noticeSeq
	return tea.Tick(e.cfg.Timing.NoticeTTL, func(time.Time) tea.Msg { return noticeClearMsg{seq: seq} })
}

func (e *Engine) capture(err error, stage string) {
	if e.deps.Errors != nil {
		e.deps.Errors.Capture(err, map[string]string{"stage": stage, "exercise": string(e.cfg.Exercise)})
	}
}

func (e *Engine) clearCaption() {
	e.caption = ""
	e.captionStart = -1
	e.captionLen = 0
}

func (e *Engine) recordAnswer(t *Turn, msg answer.SubmitMsg, correct bool) {
	if e.deps.Recorder == nil {
		return
	}
	err := e.deps.Recorder.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:     e.deps.Tracker.SessionID(),
		Exercise:      string(t.Problem.Exercise),
		ItemID:        t.Problem.ItemID,
		Prompt:        t.Problem.Prompt,
		CorrectAnswer: t.Problem.Answer,
		LearnerAnswer: msg.Answer,
		Correct:       correct,
		Attempt:       t.Attempts,
		Source:        string(msg.Source),
		TimeMs:        time.Since(t.Started).Milliseconds(),
	})
	if err != nil {
		e.deps.Logger.Error("record answer", "error", err)
	}
}

func (e *Engine) recordSession(action string) {
	if e.deps.Recorder == nil {
		return
	}
	tr := e.deps.Tracker
	err := e.deps.Recorder.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:      tr.SessionID(),
		Action:         action,
		Exercise:       string(e.cfg.Exercise),
		Difficulty:     string(e.cfg.Difficulty),
		TurnsAttempted: tr.TurnsAttempted(),
		TurnsCorrect:   tr.ScoreCorrect(),
		WrongAnswers:   tr.WrongAnswers(),
		Bonus:          tr.Bonus(),
		DurationSecs:   int(tr.Elapsed().Seconds()),
	})
	if err != nil {
		e.deps.Logger.Error("record session event", "action", action, "error", err)
	}
}

// Turn returns the bound turn, or nil while loading or after completion.
func (e *Engine) Turn() *Turn { return e.turn }

// Loading reports whether a problem is being generated.
func (e *Engine) Loading() bool { return e.loading }

// GenerationError returns the last generation failure while no turn is bound.
func (e *Engine) GenerationError() error { return e.genErr }

// Completed reports whether the session finished.
func (e *Engine) Completed() bool { return e.completed }

// Current reports whether epoch is the running session.
func (e *Engine) Current(epoch int) bool { return epoch == e.deps.Tracker.Epoch() }

// Tracker exposes session counts for display.
func (e *Engine) Tracker() *session.Tracker { return e.deps.Tracker }

// Input exposes the answer controller for rendering.
func (e *Engine) Input() *answer.Controller { return e.deps.Input }

// Config returns the session configuration.
func (e *Engine) Config() Config { return e.cfg }

// Muted reports whether narration is off.
func (e *Engine) Muted() bool { return !e.deps.Narrator.Enabled() }

// Paused reports whether narration is paused.
func (e *Engine) Paused() bool { return e.paused }

// Notice returns the engine notice, falling back to the input's.
func (e *Engine) Notice() string {
	if e.notice != "" {
		return e.notice
	}
	return e.deps.Input.Notice()
}

// Caption returns the narrated text and the word being spoken, if known.
// start is -1 when no word is highlighted.
func (e *Engine) Caption() (text string, start, length int) {
	return e.caption, e.captionStart, e.captionLen
}
