// Package turn runs drill sessions one problem at a time. The Engine is a
// state machine driven entirely by Bubble Tea messages: generation,
// narration, dictation and timers all re-enter through Update, and every
// asynchronous message carries the Token of the turn it was issued for.
package turn

import (
	"time"

	"github.com/abhisek/drillbuddy/internal/problemgen"
)

// Phase is where a turn is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePresented
	PhaseAwaiting
	PhaseEvaluating
	PhaseFeedback
	PhaseAdvancing
)

func (p Phase) String() string {
	switch p {
	case PhasePresented:
		return "presented"
	case PhaseAwaiting:
		return "awaiting_answer"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseFeedback:
		return "feedback"
	case PhaseAdvancing:
		return "advancing"
	}
	return "idle"
}

// AttemptState is the outcome of the latest attempt.
type AttemptState string

const (
	Unattempted AttemptState = "unattempted"
	Correct     AttemptState = "correct"
	Incorrect   AttemptState = "incorrect"
)

// Token identifies the session epoch and turn an async message belongs to.
type Token struct {
	Epoch int
	Turn  int
}

// Turn is one bound problem and its resolution.
type Turn struct {
	Problem   *problemgen.Problem
	RawInput  string
	State     AttemptState
	Attempts  int
	Revealed  bool
	HintShown bool
	Phase     Phase
	Token     Token

	// Feedback is the message shown after the latest attempt.
	Feedback string
	Started  time.Time

	advanced bool
}

// Timing holds the engine's delays and thresholds.
type Timing struct {
	// FeedbackPerChar scales the silent feedback delay with message length.
	FeedbackPerChar time.Duration
	FeedbackMin     time.Duration
	FeedbackMax     time.Duration

	// FallbackSlack is added to the feedback delay for the timer armed
	// alongside feedback narration.
	FallbackSlack time.Duration

	// RevealDelay is how long a revealed answer stays before advancing.
	RevealDelay time.Duration

	// HintAfter is the wrong-attempt count that unlocks the hint. The
	// reveal unlocks two attempts later.
	HintAfter int

	GenerateTimeout time.Duration
	NoticeTTL       time.Duration
}

// DefaultTiming returns delays tuned for young readers.
func DefaultTiming() Timing {
	return Timing{
		FeedbackPerChar: 60 * time.Millisecond,
		FeedbackMin:     1500 * time.Millisecond,
		FeedbackMax:     6 * time.Second,
		FallbackSlack:   5 * time.Second,
		RevealDelay:     3 * time.Second,
		HintAfter:       2,
		GenerateTimeout: 30 * time.Second,
		NoticeTTL:       4 * time.Second,
	}
}

// FeedbackDelay is the silent display time for a feedback message.
func (t Timing) FeedbackDelay(text string) time.Duration {
	d := time.Duration(len(text)) * t.FeedbackPerChar
	return min(max(d, t.FeedbackMin), t.FeedbackMax)
}
