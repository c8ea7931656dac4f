package turn

import (
	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/session"
)

// problemMsg carries a generated problem, or the reason there is none.
type problemMsg struct {
	tok     Token
	problem *problemgen.Problem
	err     error
}

// advanceMsg ends the turn. Feedback narration, the silent timer, the
// fallback timer and the reveal timer all send it; the first one wins.
type advanceMsg struct {
	tok Token
}

type noticeClearMsg struct {
	seq int
}

// CompletedMsg is sent once per session after the completion report was
// handed to the reward collaborator.
type CompletedMsg struct {
	Epoch     int
	Summary   session.Summary
	RewardErr error
}
