package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SessionEventData records a session lifecycle transition.
type SessionEventData struct {
	SessionID      string
	Action         string // "start", "end", "restart" or "quit"
	Exercise       string
	Difficulty     string
	TurnsAttempted int
	TurnsCorrect   int
	WrongAnswers   int
	Bonus          int
	DurationSecs   int
}

// AnswerEventData records one evaluated attempt.
type AnswerEventData struct {
	SessionID     string
	Exercise      string
	ItemID        string
	Prompt        string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	Attempt       int
	Source        string // "typed" or "dictated"
	TimeMs        int64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// RewardEventData records the completion bonus of one session.
type RewardEventData struct {
	SessionID    string
	TurnsCorrect int
	TotalTurns   int
	Points       int
}

// SessionSummaryRecord is a completed session as listed in history.
type SessionSummaryRecord struct {
	SessionID      string
	Exercise       string
	Difficulty     string
	TurnsAttempted int
	TurnsCorrect   int
	WrongAnswers   int
	Bonus          int
	DurationSecs   int
	Sequence       int64
	Timestamp      time.Time
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// RewardRecord is a stored reward event.
type RewardRecord struct {
	RewardEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendRewardEvent records a session reward. A second reward for the
	// same session returns ErrDuplicateReward.
	AppendRewardEvent(ctx context.Context, data RewardEventData) error

	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)
	QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardRecord, error)

	// AnswerCount returns how many attempts were recorded for a session.
	AnswerCount(ctx context.Context, sessionID string) (int, error)

	// RewardTotal sums the points of every reward event.
	RewardTotal(ctx context.Context) (int, error)
}
