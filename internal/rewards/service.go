// Package rewards turns completion reports into persisted reward events.
package rewards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/drillbuddy/internal/session"
	"github.com/abhisek/drillbuddy/internal/store"
)

// Repo is the slice of the event store rewards need.
type Repo interface {
	AppendRewardEvent(ctx context.Context, data store.RewardEventData) error
	RewardTotal(ctx context.Context) (int, error)
}

// Award is the reward granted for one session.
type Award struct {
	SessionID    string
	Tier         Tier
	Points       int
	TurnsCorrect int
	TotalTurns   int
	AwardedAt    time.Time
}

// Reason is a short line for the summary screen.
func (a Award) Reason() string {
	return fmt.Sprintf("%d of %d correct", a.TurnsCorrect, a.TotalTurns)
}

// Service receives session completion reports. It implements
// session.RewardSink.
type Service struct {
	repo   Repo
	logger *slog.Logger
	last   *Award
}

// NewService returns a Service persisting to repo. repo may be nil, in which
// case awards are only kept in memory.
func NewService(repo Repo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

var _ session.RewardSink = (*Service)(nil)

// Report records the reward for a completed session. Reporting the same
// session twice is not an error; the second report is ignored.
func (s *Service) Report(ctx context.Context, r session.Report) error {
	award := &Award{
		SessionID:    r.SessionID,
		Tier:         TierFor(r.TurnsCorrect, r.TotalTurns),
		Points:       r.Bonus,
		TurnsCorrect: r.TurnsCorrect,
		TotalTurns:   r.TotalTurns,
		AwardedAt:    time.Now(),
	}

	if s.repo != nil {
		err := s.repo.AppendRewardEvent(ctx, store.RewardEventData{
			SessionID:    r.SessionID,
			TurnsCorrect: r.TurnsCorrect,
			TotalTurns:   r.TotalTurns,
			Points:       r.Bonus,
		})
		if errors.Is(err, store.ErrDuplicateReward) {
			s.logger.Warn("duplicate reward report ignored", "session_id", r.SessionID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("record reward: %w", err)
		}
	}

	s.last = award
	s.logger.Info("reward recorded", "session_id", r.SessionID, "points", r.Bonus, "tier", award.Tier)
	return nil
}

// Last returns the most recent award, or nil.
func (s *Service) Last() *Award { return s.last }

// Total returns the points earned across all sessions.
func (s *Service) Total(ctx context.Context) (int, error) {
	if s.repo == nil {
		if s.last != nil {
			return s.last.Points, nil
		}
		return 0, nil
	}
	return s.repo.RewardTotal(ctx)
}
