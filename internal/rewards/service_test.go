package rewards

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/drillbuddy/internal/session"
	"github.com/abhisek/drillbuddy/internal/store"
)

type mockRepo struct {
	events []store.RewardEventData
	err    error
}

func (m *mockRepo) AppendRewardEvent(_ context.Context, data store.RewardEventData) error {
	if m.err != nil {
		return m.err
	}
	for _, e := range m.events {
		if e.SessionID == data.SessionID {
			return fmt.Errorf("reward for %s: %w", data.SessionID, store.ErrDuplicateReward)
		}
	}
	m.events = append(m.events, data)
	return nil
}

func (m *mockRepo) RewardTotal(_ context.Context) (int, error) {
	total := 0
	for _, e := range m.events {
		total += e.Points
	}
	return total, nil
}

func TestReport(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	err := svc.Report(ctx, session.Report{SessionID: "sess-1", TurnsCorrect: 4, TotalTurns: 5, Bonus: 8})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("persisted %d events, want 1", len(repo.events))
	}
	if repo.events[0].Points != 8 {
		t.Errorf("Points = %d, want 8", repo.events[0].Points)
	}

	last := svc.Last()
	if last == nil {
		t.Fatal("Last() = nil")
	}
	if last.Tier != TierGold {
		t.Errorf("Tier = %q, want %q", last.Tier, TierGold)
	}
	if last.Reason() != "4 of 5 correct" {
		t.Errorf("Reason() = %q", last.Reason())
	}
}

func TestReport_DuplicateIgnored(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()
	r := session.Report{SessionID: "sess-1", TurnsCorrect: 5, TotalTurns: 5, Bonus: 10}

	if err := svc.Report(ctx, r); err != nil {
		t.Fatalf("first Report: %v", err)
	}
	if err := svc.Report(ctx, r); err != nil {
		t.Errorf("second Report = %v, want nil", err)
	}
	total, _ := svc.Total(ctx)
	if total != 10 {
		t.Errorf("Total = %d, want 10", total)
	}
}

func TestReport_StoreError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&mockRepo{err: boom}, nil)

	err := svc.Report(context.Background(), session.Report{SessionID: "sess-1"})
	if !errors.Is(err, boom) {
		t.Errorf("Report = %v, want wrapped %v", err, boom)
	}
	if svc.Last() != nil {
		t.Error("failed report should not become the last award")
	}
}

func TestReport_NilRepo(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	if err := svc.Report(ctx, session.Report{SessionID: "sess-1", TurnsCorrect: 1, TotalTurns: 3, Bonus: 6}); err != nil {
		t.Fatalf("Report: %v", err)
	}
	total, err := svc.Total(ctx)
	if err != nil || total != 6 {
		t.Errorf("Total = %d, %v; want 6, nil", total, err)
	}
	if svc.Last().Tier != TierBronze {
		t.Errorf("Tier = %q, want %q", svc.Last().Tier, TierBronze)
	}
}

func TestReport_AgainstStore(t *testing.T) {
	s, err := store.Open("file:rewards_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	svc := NewService(s.EventRepo(), nil)
	ctx := context.Background()
	for i, bonus := range []int{10, 6} {
		r := session.Report{SessionID: fmt.Sprintf("sess-%d", i), TurnsCorrect: 5, TotalTurns: 5, Bonus: bonus}
		if err := svc.Report(ctx, r); err != nil {
			t.Fatalf("Report %d: %v", i, err)
		}
	}
	total, err := svc.Total(ctx)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if total != 16 {
		t.Errorf("Total = %d, want 16", total)
	}
}
