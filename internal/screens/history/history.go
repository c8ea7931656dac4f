package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/rewards"
	"github.com/abhisek/drillbuddy/internal/router"
	"github.com/abhisek/drillbuddy/internal/screen"
	"github.com/abhisek/drillbuddy/internal/store"
	"github.com/abhisek/drillbuddy/internal/ui/layout"
	"github.com/abhisek/drillbuddy/internal/ui/theme"
)

// Repo is the part of the event store the history screen reads.
type Repo interface {
	QuerySessionSummaries(ctx context.Context, opts store.QueryOpts) ([]store.SessionSummaryRecord, error)
	QueryRewardEvents(ctx context.Context, opts store.QueryOpts) ([]store.RewardRecord, error)
}

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Rewards  map[string]store.RewardRecord // sessionID -> reward
	Err      error
}

// HistoryScreen lists past sessions and the points they earned.
type HistoryScreen struct {
	repo     Repo
	sessions []store.SessionSummaryRecord
	rewards  map[string]store.RewardRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo Repo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		rewards:  make(map[string]store.RewardRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// A session without a reward row still shows; it just earned nothing.
		bySession := make(map[string]store.RewardRecord)
		all, err := repo.QueryRewardEvents(ctx, store.QueryOpts{})
		if err == nil {
			for _, r := range all {
				bySession[r.SessionID] = r
			}
		}
		return historyLoadedMsg{Sessions: sessions, Rewards: bySession}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.rewards = msg.Rewards
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			if len(s.sessions) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Pick a game to start!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+sessionLine(sess))))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, line := range s.details(sess) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func sessionLine(sess store.SessionSummaryRecord) string {
	dateStr := sess.Timestamp.Format("Jan 02, 2006")
	durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)
	name := problemgen.Exercise(sess.Exercise).DisplayName()
	return fmt.Sprintf("%s  %-18s %s  %d/%d correct", dateStr, name, durationStr, sess.TurnsCorrect, sess.TurnsAttempted)
}

func (s *HistoryScreen) details(sess store.SessionSummaryRecord) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	lines := []string{dim.Render(fmt.Sprintf("    %s difficulty, %d wrong answers", sess.Difficulty, sess.WrongAnswers))}

	r, ok := s.rewards[sess.SessionID]
	if !ok {
		return append(lines, dim.Render("    No points this session"))
	}
	tier := rewards.TierFor(r.TurnsCorrect, r.TotalTurns)
	line := fmt.Sprintf("    %s %s  +%d points", tier.Icon(), tier.DisplayName(), r.Points)
	return append(lines, lipgloss.NewStyle().Foreground(tierColor(tier)).Render(line))
}

func tierColor(t rewards.Tier) color.Color {
	switch t {
	case rewards.TierSilver:
		return theme.Secondary
	case rewards.TierGold:
		return theme.ArcadeYellow
	case rewards.TierStar:
		return theme.Accent
	default:
		return theme.Text
	}
}
