package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillbuddy/internal/rewards"
	"github.com/abhisek/drillbuddy/internal/router"
	"github.com/abhisek/drillbuddy/internal/screen"
	"github.com/abhisek/drillbuddy/internal/session"
	"github.com/abhisek/drillbuddy/internal/ui/components"
	"github.com/abhisek/drillbuddy/internal/ui/layout"
	"github.com/abhisek/drillbuddy/internal/ui/theme"
)

// PlayAgainMsg is delivered to the screen below the summary after it pops.
type PlayAgainMsg struct{}

// SummaryScreen displays the result of a finished session.
type SummaryScreen struct {
	exercise string
	summary  session.Summary
	award    *rewards.Award
	buttons  components.ButtonRow
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a SummaryScreen. award is nil when the reward could not be
// recorded.
func New(exercise string, sum session.Summary, award *rewards.Award) *SummaryScreen {
	s := &SummaryScreen{exercise: exercise, summary: sum, award: award}
	s.buttons = components.NewButtonRow(
		[]string{"PLAY AGAIN", "HOME"},
		[]func() tea.Cmd{playAgain, home},
		14,
	)
	return s
}

func playAgain() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return PlayAgainMsg{} },
	)
}

func home() tea.Cmd {
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) HandlesBack() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, home()
	case "a":
		return s, playAgain()
	}
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(theme.Title, "All done!"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), s.exercise))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Problems: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalTurns, sum.TurnsCorrect, sum.Accuracy*100)
	b.WriteString(center(theme.Body, stats))
	b.WriteString("\n")
	if sum.WrongAnswers > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("Tries that missed: %d", sum.WrongAnswers)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	if s.award != nil {
		line := fmt.Sprintf("%s %s  +%d points", s.award.Tier.Icon(), s.award.Tier.DisplayName(), s.award.Points)
		b.WriteString(center(lipgloss.NewStyle().Foreground(tierColor(s.award.Tier)).Bold(true), line))
	} else {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent),
			fmt.Sprintf("+%d points (not saved)", sum.Bonus)))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.buttons.View()))

	return b.String()
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
