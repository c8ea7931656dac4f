package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillbuddy/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector component.
type MultiChoice struct {
	Options      []string
	Selected     int
	ChosenIndex  int
	CorrectIndex int
}

// NewMultiChoice creates a selector with nothing chosen yet.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Update handles keyboard navigation. Choosing is left to the owner.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}

	return m, nil
}

// Select moves the cursor to i if it is in range.
func (m *MultiChoice) Select(i int) bool {
	if i < 0 || i >= len(m.Options) {
		return false
	}
	m.Selected = i
	return true
}

// Current returns the option under the cursor.
func (m MultiChoice) Current() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Reveal marks the chosen and correct options for feedback.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.ChosenIndex = chosen
	m.CorrectIndex = correct
}

// Reset clears a reveal so the learner can choose again.
func (m *MultiChoice) Reset() {
	m.ChosenIndex = -1
	m.CorrectIndex = -1
}

// Revealed reports whether feedback marks are showing.
func (m MultiChoice) Revealed() bool {
	return m.CorrectIndex >= 0
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Revealed() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Revealed() && i == m.CorrectIndex:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case m.Revealed() && i == m.ChosenIndex:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case m.Revealed():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
