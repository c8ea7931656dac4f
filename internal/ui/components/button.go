package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ButtonRow is a horizontal set of buttons; left/right move the focus and
// enter presses the focused one.
type ButtonRow struct {
	Labels  []string
	Actions []func() tea.Cmd
	Focused int
	Width   int
}

// NewButtonRow pairs labels with actions. Both slices must be the same
// length.
func NewButtonRow(labels []string, actions []func() tea.Cmd, width int) ButtonRow {
	return ButtonRow{Labels: labels, Actions: actions, Width: width}
}

// Update handles key events.
func (b ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(b.Labels) == 0 {
		return b, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		b.Focused = (b.Focused + len(b.Labels) - 1) % len(b.Labels)
	case "right", "l", "tab":
		b.Focused = (b.Focused + 1) % len(b.Labels)
	case "enter":
		if act := b.Actions[b.Focused]; act != nil {
			return b, act()
		}
	}
	return b, nil
}

// View renders the buttons side by side.
func (b ButtonRow) View() string {
	parts := make([]string, 0, 2*len(b.Labels))
	for i, label := range b.Labels {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, ArcadeButton(label, i == b.Focused, b.Width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
