package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillbuddy/internal/ui/theme"
)

// ProgressBar displays a horizontal bar with an optional "done/target"
// counter.
type ProgressBar struct {
	Label  string
	Done   int
	Target int
	Width  int
}

// NewProgressBar creates a progress bar for done out of target.
func NewProgressBar(label string, done, target, width int) ProgressBar {
	return ProgressBar{
		Label:  label,
		Done:   done,
		Target: target,
		Width:  width,
	}
}

// Fraction is Done/Target clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Target <= 0 {
		return 0
	}
	return min(1, max(0, float64(p.Done)/float64(p.Target)))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Done, p.Target)
	barWidth := p.Width - lipgloss.Width(result) - len(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)

	return result
}
