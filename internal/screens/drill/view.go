package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/turn"
	"github.com/abhisek/drillbuddy/internal/ui/components"
	"github.com/abhisek/drillbuddy/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	e := s.engine
	switch {
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case e.Turn() == nil && e.GenerationError() != nil:
		return renderGenerationError(width, e.GenerationError())
	case e.Turn() == nil:
		return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n\n  Thinking up a problem...")
	}
	return s.renderTurn(width)
}

func (s *DrillScreen) renderTurn(width int) string {
	e := s.engine
	t := e.Turn()
	tr := e.Tracker()

	var b strings.Builder

	// Info line.
	cfg := e.Config()
	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s · %s", cfg.Exercise.DisplayName(), cfg.Difficulty))
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.statusFlags() +
		fmt.Sprintf("%s %d", lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), tr.ScoreCorrect()))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", tr.Done(), tr.Target(), min(width-4, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	// Prompt, with the narrated word highlighted when the narration is the
	// prompt itself.
	prompt := t.Problem.Prompt
	caption, start, length := e.Caption()
	if caption == prompt {
		prompt = highlight(prompt, start, length)
		caption = ""
	}
	b.WriteString(centered(width, theme.Caption, prompt))
	b.WriteString("\n")
	if caption != "" {
		b.WriteString(centered(width, theme.Hint, highlight(caption, start, length)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Answer area.
	if t.Problem.Kind == problemgen.KindChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, e.Input().View()))
	} else {
		b.WriteString(centered(width, lipgloss.NewStyle(), "Answer: "+e.Input().View()))
	}
	b.WriteString("\n\n")

	if e.Input().Listening() {
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true), "🎤 Listening..."))
		b.WriteString("\n")
	}

	if t.Feedback != "" {
		style := theme.Incorrect
		if t.State == turn.Correct {
			style = theme.Correct
		}
		b.WriteString(centered(width, style, t.Feedback))
		b.WriteString("\n")
	}

	if t.HintShown {
		b.WriteString(centered(width, theme.Hint, "Hint: "+t.Problem.Hint))
		b.WriteString("\n")
	}

	if n := e.Notice(); n != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Notice, n))
	}

	return b.String()
}

func (s *DrillScreen) statusFlags() string {
	var flags []string
	if s.engine.Muted() {
		flags = append(flags, "🔇")
	} else if s.engine.Paused() {
		flags = append(flags, "⏸")
	}
	if len(flags) == 0 {
		return ""
	}
	return strings.Join(flags, " ") + "  "
}

// highlight renders text with the span [start, start+length) marked.
// Offsets are byte offsets into text; out-of-range spans render plain.
func highlight(text string, start, length int) string {
	if start < 0 || length <= 0 || start+length > len(text) {
		return text
	}
	return text[:start] + theme.Spoken.Render(text[start:start+length]) + text[start+length:]
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "Stop this session?"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "You won't get points for it."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Error), "[Y] Yes, stop"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

func renderGenerationError(width int, err error) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Error).Bold(true), "Couldn't make a problem this time."))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), err.Error()))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text), "Press R to try again or Esc to leave."))
	return b.String()
}
