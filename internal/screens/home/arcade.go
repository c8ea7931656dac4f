package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillbuddy/internal/ui/components"
	"github.com/abhisek/drillbuddy/internal/ui/theme"
)

const arcadeTitleFull = `█▀▄ █▀█ █ █   █     █▀▄ █ █ █▀▄ █▀▄ █ █
█ █ █▀▄ █ █   █     █▀▄ █ █ █ █ █ █  █
▀▀  ▀ ▀ ▀ ▀▀▀ ▀▀▀   ▀▀  ▀▀▀ ▀▀  ▀▀   ▀ `

const arcadeTitleCompact = "D · R · I · L · L · B · U · D · D · Y"

const buttonWidth = 24

func renderTitle(cw int, compact bool) string {
	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(art))
}

// renderStatsBar shows lifetime points and how the last session went.
func renderStatsBar(points int, last *lastSession, cw int, compact bool) string {
	pointStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	lastStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = pointStyle.Render(fmt.Sprintf("★%d", points))
		if last != nil {
			stats += " " + lastStyle.Render(fmt.Sprintf("%s %d/%d", last.Tier.Icon(), last.Correct, last.Total))
		}
	} else {
		stats = pointStyle.Render(fmt.Sprintf("★ %d POINTS", points)) + "  "
		if last != nil {
			stats += lastStyle.Render(fmt.Sprintf("%s LAST: %s %d/%d",
				last.Tier.Icon(), strings.ToUpper(last.Exercise.DisplayName()), last.Correct, last.Total))
		} else {
			stats += dimStyle.Render("NO GAMES YET")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderArcadeMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact drops the button borders for small terminals.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(fmt.Sprintf(" ▸ %d %s ", i+1, label)))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render(fmt.Sprintf("   %d %s", i+1, label)))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderBanner(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
