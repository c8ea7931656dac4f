package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. High contrast for young readers.
var (
	Primary      = lipgloss.Color("#6366F1") // Indigo
	Secondary    = lipgloss.Color("#0EA5E9") // Sky
	Accent       = lipgloss.Color("#F59E0B") // Amber
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#EF4444") // Red
	Text         = lipgloss.Color("#F8FAFC") // White
	TextDim      = lipgloss.Color("#94A3B8") // Slate
	BgDark       = lipgloss.Color("#0F172A") // Navy
	BgCard       = lipgloss.Color("#1E293B") // Dark slate
	Border       = lipgloss.Color("#334155") // Slate
	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Narration captions
var (
	Caption = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	// Spoken marks the word currently being narrated.
	Spoken = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(ArcadeYellow).
		Bold(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)
)
