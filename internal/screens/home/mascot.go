package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillbuddy/internal/rewards"
	"github.com/abhisek/drillbuddy/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // first visit
	MascotCelebrating                      // last session earned gold or better
	MascotCheering                         // played before
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ abc │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ 123 │
└─╥═╥─┘
  ╚═╝`

const mascotCheering = `  \ /
┌─────┐
│ ^ ^ │
│  ▿  │
│ abc │
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotCheering:
		art, fg = mascotCheering, theme.ArcadeCyan
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

func mascotFor(last *lastSession) MascotVariant {
	switch {
	case last == nil:
		return MascotIdle
	case last.Tier == rewards.TierGold || last.Tier == rewards.TierStar:
		return MascotCelebrating
	default:
		return MascotCheering
	}
}
