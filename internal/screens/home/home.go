package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/rewards"
	"github.com/abhisek/drillbuddy/internal/router"
	"github.com/abhisek/drillbuddy/internal/screen"
	"github.com/abhisek/drillbuddy/internal/store"
	"github.com/abhisek/drillbuddy/internal/ui/components"
	"github.com/abhisek/drillbuddy/internal/ui/layout"
)

// PointsSource reports the lifetime points total.
type PointsSource interface {
	Total(ctx context.Context) (int, error)
}

// SessionSource lists finished sessions, newest first.
type SessionSource interface {
	QuerySessionSummaries(ctx context.Context, opts store.QueryOpts) ([]store.SessionSummaryRecord, error)
}

// Options wires the home screen to the rest of the app. Only NewDrill is
// required.
type Options struct {
	// Exercises are offered in this order. Empty means every exercise.
	Exercises []problemgen.Exercise

	// NewDrill builds the screen that runs a session of the exercise.
	NewDrill func(problemgen.Exercise) screen.Screen

	// History builds the history screen. Nil hides the menu entry.
	History func() screen.Screen

	Points   PointsSource
	Sessions SessionSource

	// Banner is a one-line note shown above the menu, such as a missing
	// API key warning.
	Banner string
}

type lastSession struct {
	Exercise problemgen.Exercise
	Correct  int
	Total    int
	Tier     rewards.Tier
}

type statsLoadedMsg struct {
	points int
	last   *lastSession
}

// HomeScreen is the root screen: a menu of exercises and a stats bar.
type HomeScreen struct {
	opts       Options
	menu       components.Menu
	menuLabels []string
	points     int
	last       *lastSession
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if len(opts.Exercises) == 0 {
		opts.Exercises = problemgen.AllExercises()
	}

	var items []components.MenuItem
	for _, ex := range opts.Exercises {
		items = append(items, components.MenuItem{
			Label: strings.ToUpper(ex.DisplayName()),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: opts.NewDrill(ex)}
				}
			},
		})
	}
	if opts.History != nil {
		items = append(items, components.MenuItem{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: opts.History()}
			}
		}})
	}
	items = append(items, components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
		return tea.Quit
	}})

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}

	return &HomeScreen{
		opts:       opts,
		menu:       components.NewMenu(items),
		menuLabels: labels,
	}
}

// Init reloads the stats bar. It runs again whenever the app returns home.
func (h *HomeScreen) Init() tea.Cmd {
	points, sessions := h.opts.Points, h.opts.Sessions
	if points == nil && sessions == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		var msg statsLoadedMsg
		if points != nil {
			msg.points, _ = points.Total(ctx)
		}
		if sessions != nil {
			recs, err := sessions.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 1})
			if err == nil && len(recs) > 0 {
				r := recs[0]
				msg.last = &lastSession{
					Exercise: problemgen.Exercise(r.Exercise),
					Correct:  r.TurnsCorrect,
					Total:    r.TurnsAttempted,
					Tier:     rewards.TierFor(r.TurnsCorrect, r.TurnsAttempted),
				}
			}
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.points = msg.points
		h.last = msg.last
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes header and footer; add them back to judge the terminal
	compact := layout.IsCompactWidth(width) ||
		layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.last), cw))
	}
	sections = append(sections, renderStatsBar(h.points, h.last, cw, compact))
	if h.opts.Banner != "" {
		sections = append(sections, renderBanner(h.opts.Banner, cw))
	}
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Points returns the last loaded points total.
func (h *HomeScreen) Points() int { return h.points }
