package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillbuddy/internal/router"
	"github.com/abhisek/drillbuddy/internal/screen"
	"github.com/abhisek/drillbuddy/internal/turn"
	"github.com/abhisek/drillbuddy/internal/ui/layout"
)

// PointsSource reports the lifetime points shown in the header.
type PointsSource interface {
	Total(ctx context.Context) (int, error)
}

// Options configure the root model. Every field may be nil.
type Options struct {
	Points PointsSource
	Logger *slog.Logger

	// Start is pushed above the root screen when the program starts.
	Start screen.Screen
}

type pointsMsg struct {
	total int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	points int
	width  int
	height int
}

// NewAppModel creates an AppModel with home at the bottom of the stack.
func NewAppModel(home screen.Screen, opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return AppModel{
		router: router.New(home),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init(), m.refreshPoints()}
	if start := m.opts.Start; start != nil {
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: start} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) refreshPoints() tea.Cmd {
	src, logger := m.opts.Points, m.opts.Logger
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		total, err := src.Total(context.Background())
		if err != nil {
			logger.Warn("points total unavailable", "error", err)
			return nil
		}
		return pointsMsg{total: total}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pointsMsg:
		m.points = msg.total
		return m, nil

	case turn.CompletedMsg:
		// The reward is already stored when this arrives.
		return m, tea.Batch(m.router.Update(msg), m.refreshPoints())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.closeAll()
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

// closeAll stops whatever the open screens own before the program exits.
func (m AppModel) closeAll() {
	m.router.PopToRoot()
	if c, ok := m.router.Active().(screen.Closer); ok {
		c.Close()
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, layout.Points(m.points), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program with home as the root screen.
func Run(home screen.Screen, opts Options) error {
	m := NewAppModel(home, opts)
	p := tea.NewProgram(m)
	_, err := p.Run()
	m.closeAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
