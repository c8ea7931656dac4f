// Package drill is the screen that runs one exercise session.
package drill

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drillbuddy/internal/notify"
	"github.com/abhisek/drillbuddy/internal/rewards"
	"github.com/abhisek/drillbuddy/internal/router"
	"github.com/abhisek/drillbuddy/internal/screen"
	"github.com/abhisek/drillbuddy/internal/screens/summary"
	"github.com/abhisek/drillbuddy/internal/turn"
	"github.com/abhisek/drillbuddy/internal/ui/layout"
)

// Options are the screen's optional collaborators.
type Options struct {
	Rewards  *rewards.Service
	Notifier *notify.Notifier
	Logger   *slog.Logger
}

// DrillScreen wraps a turn.Engine.
type DrillScreen struct {
	engine      *turn.Engine
	opts        Options
	confirmQuit bool
	closed      bool
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.BackHandler = (*DrillScreen)(nil)
var _ screen.Closer = (*DrillScreen)(nil)

// New returns a screen that starts a session on Init.
func New(engine *turn.Engine, opts Options) *DrillScreen {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &DrillScreen{engine: engine, opts: opts}
}

func (s *DrillScreen) Init() tea.Cmd {
	return s.engine.Start()
}

func (s *DrillScreen) Title() string {
	return s.engine.Config().Exercise.DisplayName()
}

func (s *DrillScreen) HandlesBack() bool { return true }

// Close stops narration, dictation and generation for the session.
func (s *DrillScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.engine.Leave()
}

// Engine exposes the running engine.
func (s *DrillScreen) Engine() *turn.Engine { return s.engine }

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	e := s.engine
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if e.GenerationError() != nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Answer"}}
	if e.Input().CanDictate() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+L", Description: "Say it"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+P", Description: "Repeat"})
	if e.HintAvailable() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Hint"})
	}
	if e.RevealAvailable() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Show answer"})
	}
	mute := "Mute"
	if e.Muted() {
		mute = "Unmute"
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+T", Description: mute},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case turn.CompletedMsg:
		return s, s.handleCompleted(msg)

	case summary.PlayAgainMsg:
		s.confirmQuit = false
		return s, s.engine.Restart()

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, s.engine.Update(msg)
}

func (s *DrillScreen) handleCompleted(msg turn.CompletedMsg) tea.Cmd {
	if s.closed || !s.engine.Current(msg.Epoch) {
		return nil
	}
	sum := msg.Summary
	exercise := s.Title()

	var award *rewards.Award
	if msg.RewardErr != nil {
		s.opts.Logger.Error("reward not recorded", "session_id", sum.SessionID, "error", msg.RewardErr)
	} else if s.opts.Rewards != nil {
		award = s.opts.Rewards.Last()
	}
	s.opts.Notifier.SessionComplete(exercise, sum.TurnsCorrect, sum.TotalTurns, sum.Bonus)

	return func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(exercise, sum, award)}
	}
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	e := s.engine
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.Close()
			return func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return nil
	}

	switch key {
	case "esc":
		if e.Completed() {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.confirmQuit = true
		return nil
	case "ctrl+t":
		e.ToggleMute()
		return nil
	case "ctrl+o":
		e.TogglePause()
		return nil
	case "ctrl+p":
		return e.Replay()
	case "ctrl+l":
		return e.Dictate()
	case "tab":
		return e.ShowHint()
	case "ctrl+e":
		return e.Reveal()
	case "ctrl+r":
		return e.Restart()
	}

	if e.Turn() == nil {
		if e.GenerationError() != nil && (key == "r" || key == "R") {
			return e.Retry()
		}
		return nil
	}
	return e.Update(msg)
}
