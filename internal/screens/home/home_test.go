package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/rewards"
	"github.com/abhisek/drillbuddy/internal/router"
	"github.com/abhisek/drillbuddy/internal/screen"
	"github.com/abhisek/drillbuddy/internal/store"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

type fixedPoints int

func (p fixedPoints) Total(context.Context) (int, error) { return int(p), nil }

type fixedSessions []store.SessionSummaryRecord

func (f fixedSessions) QuerySessionSummaries(context.Context, store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return f, nil
}

func drillFactory(got *problemgen.Exercise) func(problemgen.Exercise) screen.Screen {
	return func(ex problemgen.Exercise) screen.Screen {
		*got = ex
		return &stubScreen{title: string(ex)}
	}
}

func TestMenuListsExercises(t *testing.T) {
	var picked problemgen.Exercise
	h := New(Options{NewDrill: drillFactory(&picked), History: func() screen.Screen { return &stubScreen{title: "history"} }})

	want := len(problemgen.AllExercises()) + 2
	require.Len(t, h.menuLabels, want)
	assert.Equal(t, "ARITHMETIC", h.menuLabels[0])
	assert.Equal(t, "HISTORY", h.menuLabels[want-2])
	assert.Equal(t, "EXIT", h.menuLabels[want-1])
}

func TestMenuPushesDrill(t *testing.T) {
	var picked problemgen.Exercise
	h := New(Options{
		Exercises: []problemgen.Exercise{problemgen.ExerciseSpelling, problemgen.ExerciseComparison},
		NewDrill:  drillFactory(&picked),
	})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Nil(t, cmd)
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, problemgen.ExerciseComparison, picked)
	assert.Equal(t, "comparison", push.Screen.Title())
}

func TestDigitShortcut(t *testing.T) {
	var picked problemgen.Exercise
	h := New(Options{NewDrill: drillFactory(&picked)})

	_, cmd := h.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, problemgen.ExerciseComparison, picked)
}

func TestNoHistoryEntryWithoutFactory(t *testing.T) {
	h := New(Options{NewDrill: drillFactory(new(problemgen.Exercise))})
	for _, l := range h.menuLabels {
		assert.NotEqual(t, "HISTORY", l)
	}
}

func TestInitLoadsStats(t *testing.T) {
	h := New(Options{
		NewDrill: drillFactory(new(problemgen.Exercise)),
		Points:   fixedPoints(42),
		Sessions: fixedSessions{{Exercise: "spelling", TurnsAttempted: 4, TurnsCorrect: 4}},
	})
	cmd := h.Init()
	require.NotNil(t, cmd)
	h.Update(cmd())

	assert.Equal(t, 42, h.Points())
	require.NotNil(t, h.last)
	assert.Equal(t, rewards.TierStar, h.last.Tier)
	assert.Equal(t, MascotCelebrating, mascotFor(h.last))

	view := h.View(120, 40)
	assert.True(t, strings.Contains(view, "42 POINTS"), view)
	assert.True(t, strings.Contains(view, "LAST: SPELLING 4/4"), view)
}

func TestInitWithoutSources(t *testing.T) {
	h := New(Options{NewDrill: drillFactory(new(problemgen.Exercise))})
	assert.Nil(t, h.Init())
	assert.Equal(t, MascotIdle, mascotFor(h.last))
	assert.Contains(t, h.View(120, 40), "NO GAMES YET")
}

func TestCompactView(t *testing.T) {
	h := New(Options{NewDrill: drillFactory(new(problemgen.Exercise)), Banner: "Offline mode"})
	view := h.View(80, 20)
	assert.Contains(t, view, "1 ARITHMETIC")
	assert.Contains(t, view, "Offline mode")
}
