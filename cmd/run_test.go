package cmd

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/drillbuddy/internal/problemgen"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DRILLBUDDY_LLM_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(name, "")
	}
}

func TestLLMBanner(t *testing.T) {
	if got := llmBanner(true); got != "" {
		t.Errorf("banner with an LLM = %q, want empty", got)
	}
	got := llmBanner(false)
	if !strings.Contains(got, "built-in generator") {
		t.Errorf("banner = %q, want it to mention the built-in generator", got)
	}
	if strings.Contains(got, "needs") {
		t.Errorf("banner = %q, claims an exercise needs an LLM", got)
	}
}

func TestBuildProviderWithoutLLM(t *testing.T) {
	clearLLMEnv(t)
	provider, ready := buildProvider(context.Background(), nil, slog.New(slog.DiscardHandler))
	if ready {
		t.Fatal("ready = true with no LLM configuration")
	}

	for _, ex := range []problemgen.Exercise{
		problemgen.ExerciseArithmetic,
		problemgen.ExerciseComparison,
		problemgen.ExerciseFillBlank,
	} {
		p, err := provider.Generate(context.Background(), problemgen.Params{Exercise: ex, Difficulty: problemgen.DifficultyEasy})
		if err != nil {
			t.Errorf("%s: %v", ex, err)
			continue
		}
		if p.Exercise != ex {
			t.Errorf("%s: generated a %s problem", ex, p.Exercise)
		}
	}
}
