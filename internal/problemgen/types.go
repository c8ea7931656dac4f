package problemgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/drillbuddy/internal/wordlist"
)

// Kind describes how an answer is entered and compared.
type Kind string

const (
	// KindNumeric answers are integers, typed or spoken.
	KindNumeric Kind = "numeric"

	// KindChoice answers are one of the problem's options.
	KindChoice Kind = "choice"

	// KindText answers are free text compared case-insensitively (spelling).
	KindText Kind = "text"
)

// Exercise identifies a drill type.
type Exercise string

const (
	ExerciseArithmetic      Exercise = "arithmetic"
	ExerciseTimesTable      Exercise = "times-table"
	ExerciseComparison      Exercise = "comparison"
	ExerciseSequencing      Exercise = "sequencing"
	ExerciseFillBlank       Exercise = "fill-blank"
	ExerciseDefinitionMatch Exercise = "definition-match"
	ExerciseSpelling        Exercise = "spelling"
)

// AllExercises returns every exercise type in menu order.
func AllExercises() []Exercise {
	return []Exercise{
		ExerciseArithmetic,
		ExerciseTimesTable,
		ExerciseComparison,
		ExerciseSequencing,
		ExerciseFillBlank,
		ExerciseDefinitionMatch,
		ExerciseSpelling,
	}
}

// ParseExercise resolves an exercise name.
func ParseExercise(s string) (Exercise, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range AllExercises() {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown exercise %q", s)
}

// DisplayName returns a human-readable label for the exercise.
func (e Exercise) DisplayName() string {
	switch e {
	case ExerciseArithmetic:
		return "Arithmetic"
	case ExerciseTimesTable:
		return "Times Tables"
	case ExerciseComparison:
		return "Bigger or Smaller"
	case ExerciseSequencing:
		return "What Comes Next"
	case ExerciseFillBlank:
		return "Fill the Blank"
	case ExerciseDefinitionMatch:
		return "Word Meanings"
	case ExerciseSpelling:
		return "Spelling Bee"
	default:
		return string(e)
	}
}

// ListBacked reports whether the exercise drills items from a word list
// rather than freshly generated problems.
func (e Exercise) ListBacked() bool {
	return e == ExerciseDefinitionMatch || e == ExerciseSpelling
}

// MultiAttempt reports whether a wrong answer re-arms the same problem.
func (e Exercise) MultiAttempt() bool {
	return e == ExerciseSpelling
}

// Difficulty is the coarse difficulty requested from a provider.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty resolves a difficulty name. Empty means medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium, "":
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// Problem is one drill item ready to be presented.
type Problem struct {
	// Prompt is the text displayed to the learner.
	Prompt string

	// Narration is what gets spoken. Falls back to Prompt when empty.
	Narration string

	// Kind selects the answer strategy.
	Kind Kind

	// Answer is the canonical correct answer. For choice problems it is the
	// text of exactly one entry in Options.
	Answer string

	// Options is populated only for choice problems, in display order.
	Options []string

	// Explanation is shown (and spoken) after an incorrect answer.
	Explanation string

	// Hint is an optional nudge unlocked after repeated wrong attempts.
	Hint string

	// ItemID identifies the source item for list-backed sessions.
	ItemID string

	// Exercise is the drill type the problem was generated for.
	Exercise Exercise

	// Difficulty is the requested difficulty.
	Difficulty Difficulty
}

// SpokenText returns the text to narrate when the problem is presented.
func (p *Problem) SpokenText() string {
	if p.Narration != "" {
		return p.Narration
	}
	return p.Prompt
}

// Params configures a single generation request.
type Params struct {
	Exercise   Exercise
	Difficulty Difficulty

	// Topic is an optional free-text theme ("dinosaurs", "space").
	Topic string

	// Category is an exercise-specific selector: the operation for
	// arithmetic ("add", "subtract", "multiply", "divide", "mixed"), the
	// table for times-table ("7"), and so on.
	Category string

	// Item is the word-list entry to drill in list-backed sessions.
	Item *wordlist.Item

	// Items is the whole list, used to draw distractors.
	Items []wordlist.Item

	// Prior holds prompts already presented this session for deduplication.
	Prior []string
}

// Provider produces problems for an exercise type.
type Provider interface {
	// Generate returns a validated problem or a descriptive error. Callers
	// surface errors as a retry prompt and do not create a turn.
	Generate(ctx context.Context, params Params) (*Problem, error)
}
