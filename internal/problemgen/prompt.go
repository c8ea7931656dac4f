package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You create short practice drills for children aged 6-11. Every problem is read aloud, so it must make sense when heard.

Rules:
- Generate exactly one problem for the requested exercise and difficulty.
- Use plain ASCII text. No LaTeX, no Unicode symbols.
- Answers for numeric problems are whole numbers written with digits.
- For choice problems, give 2-6 options where exactly one is correct. Distractors should reflect common mistakes.
- The narration field is what a voice reads. Write numbers and symbols the way a person says them.
- Keep the explanation to one or two friendly sentences.
- Do not repeat any problem from the "already asked" list.`

// exerciseGuide describes each exercise to the model.
var exerciseGuide = map[Exercise]string{
	ExerciseArithmetic:      "A single arithmetic calculation with a numeric answer.",
	ExerciseTimesTable:      "A multiplication fact from the times tables with a numeric answer.",
	ExerciseComparison:      "Which of two or more numbers or quantities is bigger or smaller, as a choice problem.",
	ExerciseSequencing:      "A number pattern where the learner gives the next number, numeric answer.",
	ExerciseFillBlank:       "A sentence or equation with one blank marked ___ for the learner to fill. Numeric or text answer.",
	ExerciseDefinitionMatch: "Given a definition, choose the matching word, as a choice problem.",
	ExerciseSpelling:        "Say a word and use it in a sentence; the learner types the spelling. Text answer.",
}

// buildUserMessage constructs the user message from Params and Config limits.
func buildUserMessage(params Params, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exercise: %s\n", params.Exercise)
	if guide, ok := exerciseGuide[params.Exercise]; ok {
		fmt.Fprintf(&b, "About this exercise: %s\n", guide)
	}
	fmt.Fprintf(&b, "Difficulty: %s\n", params.Difficulty)
	if params.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", params.Category)
	}
	if params.Topic != "" {
		fmt.Fprintf(&b, "Theme: %s\n", params.Topic)
	}
	if params.Item != nil {
		fmt.Fprintf(&b, "Word: %s\n", params.Item.Word)
		if params.Item.Definition != "" {
			fmt.Fprintf(&b, "Definition: %s\n", params.Item.Definition)
		}
	}

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildDedup(params.Prior, cfg.MaxPriorPrompts))

	return b.String()
}
