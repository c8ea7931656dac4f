package problemgen

import "github.com/abhisek/drillbuddy/internal/llm"

// ProblemSchema defines the JSON schema for LLM problem generation responses.
var ProblemSchema = &llm.Schema{
	Name:        "drill-problem",
	Description: "A single drill problem for a child, with answer and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "The problem shown to the learner, plain ASCII text",
			},
			"narration": map[string]any{
				"type":        "string",
				"description": "How the problem should be read aloud. Spell out symbols (say 'plus', not '+').",
			},
			"kind": map[string]any{
				"type":        "string",
				"enum":        []any{"numeric", "choice", "text"},
				"description": "numeric: a whole number answer. choice: pick one option. text: a typed word.",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer. For choice, the exact text of the correct option.",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2 to 6 options for choice problems, empty otherwise.",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A short nudge that does not give the answer away.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two sentences explaining the answer, age-appropriate.",
			},
		},
		"required":             []any{"prompt", "narration", "kind", "answer", "options", "hint", "explanation"},
		"additionalProperties": false,
	},
}
