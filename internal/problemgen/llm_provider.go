package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/drillbuddy/internal/llm"
)

// LLMProvider implements Provider using an LLM.
type LLMProvider struct {
	provider llm.Provider
	config   Config
}

// NewLLMProvider creates a new LLM-backed problem provider.
func NewLLMProvider(provider llm.Provider, cfg Config) *LLMProvider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &LLMProvider{provider: provider, config: cfg}
}

// problemOutput is the raw JSON structure returned by the LLM.
type problemOutput struct {
	Prompt      string   `json:"prompt"`
	Narration   string   `json:"narration"`
	Kind        string   `json:"kind"`
	Answer      string   `json:"answer"`
	Options     []string `json:"options"`
	Hint        string   `json:"hint"`
	Explanation string   `json:"explanation"`
}

// Generate produces a single validated problem. Retryable validation
// failures are regenerated up to Config.MaxAttempts times.
func (g *LLMProvider) Generate(ctx context.Context, params Params) (*Problem, error) {
	ctx = llm.WithPurpose(ctx, "problem-gen")

	var lastErr error
	for attempt := 0; attempt < g.config.MaxAttempts; attempt++ {
		p, err := g.generateOnce(ctx, params)
		if err == nil {
			return p, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (g *LLMProvider) generateOnce(ctx context.Context, params Params) (*Problem, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(params, g.config)},
		},
		Schema:      ProblemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("problem generation failed: %w", err)
	}

	var out problemOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse problem output: %w", err)
	}

	p := &Problem{
		Prompt:      out.Prompt,
		Narration:   out.Narration,
		Kind:        Kind(out.Kind),
		Answer:      out.Answer,
		Options:     out.Options,
		Explanation: out.Explanation,
		Hint:        out.Hint,
		Exercise:    params.Exercise,
		Difficulty:  params.Difficulty,
	}
	if p.Kind != KindChoice {
		p.Options = nil
	}
	if params.Item != nil {
		p.ItemID = params.Item.ID()
	}

	if err := runValidators(g.config.Validators, p, params); err != nil {
		return nil, err
	}
	return p, nil
}
