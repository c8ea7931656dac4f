package problemgen

import (
	"context"
	"log/slog"
)

// Fallback tries Primary first and falls back to Secondary on any error.
type Fallback struct {
	Primary   Provider
	Secondary Provider
	Logger    *slog.Logger
}

func (f *Fallback) Generate(ctx context.Context, params Params) (*Problem, error) {
	if f.Primary != nil {
		p, err := f.Primary.Generate(ctx, params)
		if err == nil {
			return p, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if f.Logger != nil {
			f.Logger.Warn("primary provider failed, using fallback",
				"exercise", params.Exercise, "error", err)
		}
	}
	return f.Secondary.Generate(ctx, params)
}

// Router dispatches to a provider per exercise, with Default for the rest.
type Router struct {
	ByExercise map[Exercise]Provider
	Default    Provider
}

func (r *Router) Generate(ctx context.Context, params Params) (*Problem, error) {
	if p, ok := r.ByExercise[params.Exercise]; ok {
		return p.Generate(ctx, params)
	}
	return r.Default.Generate(ctx, params)
}
