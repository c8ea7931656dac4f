package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, "session_events",
		[]string{"session_id", "action", "exercise", "difficulty", "turns_attempted", "turns_correct", "wrong_answers", "bonus", "duration_secs"},
		data.SessionID, data.Action, data.Exercise, data.Difficulty, data.TurnsAttempted, data.TurnsCorrect, data.WrongAnswers, data.Bonus, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	attempt := data.Attempt
	if attempt < 1 {
		attempt = 1
	}
	source := data.Source
	if source == "" {
		source = "typed"
	}
	err := r.insert(ctx, "answer_events",
		[]string{"session_id", "exercise", "item_id", "prompt", "correct_answer", "learner_answer", "correct", "attempt", "source", "time_ms"},
		data.SessionID, data.Exercise, data.ItemID, data.Prompt, data.CorrectAnswer, data.LearnerAnswer, data.Correct, attempt, source, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

// QuerySessionSummaries lists completed sessions, newest first.
func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := selectEvents("session_events", opts,
		"session_id", "exercise", "difficulty", "turns_attempted", "turns_correct", "wrong_answers", "bonus", "duration_secs")
	sel.Where(entsql.EQ("action", "end"))

	var records []SessionSummaryRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var rec SessionSummaryRecord
		var ts int64
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Exercise, &rec.Difficulty,
			&rec.TurnsAttempted, &rec.TurnsCorrect, &rec.WrongAnswers, &rec.Bonus, &rec.DurationSecs); err != nil {
			return err
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}

// AnswerCount returns how many attempts were recorded for a session.
func (r *eventRepo) AnswerCount(ctx context.Context, sessionID string) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table("answer_events")).
		Where(entsql.EQ("session_id", sessionID)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count answer events: %w", err)
	}
	return n, nil
}
