package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ErrDuplicateReward is returned when a session already has a reward.
var ErrDuplicateReward = errors.New("session already rewarded")

func (r *eventRepo) AppendRewardEvent(ctx context.Context, data RewardEventData) error {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table("reward_events")).
		Where(entsql.EQ("session_id", data.SessionID)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return fmt.Errorf("check reward event: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("reward for %s: %w", data.SessionID, ErrDuplicateReward)
	}

	err := r.insert(ctx, "reward_events",
		[]string{"session_id", "turns_correct", "total_turns", "points"},
		data.SessionID, data.TurnsCorrect, data.TotalTurns, data.Points,
	)
	if err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardRecord, error) {
	sel := selectEvents("reward_events", opts, "session_id", "turns_correct", "total_turns", "points")

	var records []RewardRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var rec RewardRecord
		var ts int64
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.TurnsCorrect, &rec.TotalTurns, &rec.Points); err != nil {
			return err
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) RewardTotal(ctx context.Context) (int, error) {
	query, args := builder().Select("COALESCE(SUM(points), 0)").
		From(entsql.Table("reward_events")).
		Query()
	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum reward points: %w", err)
	}
	return total, nil
}

func nowMillis() int64 { return time.Now().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms) }
