package session

import "time"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID    string
	Mode         Mode
	Duration     time.Duration
	TotalTurns   int
	TurnsCorrect int
	WrongAnswers int
	Accuracy     float64
	Bonus        int
	Completed    bool
}

// BuildSummary snapshots the tracker.
func BuildSummary(t *Tracker) Summary {
	var accuracy float64
	if t.turnsAttempted > 0 {
		accuracy = float64(t.scoreCorrect) / float64(t.turnsAttempted)
	}
	return Summary{
		SessionID:    t.sessionID,
		Mode:         t.cfg.Mode,
		Duration:     t.Elapsed(),
		TotalTurns:   t.turnsAttempted,
		TurnsCorrect: t.scoreCorrect,
		WrongAnswers: t.wrongAnswers,
		Accuracy:     accuracy,
		Bonus:        t.Bonus(),
		Completed:    t.completed,
	}
}
