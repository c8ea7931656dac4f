// Package session tracks score and completion across the turns of one drill
// session and computes the completion bonus.
package session

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Mode selects the completion rule.
type Mode int

const (
	// ModeQuota completes after a fixed number of generated turns.
	ModeQuota Mode = iota

	// ModeCoverItems completes once every list item was answered correctly
	// at least once. Items answered incorrectly come back later.
	ModeCoverItems
)

func (m Mode) String() string {
	if m == ModeCoverItems {
		return "cover-items"
	}
	return "quota"
}

// Report is sent to the reward collaborator when a session completes.
type Report struct {
	SessionID    string
	TurnsCorrect int
	TotalTurns   int
	Bonus        int
}

// RewardSink receives completion reports. Persisting them is its concern.
type RewardSink interface {
	Report(ctx context.Context, r Report) error
}

// Config describes one session.
type Config struct {
	Mode  Mode
	Quota int
	// Items are the distinct item ids for ModeCoverItems.
	Items []string

	BaseBonus       int
	PenaltyPerWrong int

	// Rand shuffles item order. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// DefaultConfig returns a five-turn quota session.
func DefaultConfig() Config {
	return Config{
		Mode:            ModeQuota,
		Quota:           5,
		BaseBonus:       10,
		PenaltyPerWrong: 2,
	}
}

// Tracker is the in-memory state of the current session. It is not safe
// for concurrent use; the UI loop owns it.
type Tracker struct {
	cfg Config
	rng *rand.Rand

	sessionID string
	epoch     int
	started   time.Time

	scoreCorrect   int
	turnsAttempted int
	wrongAnswers   int
	resolved       map[string]bool
	pending        []string
	completed      bool
	reported       bool
}

// New returns a tracker. Call Start before the first turn.
func New(cfg Config) *Tracker {
	if cfg.Quota <= 0 {
		cfg.Quota = DefaultConfig().Quota
	}
	rng := cfg.Rand
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>17))
	}
	return &Tracker{cfg: cfg, rng: rng, resolved: make(map[string]bool)}
}

// Start begins a fresh session: counts are cleared, the epoch advances and
// list items are reshuffled.
func (t *Tracker) Start() {
	t.epoch++
	t.sessionID = uuid.NewString()
	t.started = time.Now()
	t.scoreCorrect = 0
	t.turnsAttempted = 0
	t.wrongAnswers = 0
	t.resolved = make(map[string]bool)
	t.completed = false
	t.reported = false

	t.pending = append(t.pending[:0], t.cfg.Items...)
	t.rng.Shuffle(len(t.pending), func(i, j int) {
		t.pending[i], t.pending[j] = t.pending[j], t.pending[i]
	})
	if t.cfg.Mode == ModeCoverItems && len(t.pending) == 0 {
		t.completed = true
	}
}

// Restart is Start under the name callers use mid-session.
func (t *Tracker) Restart() { t.Start() }

// Next returns the item id for the next turn. Quota sessions return an
// empty id. The boolean is false once the session is complete.
func (t *Tracker) Next() (string, bool) {
	if t.completed {
		return "", false
	}
	if t.cfg.Mode == ModeCoverItems {
		return t.pending[0], true
	}
	return "", true
}

// RecordWrong counts one incorrect attempt.
func (t *Tracker) RecordWrong() {
	if t.completed {
		return
	}
	t.wrongAnswers++
}

// EndTurn records the final result of a turn on item and reports whether
// the session is now complete. Unresolved items are queued again.
func (t *Tracker) EndTurn(item string, correct bool) bool {
	if t.completed {
		return true
	}
	t.turnsAttempted++
	if correct {
		t.scoreCorrect++
	}

	if t.cfg.Mode == ModeCoverItems {
		for i, id := range t.pending {
			if id == item {
				t.pending = append(t.pending[:i], t.pending[i+1:]...)
				break
			}
		}
		if correct {
			t.resolved[item] = true
		} else if !t.resolved[item] {
			t.pending = append(t.pending, item)
		}
		t.completed = len(t.pending) == 0
	} else {
		t.completed = t.turnsAttempted >= t.cfg.Quota
	}
	return t.completed
}

// Bonus is max(0, base - wrong*penalty).
func (t *Tracker) Bonus() int {
	return max(0, t.cfg.BaseBonus-t.wrongAnswers*t.cfg.PenaltyPerWrong)
}

// TakeReport returns the completion report the first time it is called
// after completion. Later calls return false.
func (t *Tracker) TakeReport() (Report, bool) {
	if !t.completed || t.reported {
		return Report{}, false
	}
	t.reported = true
	return Report{
		SessionID:    t.sessionID,
		TurnsCorrect: t.scoreCorrect,
		TotalTurns:   t.turnsAttempted,
		Bonus:        t.Bonus(),
	}, true
}

func (t *Tracker) SessionID() string { return t.sessionID }
func (t *Tracker) Epoch() int { return t.epoch }
func (t *Tracker) Mode() Mode { return t.cfg.Mode }
func (t *Tracker) Completed() bool { return t.completed }
func (t *Tracker) ScoreCorrect() int { return t.scoreCorrect }
func (t *Tracker) TurnsAttempted() int { return t.turnsAttempted }
func (t *Tracker) WrongAnswers() int { return t.wrongAnswers }
func (t *Tracker) Elapsed() time.Duration { return time.Since(t.started) }

// Resolved reports whether item has been answered correctly.
func (t *Tracker) Resolved(item string) bool { return t.resolved[item] }

// Target is the quota, or the number of items to cover.
func (t *Tracker) Target() int {
	if t.cfg.Mode == ModeCoverItems {
		return len(t.cfg.Items)
	}
	return t.cfg.Quota
}

// Done is the number of turns (quota) or items (cover) completed so far.
func (t *Tracker) Done() int {
	if t.cfg.Mode == ModeCoverItems {
		return len(t.resolved)
	}
	return t.turnsAttempted
}

// Progress is the completed fraction in [0, 1].
func (t *Tracker) Progress() float64 {
	target := t.Target()
	if target == 0 {
		return 1
	}
	return min(1, float64(t.Done())/float64(target))
}
