package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillbuddy/internal/answer"
	"github.com/abhisek/drillbuddy/internal/app"
	"github.com/abhisek/drillbuddy/internal/config"
	"github.com/abhisek/drillbuddy/internal/llm"
	"github.com/abhisek/drillbuddy/internal/narration"
	"github.com/abhisek/drillbuddy/internal/notify"
	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/rewards"
	"github.com/abhisek/drillbuddy/internal/screen"
	"github.com/abhisek/drillbuddy/internal/screens/drill"
	"github.com/abhisek/drillbuddy/internal/screens/history"
	"github.com/abhisek/drillbuddy/internal/screens/home"
	"github.com/abhisek/drillbuddy/internal/session"
	"github.com/abhisek/drillbuddy/internal/store"
	"github.com/abhisek/drillbuddy/internal/telemetry"
	"github.com/abhisek/drillbuddy/internal/turn"
	"github.com/abhisek/drillbuddy/internal/wordlist"
)

// runtime is everything a TUI session needs, built once per process.
type runtime struct {
	cfg       config.Config
	logger    *slog.Logger
	logFile   *os.File
	store     *store.Store
	rewards   *rewards.Service
	notifier  *notify.Notifier
	reporter  *telemetry.Reporter
	provider  problemgen.Provider
	llmReady  bool
	speech    *speechEngines
	narrator  *narration.Queue
	dictation *answer.Controller
	words     *wordlist.List
}

// openRuntime loads configuration and opens every collaborator. Warnings
// go to stderr because the TUI has not taken the terminal yet.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	rt := &runtime{cfg: cfg}
	if err := rt.openLogger(); err != nil {
		return nil, err
	}

	rt.reporter, err = telemetry.Init(cfg.SentryDSN, "drillbuddy@"+version)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reporting disabled:", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	rt.store, err = store.Open(dbPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	repo := rt.store.EventRepo()

	rt.rewards = rewards.NewService(repo, rt.logger)
	rt.notifier = notify.New(cfg.Notify)
	rt.provider, rt.llmReady = buildProvider(cmd.Context(), repo, rt.logger)
	if !rt.llmReady {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; using built-in problems only.")
	}

	rt.words, err = wordlist.Default()
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.speech = openSpeech(cfg, rt.logger)
	rt.narrator = narration.New(rt.speech.synth, rt.speech.synth != nil, rt.logger)
	rt.dictation = answer.New(rt.speech.recognizer, answer.Options{
		Dictation:   rt.speech.recognizer != nil,
		Language:    cfg.Dictation.Language,
		MaxDuration: cfg.Dictation.MaxDuration,
	})
	return rt, nil
}

func (rt *runtime) openLogger() error {
	path := rt.cfg.LogFile
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "drillbuddy.log")
	}
	if err := store.EnsureDir(path); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	rt.logFile = f
	rt.logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: rt.cfg.LogLevel}))
	return nil
}

// buildProvider composes the problem source: word-list exercises always use
// the local vocabulary generator; everything else asks the LLM first and
// falls back to the local arithmetic generator.
func buildProvider(ctx context.Context, repo store.EventRepo, logger *slog.Logger) (problemgen.Provider, bool) {
	vocab := problemgen.NewVocab(nil)
	local := problemgen.NewArithmetic(nil)
	router := &problemgen.Router{
		ByExercise: map[problemgen.Exercise]problemgen.Provider{
			problemgen.ExerciseDefinitionMatch: vocab,
			problemgen.ExerciseSpelling:        vocab,
		},
		Default: local,
	}

	llmCfg, ok := llm.DiscoverConfig()
	if !ok {
		return router, false
	}
	client, err := llm.NewProvider(ctx, llmCfg, repo, logger)
	if err != nil {
		logger.Warn("LLM provider unavailable", "provider", llmCfg.Provider, "error", err)
		return router, false
	}
	router.Default = &problemgen.Fallback{
		Primary:   problemgen.NewLLMProvider(client, problemgen.DefaultConfig()),
		Secondary: local,
		Logger:    logger,
	}
	return router, true
}

// sessionOptions narrows what a drill screen practices.
type sessionOptions struct {
	Difficulty problemgen.Difficulty
	Topic      string
	Category   string
	Quota      int
	Words      *wordlist.List
}

// newDrill builds a drill screen for one exercise. List-backed exercises
// cover every word in the list; the rest run a fixed number of turns.
func (rt *runtime) newDrill(ex problemgen.Exercise, opts sessionOptions) screen.Screen {
	trackerCfg := rt.cfg.TrackerConfig()
	if opts.Quota > 0 {
		trackerCfg.Quota = opts.Quota
	}

	var words *wordlist.List
	if ex.ListBacked() {
		words = opts.Words
		if words == nil {
			words = rt.words
		}
		trackerCfg.Mode = session.ModeCoverItems
		trackerCfg.Items = words.IDs()
	}

	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = problemgen.DifficultyMedium
	}

	engine := turn.New(turn.Config{
		Exercise:   ex,
		Difficulty: difficulty,
		Topic:      opts.Topic,
		Category:   opts.Category,
		Words:      words,
		Timing:     rt.cfg.Timing,
	}, turn.Deps{
		Provider: rt.provider,
		Narrator: rt.narrator,
		Input:    rt.dictation,
		Tracker:  session.New(trackerCfg),
		Recorder: rt.store.EventRepo(),
		Rewards:  rt.rewards,
		Errors:   rt.reporter,
		Logger:   rt.logger.With("exercise", string(ex)),
	})
	return drill.New(engine, drill.Options{
		Rewards:  rt.rewards,
		Notifier: rt.notifier,
		Logger:   rt.logger,
	})
}

// llmBanner is shown on the home screen when problems only come from the
// built-in generators.
func llmBanner(ready bool) string {
	if ready {
		return ""
	}
	return "No LLM key set: problems come from the built-in generator"
}

func (rt *runtime) homeScreen(opts sessionOptions) screen.Screen {
	repo := rt.store.EventRepo()
	banner := llmBanner(rt.llmReady)
	return home.New(home.Options{
		NewDrill: func(ex problemgen.Exercise) screen.Screen { return rt.newDrill(ex, opts) },
		History:  func() screen.Screen { return history.New(repo) },
		Points:   rt.rewards,
		Sessions: repo,
		Banner:   banner,
	})
}

// runTUI runs the app with root at the bottom of the stack and start, if
// set, opened on top of it.
func (rt *runtime) runTUI(root, start screen.Screen) error {
	rt.logger.Info("tui starting", "version", version, "llm", rt.llmReady,
		"narration", rt.narrator.Enabled(), "dictation", rt.dictation.CanDictate())
	err := app.Run(root, app.Options{Points: rt.rewards, Logger: rt.logger, Start: start})
	if err != nil {
		rt.reporter.Capture(err, map[string]string{"stage": "tui"})
	}
	return err
}

// Close releases resources in reverse order of opening.
func (rt *runtime) Close() {
	if rt.narrator != nil {
		rt.narrator.Stop()
	}
	if rt.dictation != nil {
		rt.dictation.CancelDictation()
	}
	if rt.speech != nil {
		rt.speech.Close()
	}
	if rt.store != nil {
		_ = rt.store.Close()
	}
	rt.reporter.Flush(2 * time.Second)
	if rt.logFile != nil {
		_ = rt.logFile.Close()
	}
}

// runApp launches the TUI on the home screen.
func runApp(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.runTUI(rt.homeScreen(sessionOptions{}), nil)
}
