package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillbuddy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "drillbuddy",
	Short: "Talking practice drills for kids",
	Long: `DrillBuddy reads short practice problems aloud, listens for the answer
and says whether it was right.

Problems come from an LLM when an API key is set (ANTHROPIC_API_KEY,
OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY) and from built-in
generators otherwise. Narration uses the system speech command or OpenAI
voices; dictation uses Deepgram or OpenAI Whisper. See DRILLBUDDY_*
variables for the rest.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the command line. Interrupts cancel the command context, which
// stops narration started by `say`; the TUI handles Ctrl+C itself.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DRILLBUDDY_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(rewardsCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DRILLBUDDY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database for the read-only inspection commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
