package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillbuddy/internal/config"
	"github.com/abhisek/drillbuddy/internal/speech"
	"github.com/abhisek/drillbuddy/internal/spokennum"
)

var sayCmd = &cobra.Command{
	Use:   "say <text>...",
	Short: "Speak text through the configured narrator",
	Long:  "Speak text through the configured narrator. Useful to check the voice and rate settings.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		cfg.Narration.Enabled = true
		cfg.Dictation.Enabled = false

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
		se := openSpeech(cfg, logger)
		defer se.Close()
		if se.synth == nil {
			return fmt.Errorf("narration: %w", speech.ErrNoEngine)
		}

		text := strings.Join(args, " ")
		showWords, _ := cmd.Flags().GetBool("words")
		var boundaries chan speech.Boundary
		done := make(chan struct{})
		if showWords {
			boundaries = make(chan speech.Boundary, 16)
			go func() {
				defer close(done)
				for b := range boundaries {
					if end := b.CharIndex + b.CharLength; b.CharIndex >= 0 && end <= len(text) {
						fmt.Println(text[b.CharIndex:end])
					}
				}
			}()
		} else {
			close(done)
		}

		err = se.synth.Speak(cmd.Context(), text, boundaries)
		if boundaries != nil {
			close(boundaries)
		}
		<-done
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <transcript>...",
	Short: "Parse a spoken number the way dictated answers are read",
	Example: `  drillbuddy parse "forty two"
  drillbuddy parse "nineteen ninety" "a hundred and five"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range args {
			if n, ok := spokennum.Parse(a); ok {
				fmt.Printf("%-30q %d\n", a, n)
			} else {
				fmt.Printf("%-30q (not a number)\n", a)
			}
		}
	},
}

func init() {
	sayCmd.Flags().Bool("words", false, "Print each word as it is spoken")
}
