package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/wordlist"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start straight into an exercise",
	Example: `  drillbuddy play --exercise arithmetic --difficulty easy --count 10
  drillbuddy play --exercise spelling --words my-words.yaml
  drillbuddy play --exercise fill-blank --topic dinosaurs`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringP("exercise", "e", "", "Exercise type (see 'drillbuddy exercises')")
	playCmd.Flags().StringP("difficulty", "d", "medium", "easy, medium or hard")
	playCmd.Flags().String("topic", "", "Theme for generated problems, e.g. space")
	playCmd.Flags().String("category", "", "Exercise-specific selector, e.g. multiplication or 7")
	playCmd.Flags().IntP("count", "n", 0, "Turns per session (default from DRILLBUDDY_QUOTA)")
	playCmd.Flags().String("words", "", "YAML word list for definition-match and spelling")
	_ = playCmd.MarkFlagRequired("exercise")
}

func runPlay(cmd *cobra.Command, args []string) error {
	exName, _ := cmd.Flags().GetString("exercise")
	diffName, _ := cmd.Flags().GetString("difficulty")
	wordsPath, _ := cmd.Flags().GetString("words")

	ex, err := problemgen.ParseExercise(exName)
	if err != nil {
		return err
	}
	difficulty, err := problemgen.ParseDifficulty(diffName)
	if err != nil {
		return err
	}

	opts := sessionOptions{Difficulty: difficulty}
	opts.Topic, _ = cmd.Flags().GetString("topic")
	opts.Category, _ = cmd.Flags().GetString("category")
	opts.Quota, _ = cmd.Flags().GetInt("count")
	if opts.Quota < 0 {
		return fmt.Errorf("--count must be positive, got %d", opts.Quota)
	}
	if wordsPath != "" {
		if !ex.ListBacked() {
			return fmt.Errorf("--words only applies to word-list exercises, not %s", ex)
		}
		if opts.Words, err = wordlist.Load(wordsPath); err != nil {
			return err
		}
	}

	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	return rt.runTUI(rt.homeScreen(opts), rt.newDrill(ex, opts))
}
