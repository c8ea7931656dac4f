package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/wordlist"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated problems in the terminal (no database)",
	Long: `Generate and answer problems for an exercise without the TUI.

This is a stateless developer tool: no narration, no database, no rewards.
Useful for checking problem quality from the configured LLM.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("exercise", "e", "", "Exercise type (required)")
	previewCmd.Flags().StringP("difficulty", "d", "medium", "easy, medium or hard")
	previewCmd.Flags().String("topic", "", "Theme for generated problems")
	previewCmd.Flags().IntP("count", "n", 5, "Number of problems to generate")
	_ = previewCmd.MarkFlagRequired("exercise")
}

func runPreview(cmd *cobra.Command, args []string) error {
	exName, _ := cmd.Flags().GetString("exercise")
	diffName, _ := cmd.Flags().GetString("difficulty")
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")

	ex, err := problemgen.ParseExercise(exName)
	if err != nil {
		return err
	}
	difficulty, err := problemgen.ParseDifficulty(diffName)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	provider, llmReady := buildProvider(ctx, nil, logger)
	fmt.Printf("Exercise: %s (%s, LLM %v)\n", ex.DisplayName(), difficulty, llmReady)

	var words *wordlist.List
	if ex.ListBacked() {
		if words, err = wordlist.Default(); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	var correct int
	var prior []string

	for i := 1; i <= count; i++ {
		params := problemgen.Params{Exercise: ex, Difficulty: difficulty, Topic: topic, Prior: prior}
		if words != nil {
			item := words.Items[(i-1)%len(words.Items)]
			params.Item = &item
			params.Items = words.Items
		}

		p, err := provider.Generate(ctx, params)
		if err != nil {
			fmt.Printf("Problem %d: generation failed: %v\n\n", i, err)
			continue
		}
		prior = append(prior, p.Prompt)

		fmt.Printf("── Problem %d/%d ──\n", i, count)
		fmt.Println(p.Prompt)
		if p.Narration != "" && p.Narration != p.Prompt {
			fmt.Printf("(spoken: %s)\n", p.Narration)
		}
		for j, o := range p.Options {
			fmt.Printf("  %d) %s\n", j+1, o)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}
		if n, err := strconv.Atoi(answer); err == nil && p.Kind == problemgen.KindChoice && n >= 1 && n <= len(p.Options) {
			answer = p.Options[n-1]
		}

		if problemgen.CheckAnswer(answer, p) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Not quite.\033[0m Answer: %s\n", p.Answer)
		}
		if p.Explanation != "" {
			fmt.Printf("Explanation: %s\n", p.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, count)
	return nil
}
