package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillbuddy/internal/problemgen"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List exercise types",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-18s  %-20s  %s\n", "Name", "Title", "Source")
		for _, ex := range problemgen.AllExercises() {
			source := "LLM, built-in fallback"
			switch {
			case ex.ListBacked():
				source = "word list"
			case ex == problemgen.ExerciseFillBlank:
				source = "LLM only"
			}
			fmt.Printf("%-18s  %-20s  %s\n", ex, ex.DisplayName(), source)
		}
	},
}
