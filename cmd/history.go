package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/rewards"
	"github.com/abhisek/drillbuddy/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		sessions, err := s.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}

		points := make(map[string]int)
		if events, err := s.EventRepo().QueryRewardEvents(ctx, store.QueryOpts{}); err == nil {
			for _, e := range events {
				points[e.SessionID] = e.Points
			}
		}

		fmt.Printf("%-16s  %-18s  %-6s  %7s  %5s  %6s  %s\n",
			"Date", "Exercise", "Level", "Correct", "Wrong", "Time", "Reward")
		fmt.Println(strings.Repeat("─", 84))
		for _, r := range sessions {
			reward := "-"
			if p, ok := points[r.SessionID]; ok {
				tier := rewards.TierFor(r.TurnsCorrect, r.TurnsAttempted)
				reward = fmt.Sprintf("%s +%d", tier.DisplayName(), p)
			}
			fmt.Printf("%-16s  %-18s  %-6s  %3d/%-3d  %5d  %3d:%02d  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				problemgen.Exercise(r.Exercise).DisplayName(),
				r.Difficulty,
				r.TurnsCorrect, r.TurnsAttempted,
				r.WrongAnswers,
				r.DurationSecs/60, r.DurationSecs%60,
				reward,
			)
		}
		return nil
	},
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Show total points earned",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		total, err := s.EventRepo().RewardTotal(ctx)
		if err != nil {
			return err
		}
		events, err := s.EventRepo().QueryRewardEvents(ctx, store.QueryOpts{})
		if err != nil {
			return err
		}

		counts := make(map[rewards.Tier]int)
		for _, e := range events {
			counts[rewards.TierFor(e.TurnsCorrect, e.TotalTurns)]++
		}

		fmt.Printf("Total points: %d from %d sessions\n", total, len(events))
		tiers := rewards.AllTiers()
		for i := len(tiers) - 1; i >= 0; i-- {
			t := tiers[i]
			fmt.Printf("  %s %-10s %d\n", t.Icon(), t.DisplayName(), counts[t])
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
