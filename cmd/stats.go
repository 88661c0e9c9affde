package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats <user> <category>",
	Short: "Show a user's progress and performance metrics",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, categoryID := args[0], args[1]

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		eng := openEngine(cmd, st)
		defer eng.Close()
		ctx := cmd.Context()

		p, err := st.Progress().Get(ctx, userID, categoryID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		if p == nil {
			p = &quiz.CategoryProgress{UserID: userID, CategoryID: categoryID}
		}

		m, err := eng.Metrics(ctx, userID, categoryID)
		if err != nil {
			return fmt.Errorf("compute metrics: %w", err)
		}

		fmt.Printf("Progress for %s in %s\n", userID, categoryID)
		fmt.Printf("  attempts:       %d (%d correct)\n", p.TotalAttempted, p.CorrectCount)
		fmt.Printf("  points:         %d\n", p.TotalPoints)
		fmt.Printf("  streak:         %d (longest %d)\n", p.CurrentStreak, p.LongestStreak)
		fmt.Printf("  average score:  %.1f%%\n", p.AverageScore)
		fmt.Println()
		fmt.Printf("Recent window (%d attempts)\n", m.SampleSize)
		fmt.Printf("  accuracy:       %.1f%%\n", m.Accuracy)
		fmt.Printf("  average time:   %.1fs\n", m.AverageTime)
		for _, d := range quiz.Difficulties {
			if dc, ok := m.DifficultyDistribution[d]; ok {
				fmt.Printf("  %-14s %d/%d correct\n", d+":", dc.Correct, dc.Total)
			}
		}
		return nil
	},
}
