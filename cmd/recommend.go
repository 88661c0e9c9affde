package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/quiz"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <user> <category>",
	Short: "Recommend a difficulty level for a user",
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

		var current *quiz.Difficulty
		if s, _ := cmd.Flags().GetString("current"); s != "" {
			d, err := quiz.ParseDifficulty(s)
			if err != nil {
				return err
			}
			current = &d
		}

		rec, err := eng.Recommend(cmd.Context(), userID, categoryID, current)
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}

		fmt.Printf("Recommended difficulty: %s\n", rec.Difficulty)
		fmt.Printf("  confidence:    %.2f\n", rec.Confidence)
		fmt.Printf("  should adjust: %t\n", rec.ShouldAdjust)
		fmt.Printf("  reasoning:     %s\n", rec.Reasoning)
		return nil
	},
}

func init() {
	recommendCmd.Flags().String("current", "", "User's current difficulty (beginner|intermediate|advanced)")
}
