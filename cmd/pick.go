package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/quiz"
)

var pickCmd = &cobra.Command{
	Use:   "pick <user> <category>",
	Short: "Select an adaptive question batch for a user",
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

		count, _ := cmd.Flags().GetInt("count")
		var forced *quiz.Difficulty
		if s, _ := cmd.Flags().GetString("difficulty"); s != "" {
			d, err := quiz.ParseDifficulty(s)
			if err != nil {
				return err
			}
			forced = &d
		}

		var qs []quiz.Question
		if cached, _ := cmd.Flags().GetBool("cached"); cached {
			qs, err = eng.LoadQuestionsOptimized(cmd.Context(), userID, categoryID, count, forced)
		} else {
			qs, err = eng.SelectAdaptiveQuestions(cmd.Context(), userID, categoryID, count, forced)
		}
		if err != nil {
			return fmt.Errorf("pick questions: %w", err)
		}

		for i, q := range qs {
			fmt.Printf("%d. [%s] %s\n", i+1, q.Difficulty, q.Text)
			for _, a := range q.Answers {
				fmt.Printf("     - %s\n", a.Text)
			}
		}
		return nil
	},
}

func init() {
	pickCmd.Flags().Int("count", 5, "Number of questions to select")
	pickCmd.Flags().String("difficulty", "", "Pin the difficulty instead of using the recommender")
	pickCmd.Flags().Bool("cached", false, "Load through the cache tiers")
}
