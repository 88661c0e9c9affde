package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/importer"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Import questions from a JSON seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		imp, err := importer.New(st.Questions())
		if err != nil {
			return err
		}
		res, err := imp.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}

		fmt.Printf("Imported %d questions", res.Imported)
		if res.Skipped > 0 {
			fmt.Printf(" (%d skipped)", res.Skipped)
		}
		fmt.Println()
		return nil
	},
}
