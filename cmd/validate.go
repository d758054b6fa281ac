package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rating-manager/rating"
	"rating-manager/rating/validate"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate DIR",
	Short: "Validate the merged rating files",
	Long: `Runs every validation over a merged rating directory and prints the
problems found. Exits non-zero if the rating should not be imported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		errors, err := validate.Rating(rating.New(args[0]))
		if err != nil {
			return err
		}
		for _, e := range errors {
			fmt.Fprintln(cmd.OutOrStdout(), e.String())
		}
		if len(errors) > 0 {
			return fmt.Errorf("rating failed validation with %d errors", len(errors))
		}
		log.Info("rating is valid", zap.String("path", args[0]))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
