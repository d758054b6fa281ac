package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rating-manager/rating"
	"rating-manager/rating/cheatsheet"
)

// cheatSheetCmd represents the cheat-sheet command
var cheatSheetCmd = &cobra.Command{
	Use:   "cheat-sheet DIR",
	Short: "Print the rating cheat sheet",
	Long: `Summarizes the rating calendar for the schedulers: the date range,
base schedules per day type, exception dates, and the combinations that
must be removed from TransitMaster after import.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		sheet, err := cheatsheet.FromRating(rating.New(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sheet.String())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cheatSheetCmd)
}
