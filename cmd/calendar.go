package cmd

import (
	"github.com/spf13/cobra"

	"rating-manager/rating"
	"rating-manager/rating/calendar"
)

// calendarCmd represents the calendar command
var calendarCmd = &cobra.Command{
	Use:   "calendar DIR",
	Short: "Print the schedules-per-garage calendar as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		table, err := calendar.FromRating(rating.New(args[0]))
		if err != nil {
			return err
		}
		return table.WriteCSV(cmd.OutOrStdout())
	},
}

func init() {
	RootCmd.AddCommand(calendarCmd)
}
