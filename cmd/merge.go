package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rating-manager/rating/merge"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge DIR",
	Short: "Merge the HASTUS export files into one file per type",
	Long: `Merges the export and garage test files inside a Combine directory
into a single file per type (NDE, PLC, RTE, TRP, PAT, PPAT, BLK, CRW),
named after the rating directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		path := args[0]
		log.Info("merging rating", zap.String("path", path))
		if err := merge.Combine(path); err != nil {
			return err
		}
		log.Info("merge complete")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(mergeCmd)
}
