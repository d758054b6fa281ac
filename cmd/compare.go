package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rating-manager/core/database"
	"rating-manager/rating"
	"rating-manager/rating/compare"
)

// stopComparisonCmd represents the stop-comparison command
var stopComparisonCmd = &cobra.Command{
	Use:   "stop-comparison CURRENT NEXT",
	Short: "Compare the stops between two ratings",
	Long: `Compares the stops of the current and next rating and prints one
CSV row per new stop, renamed stop, or moved stop, with the
route/directions that use it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		current := rating.New(args[0])
		next := rating.New(args[1])
		return compare.Stops(current, next, cmd.OutOrStdout())
	},
}

// locationComparisonCmd represents the location-comparison command
var locationComparisonCmd = &cobra.Command{
	Use:   "location-comparison DIR",
	Short: "Compare stop locations between the export and TransitMaster",
	Long: `Compares each stop's location in the rating against the GEO_NODE
table in TransitMaster, printing the distance between them and Street
View links for spot checking.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := database.Connect(cfg.TransitMaster)
		if err != nil {
			return err
		}
		log.Info("connected to TransitMaster", zap.String("host", cfg.TransitMaster.Host))

		return compare.Locations(rating.New(args[0]), db, cmd.OutOrStdout())
	},
}

func init() {
	RootCmd.AddCommand(stopComparisonCmd)
	RootCmd.AddCommand(locationComparisonCmd)
}
