package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rating-manager/core/config"
	"rating-manager/core/database"
	"rating-manager/intervals"
)

var (
	intervalsInputCSV       string
	intervalsOutputCSV      string
	intervalsIncludeIgnored bool
	intervalsStopIDs        []string
	intervalsStopIDCSV      string
)

// intervalRows reads interval rows from the input CSV if given, and
// otherwise from the database, optionally mirroring the database rows to
// the output CSV for later replay.
func intervalRows(cfg *config.Config, log *zap.Logger, read func(db *gorm.DB) ([]string, []map[string]string, error)) ([]map[string]string, error) {
	if intervalsInputCSV != "" {
		log.Info("reading intervals", zap.String("input_csv", intervalsInputCSV))
		file, err := os.Open(intervalsInputCSV)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return intervals.ReadCSV(file)
	}

	db, err := database.Connect(cfg.TransitMaster)
	if err != nil {
		return nil, err
	}
	log.Info("reading intervals from TransitMaster", zap.String("host", cfg.TransitMaster.Host))
	header, rows, err := read(db)
	if err != nil {
		return nil, err
	}

	if intervalsOutputCSV != "" {
		file, err := os.Create(intervalsOutputCSV)
		if err != nil {
			return nil, err
		}
		log.Info("writing rows", zap.Int("count", len(rows)), zap.String("output_csv", intervalsOutputCSV))
		if err := intervals.WriteCSV(file, header, rows); err != nil {
			file.Close()
			return nil, err
		}
		if err := file.Close(); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// writePage renders the intervals to the HTML output file.
func writePage(log *zap.Logger, parsed []intervals.Interval, htmlPath string) error {
	page := intervals.NewPage(parsed)
	if page == nil {
		log.Info("no intervals with locations to process")
		return nil
	}
	file, err := os.Create(htmlPath)
	if err != nil {
		return err
	}
	log.Info("writing HTML", zap.String("path", htmlPath))
	if err := page.Render(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// missingIntervalsCmd represents the missing-intervals command
var missingIntervalsCmd = &cobra.Command{
	Use:   "missing-intervals HTML",
	Short: "Report intervals with no measured or map distance",
	Long: `Finds the intervals in TransitMaster with neither a measured nor a
map distance and renders an HTML page with straight-line estimates and
map links, for the schedulers to enter the real distances.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		rows, err := intervalRows(cfg, log, func(db *gorm.DB) ([]string, []map[string]string, error) {
			return intervals.ReadMissing(db)
		})
		if err != nil {
			return err
		}

		parsed, err := intervals.FromRows(rows)
		if err != nil {
			return err
		}
		if !intervalsIncludeIgnored {
			parsed = intervals.FilterIgnored(parsed)
		}
		return writePage(log, parsed, args[0])
	},
}

// stopIntervalsCmd represents the stop-intervals command
var stopIntervalsCmd = &cobra.Command{
	Use:   "stop-intervals HTML",
	Short: "Report the intervals touching the given stops",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		stopIDs := append([]string{}, intervalsStopIDs...)
		if intervalsStopIDCSV != "" {
			file, err := os.Open(intervalsStopIDCSV)
			if err != nil {
				return err
			}
			fromCSV, err := intervals.ReadStopIDsCSV(file)
			file.Close()
			if err != nil {
				return err
			}
			stopIDs = append(stopIDs, fromCSV...)
		}
		if intervalsInputCSV == "" && len(stopIDs) == 0 {
			return fmt.Errorf("no stop IDs given: use --stop-id or --stop-id-csv")
		}

		rows, err := intervalRows(cfg, log, func(db *gorm.DB) ([]string, []map[string]string, error) {
			return intervals.ReadForStops(db, stopIDs)
		})
		if err != nil {
			return err
		}

		parsed, err := intervals.FromRows(rows)
		if err != nil {
			return err
		}
		return writePage(log, parsed, args[0])
	},
}

func init() {
	for _, cmd := range []*cobra.Command{missingIntervalsCmd, stopIntervalsCmd} {
		cmd.Flags().StringVar(&intervalsInputCSV, "input-csv", "",
			"CSV file to use as an input instead of the database")
		cmd.Flags().StringVar(&intervalsOutputCSV, "output-csv", "",
			"CSV file to write the database results to (only if reading from the database)")
	}
	missingIntervalsCmd.Flags().BoolVar(&intervalsIncludeIgnored, "include-ignored", false,
		"also include ignored intervals in the HTML output")
	stopIntervalsCmd.Flags().StringArrayVar(&intervalsStopIDs, "stop-id", nil,
		"stop ID to find intervals for (repeatable)")
	stopIntervalsCmd.Flags().StringVar(&intervalsStopIDCSV, "stop-id-csv", "",
		"CSV with stop IDs in the first column")
	RootCmd.AddCommand(missingIntervalsCmd)
	RootCmd.AddCommand(stopIntervalsCmd)
}
