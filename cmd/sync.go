package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rating-manager/core/storage"
	"rating-manager/syncrating"
)

var (
	syncHastusExport string
	syncRatingFolder string
	syncUsername     string
	syncNoValidate   bool
	syncNoPush       bool
	syncArchive      bool
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the HASTUS export to the TransitMaster server",
	Long: `Pulls the newest (or chosen) HASTUS export, merges and validates it
locally, adds the prior-release files and the schedules-per-garage
calendar, and pushes the assembled rating folder to the TransitMaster
server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		username := syncUsername
		if username == "" {
			username = cfg.Username
		}
		if username == "" || cfg.AD.Password == "" {
			return fmt.Errorf("share credentials missing: set USERNAME/--username and AD_PASSWORD")
		}
		creds := syncrating.Credentials{
			Username: username,
			Password: cfg.AD.Password,
			Domain:   cfg.Sync.Domain,
		}

		shares := make([]syncrating.Share, 0, 3)
		connect := func(raw string) (syncrating.Share, error) {
			location, err := syncrating.ParseLocation(raw)
			if err != nil {
				return nil, err
			}
			share, err := location.Connect(creds)
			if err != nil {
				return nil, err
			}
			shares = append(shares, share)
			return share, nil
		}
		defer func() {
			for _, share := range shares {
				share.Close()
			}
		}()

		hastus, err := connect(cfg.Sync.HastusShare)
		if err != nil {
			return err
		}
		ratings, err := connect(cfg.Sync.RatingsShare)
		if err != nil {
			return err
		}
		prior, err := connect(cfg.Sync.PriorShare)
		if err != nil {
			return err
		}

		syncer := syncrating.New(cfg.Sync, log, hastus, ratings, prior)
		staging, err := syncer.Run(syncrating.Options{
			HastusExport: syncHastusExport,
			RatingFolder: syncRatingFolder,
			Validate:     !syncNoValidate,
			Push:         !syncNoPush,
		})
		if err != nil {
			return err
		}

		if syncArchive {
			client, err := storage.NewClient(cfg.Archive)
			if err != nil {
				return err
			}
			ratingFolder := filepath.Base(staging)
			if err := syncrating.Archive(cmd.Context(), client, log,
				cfg.Archive.Bucket, ratingFolder, staging); err != nil {
				return err
			}
			log.Info("rating archived", zap.String("rating_folder", ratingFolder))
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncHastusExport, "hastus-export", "",
		"HASTUS export directory to use (default: the newest AVL export)")
	syncCmd.Flags().StringVar(&syncRatingFolder, "rating-folder", "",
		"TransitMaster rating folder (default: based on the export calendar)")
	syncCmd.Flags().StringVar(&syncUsername, "username", "",
		"username for the shared drives (default: USERNAME from the environment)")
	syncCmd.Flags().BoolVar(&syncNoValidate, "no-validate", false,
		"skip validation of the HASTUS export")
	syncCmd.Flags().BoolVar(&syncNoPush, "no-push", false,
		"do not push data to the TransitMaster server")
	syncCmd.Flags().BoolVar(&syncArchive, "archive", false,
		"upload the merged rating files to the archive bucket")
	RootCmd.AddCommand(syncCmd)
}
