package syncrating

// Config holds the share locations and local staging directories used by
// the sync.
type Config struct {
	// HastusShare is where the scheduling department drops exports.
	HastusShare string `mapstructure:"hastus_share" default:"smb://hshastf1/KKO"`
	// RatingsShare is the TransitMaster server's rating directory.
	RatingsShare string `mapstructure:"ratings_share" default:"smb://hstmtest01/C$/Ratings"`
	// PriorShare holds the currently released operational data.
	PriorShare string `mapstructure:"prior_share" default:"smb://hstmcldb/e$/FTP_ROOT"`
	// TemplateDir is the local skeleton copied into each rating folder.
	TemplateDir string `mapstructure:"template_dir" default:"support/rating_template"`
	// StagingDir is where ratings are assembled before pushing.
	StagingDir string `mapstructure:"staging_dir" default:"support/ratings"`
	// Domain is the AD domain for the share credentials.
	Domain string `mapstructure:"domain" default:""`
}
