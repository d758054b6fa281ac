package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 1433, cfg.TransitMaster.Port)
	assert.Equal(t, "TMMain", cfg.TransitMaster.Name)
	assert.Equal(t, "smb://hshastf1/KKO", cfg.Sync.HastusShare)
	assert.Equal(t, "smb://hstmtest01/C$/Ratings", cfg.Sync.RatingsShare)
	assert.Equal(t, "ratings", cfg.Archive.Bucket)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRANSITMASTER_DATABASE_SERVER", "tmsql01")
	t.Setenv("TRANSITMASTER_UID", "tmuser")
	t.Setenv("TRANSITMASTER_PWD", "secret")
	t.Setenv("USERNAME", "operator")
	t.Setenv("AD_PASSWORD", "hunter2")
	t.Setenv("SYNC_DOMAIN", "CORP")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "tmsql01", cfg.TransitMaster.Host)
	assert.Equal(t, "tmuser", cfg.TransitMaster.User)
	assert.Equal(t, "secret", cfg.TransitMaster.Password)
	assert.Equal(t, "operator", cfg.Username)
	assert.Equal(t, "hunter2", cfg.AD.Password)
	assert.Equal(t, "CORP", cfg.Sync.Domain)
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
