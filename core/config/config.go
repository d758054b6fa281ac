package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"rating-manager/core/database"
	"rating-manager/core/logger"
	"rating-manager/core/storage"
	"rating-manager/syncrating"
)

// ADConfig holds the Active Directory credentials used for the SMB
// shares.
type ADConfig struct {
	// Password is the share password (AD_PASSWORD).
	Password string `mapstructure:"password" default:""`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// TransitMaster holds the TransitMaster database connection settings.
	TransitMaster database.Config `mapstructure:"transitmaster"`
	// Sync holds the share locations for the rating sync.
	Sync syncrating.Config `mapstructure:"sync"`
	// Archive holds the object storage settings for archived ratings.
	Archive storage.Config `mapstructure:"archive"`
	// Username is the account for the SMB shares (USERNAME, set by
	// Windows; falls back to the --username flag).
	Username string `mapstructure:"username" default:""`
	// AD holds the share credentials.
	AD ADConfig `mapstructure:"ad"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. TRANSITMASTER_UID -> transitmaster.uid)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
