package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	DatabasePath    string   `mapstructure:"DATABASE_PATH"`
	CacheDir        string   `mapstructure:"CACHE_DIR"`
	ListingURLs     []string `mapstructure:"LISTING_URLS"`
	ServerPort      string   `mapstructure:"SERVER_PORT"`
	LogLevel        string   `mapstructure:"LOG_LEVEL"`
	GCPProject      string   `mapstructure:"GCP_PROJECT"`
	BigQueryDataset string   `mapstructure:"BIGQUERY_DATASET"`
	PubSubTopic     string   `mapstructure:"PUBSUB_TOPIC"`
}

// Load reads configuration from file or environment variables. The file is
// optional; an empty name means ".env".
func Load(file string) (*Config, error) {
	v := viper.New()
	if file == "" {
		file = ".env"
	}
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Attempt to read the file, but don't fail if it's not present
	_ = v.ReadInConfig()

	// Set default values
	v.SetDefault("DATABASE_PATH", defaultDatabasePath())
	v.SetDefault("CACHE_DIR", "") // no web cache: fingerprints must be fetched fresh
	v.SetDefault("LISTING_URLS", []string{})
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GCP_PROJECT", "")
	v.SetDefault("BIGQUERY_DATASET", "syllabank")
	v.SetDefault("PUBSUB_TOPIC", "catalog-refreshed")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultDatabasePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "syllabank", "syllabank.db")
}
