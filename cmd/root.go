package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openswoop/syllabank/pkg/config"
	"github.com/openswoop/syllabank/pkg/database"
	"github.com/openswoop/syllabank/pkg/scrape"
)

var (
	cfg       *config.Config
	logger    *zap.Logger
	collector *scrape.Collector
)

var cfgFile string
var noCache bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "syllabank",
	Short: "A tool for collecting the Tokyo Tech course catalog",
	Long: `Scrapes department course listings and syllabus pages from the
Tokyo Tech OpenCourseWare site into a local SQLite catalog. Only
courses that are new or changed since the last sync are fetched.
The catalog can be searched, served over HTTP, written to a CSV
file, or sent to BigQuery.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}
		if logger, err = newLogger(cfg.LogLevel); err != nil {
			return fmt.Errorf("could not create logger: %w", err)
		}
		cacheDir := cfg.CacheDir
		if noCache {
			cacheDir = ""
		}
		collector = scrape.NewCollector(cacheDir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file in env format (default: .env)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Bypass the web cache even if CACHE_DIR is set (default: false)")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func openDatabase() (*database.Sqlite, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return nil, err
	}
	db, err := database.NewSqlite(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.DatabasePath, err)
	}
	return db, nil
}
