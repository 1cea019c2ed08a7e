package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openswoop/syllabank/pkg/ingest"
	"github.com/openswoop/syllabank/pkg/monitoring"
	"github.com/openswoop/syllabank/pkg/notify"
	"github.com/openswoop/syllabank/pkg/scrape"
)

var dryRun bool
var publish bool

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [listing-url...]",
	Short: "Scrape department listings into the catalog",
	Long: `This command takes one or more department listing URLs (or the
LISTING_URLS setting) and ingests every course on them whose
fingerprint changed since the last sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		urls := args
		if len(urls) == 0 {
			urls = cfg.ListingURLs
		}
		if len(urls) == 0 {
			return errors.New("no listing URLs given and LISTING_URLS is empty")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		var store ingest.Store = db
		if dryRun {
			store = dryRunStore{db}
		}
		pipeline := ingest.NewPipeline(collector, store, monitoring.NewMetrics(nil), logger)

		// Publish an event per listing when a project is configured
		if publish && !dryRun {
			if cfg.GCPProject == "" {
				return errors.New("--publish requires GCP_PROJECT")
			}
			pub, err := notify.NewPublisher(ctx, cfg.GCPProject, cfg.PubSubTopic)
			if err != nil {
				return fmt.Errorf("failed to connect to pubsub: %w", err)
			}
			defer pub.Close()
			pipeline.WithNotifier(pub)
		}

		stats, err := pipeline.RunAll(ctx, urls)
		if err != nil {
			return err
		}
		if dryRun {
			fmt.Println("Dry run: courses were not saved")
		}
		fmt.Printf("Done. %d imported, %d unchanged, %d skipped, %d failed (%d without related courses)\n",
			stats.Imported, stats.Unchanged, stats.Skipped, stats.Failed, stats.LinkFailed)
		return nil
	},
}

// dryRunStore checks fingerprints against the catalog but never writes.
type dryRunStore struct {
	ingest.Store
}

func (s dryRunStore) Save(_ context.Context, course *scrape.Course) (int64, error) {
	logger.Info("dry run: would save course", zap.String("code", course.Code), zap.String("title", course.Title))
	return 0, nil
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run without modifying the database (default: false)")
	syncCmd.Flags().BoolVar(&publish, "publish", false, "Publish a catalog-refreshed event per listing (default: false)")
}
