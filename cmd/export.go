package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openswoop/syllabank/pkg/database"
	"github.com/openswoop/syllabank/pkg/report"
)

var exportOut string
var toBigQuery bool

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the course list to CSV or BigQuery",
	Long: `Writes every stored course as one CSV row. With --bigquery the
rows are merged into the courses table of BIGQUERY_DATASET instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		items, err := db.ListAll(cmd.Context())
		if err != nil {
			return err
		}

		if !toBigQuery {
			if err := report.WriteCourseList(exportOut, items); err != nil {
				return err
			}
			logger.Info("wrote course list", zap.String("file", exportOut), zap.Int("count", len(items)))
			return nil
		}

		if cfg.GCPProject == "" {
			return fmt.Errorf("--bigquery requires GCP_PROJECT")
		}
		bq, err := database.NewBigQuery(cmd.Context(), cfg.GCPProject, cfg.BigQueryDataset)
		if err != nil {
			return fmt.Errorf("failed to connect to bigquery: %w", err)
		}
		defer bq.Close()
		if err := bq.InsertCourseList(cmd.Context(), items); err != nil {
			return fmt.Errorf("failed to insert course list: %w", err)
		}
		logger.Info("merged course list into bigquery",
			zap.String("dataset", cfg.BigQueryDataset), zap.Int("count", len(items)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "courses", "CSV file name")
	exportCmd.Flags().BoolVar(&toBigQuery, "bigquery", false, "Send the rows to BigQuery (default: false)")
}
