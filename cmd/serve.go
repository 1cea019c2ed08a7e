package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openswoop/syllabank/pkg/ingest"
	"github.com/openswoop/syllabank/pkg/monitoring"
	"github.com/openswoop/syllabank/pkg/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Starts the read API on SERVER_PORT. POST /api/sync ingests the
configured listings in the background.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		metrics := monitoring.NewMetrics(nil)
		pipeline := ingest.NewPipeline(collector, db, metrics, logger)
		srv := server.NewServer(cfg.ServerPort, cfg.ListingURLs, db, pipeline, metrics, logger)

		// Graceful Shutdown
		errc := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()
		logger.Info("server started", zap.String("port", cfg.ServerPort))

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errc:
			return err
		case <-quit:
		}

		logger.Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		logger.Info("server exiting")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
