package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/rivalry/internal/ingest"
	"github.com/ppiankov/rivalry/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question API over HTTP",
	Long: `Serve starts the HTTP API:
  POST /ask            {"question": "..."}
  GET  /categories
  GET  /categories/{name}
  POST /refresh-data
  POST /initialize-db
  GET  /health

An empty store is filled before the server starts. With --refresh-cron
the data is refreshed on a schedule.

Example:
  rivalry serve --addr :5000
  rivalry serve --refresh-cron "@every 6h"`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default: server.addr)")
	serveCmd.Flags().String("refresh-cron", "", "cron schedule for data refresh, e.g. \"0 */6 * * *\"")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.refresh_cron", serveCmd.Flags().Lookup("refresh-cron"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.ensureData(ctx); err != nil {
		return err
	}

	srv := server.New(a.engine, a.facts, a.refresher, a.cfg.Server, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})
	if spec := a.cfg.Server.RefreshCron; spec != "" {
		g.Go(func() error {
			return ingest.RunScheduled(gctx, spec, a.refresher, a.logger)
		})
	}

	return g.Wait()
}
