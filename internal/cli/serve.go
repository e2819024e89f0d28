package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timeaxis/timeaxis/internal/web"
)

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.host/server.port)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the events API",
	Long:  "Serve the merged event list over HTTP (GET /api/events?start_year=&end_year=).",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		addr := serveAddr
		if addr == "" {
			addr = GetConfig().ServerAddr()
		}

		err = web.NewServer(st, addr).ListenAndServe(ctx)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	},
}
