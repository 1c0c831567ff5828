package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mittwald/mittload/pkg/target"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveListenAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListenAddr, "listen", "l", "127.0.0.1:8080", "loopback address to listen on")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local practice target",
	Long: "This sub-command starts an HTTP server on a loopback address that can be used as target.\n\n" +
		"Routes:\n" +
		"  /                  200 OK\n" +
		"  /status/{code}     responds with the given status code\n" +
		"  /delay/{duration}  responds after the given duration (max 10s)\n" +
		"  /ws                WebSocket echo\n" +
		"  /stats             number of requests served per route",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := target.New(serveListenAddr)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Practice target listening on http://%s (press Ctrl+C to stop)\n", serveListenAddr)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return err
		}

		log.WithField("hits", srv.Stats().Total).Info("practice target stopped")
		return nil
	},
}
