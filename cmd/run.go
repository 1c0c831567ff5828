package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mittwald/mittload/internal/config"
	"github.com/spf13/cobra"
)

var runFlags loadFlags

func init() {
	rootCmd.AddCommand(runCmd)
	bindLoadFlags(runCmd, &runFlags, loadDefaults{
		requests: 50,
		threads:  5,
		timeout:  2 * time.Second,
		delay:    200 * time.Millisecond,
		limits:   config.DefaultLimits(),
	})
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Send throttled concurrent requests and report the results",
	Long: "This sub-command sends a bounded number of requests to a permitted target through a fixed-size worker pool,\n" +
		"pausing between submissions, and prints a summary of the response codes.",
	Example: "  mittload run --url http://127.0.0.1:8080/ --requests 20 --threads 2",
	RunE: func(cmd *cobra.Command, args []string) error {
		limits, err := loadLimits(config.DefaultLimits())
		if err != nil {
			return err
		}

		opts, err := runFlags.options(cmd)
		if err != nil {
			return err
		}

		lt := &loadTest{
			title:        "CONTROLLED LOAD TEST",
			summaryTitle: "TEST SUMMARY",
			limits:       limits,
			in:           cmd.InOrStdin(),
			out:          cmd.OutOrStdout(),
		}

		return runWithSignals(cmd, lt, opts)
	},
}

// runWithSignals runs lt until it finishes or SIGINT/SIGTERM is received. The
// closing message is printed in any case.
func runWithSignals(cmd *cobra.Command, lt *loadTest, opts config.Options) error {
	defer fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", closingMessage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return lt.Run(ctx, opts)
}
