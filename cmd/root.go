package cmd

import (
	"errors"
	"os"

	"github.com/mittwald/mittload/internal/config"
	"github.com/mittwald/mittload/pkg/gate"
	"github.com/mittwald/mittload/pkg/report"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var limitsFile string
var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&limitsFile, "limits", "", "HCL file that tightens the safety limits or extends the allow-list")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "log level (debug, info, warning, error)")
}

var rootCmd = &cobra.Command{
	Use:   "mittload",
	Short: "mittload - controlled load generator for systems you own",
	Long: "mittload sends a bounded number of throttled requests to a target you own or have explicit permission to test.\n" +
		"By default only 127.0.0.1 and localhost are accepted as targets.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}

		log.SetOutput(os.Stderr)
		log.SetLevel(level)
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, gate.ErrDenied) && !errors.Is(err, gate.ErrAborted) {
		report.NewRenderer(os.Stderr).Error("Error: %s", err)
	}

	os.Exit(exitCode(err))
}

// exitCode maps the result of a command to the process exit code. A declined
// confirmation is a regular end of the program.
func exitCode(err error) int {
	if err == nil || errors.Is(err, gate.ErrAborted) {
		return 0
	}
	return 1
}

func loadLimits(base config.Limits) (config.Limits, error) {
	return config.LoadLimits(limitsFile, base)
}
