package cmd

import (
	"time"

	"github.com/mittwald/mittload/internal/config"
	"github.com/spf13/cobra"
)

var simulateFlags loadFlags

func init() {
	rootCmd.AddCommand(simulateCmd)
	bindLoadFlags(simulateCmd, &simulateFlags, loadDefaults{
		target:   "127.0.0.1",
		requests: 5,
		threads:  1,
		timeout:  5 * time.Second,
		delay:    1 * time.Second,
		limits:   config.SimulatorLimits(),
	})
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Send requests one after another and show the details of every response",
	Long: "This sub-command sends a small number of sequential requests and prints latency, size and headers\n" +
		"of every response. It is meant for exploring how a protocol behaves.",
	Example: "  mittload simulate --target 127.0.0.1 --port 8080 --protocol http --requests 5",
	RunE: func(cmd *cobra.Command, args []string) error {
		limits, err := loadLimits(config.SimulatorLimits())
		if err != nil {
			return err
		}

		opts, err := simulateFlags.options(cmd)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("yes") {
			opts.AssumeYes = true
		}
		if !cmd.Flags().Changed("verbose") {
			opts.Verbose = true
		}

		lt := &loadTest{
			title:        "NETWORK PROTOCOL SIMULATOR",
			summaryTitle: "SIMULATION SUMMARY",
			limits:       limits,
			in:           cmd.InOrStdin(),
			out:          cmd.OutOrStdout(),
		}

		return runWithSignals(cmd, lt, opts)
	},
}
