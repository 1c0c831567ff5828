package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  string
	BuiltAt string
)

func init() {
	rootCmd.AddCommand(version)
}

var version = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mittload",
	Long:  `All software has versions. This is mittload's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mittload load generator, version %s (commit %s), built at %s\n", Version, Commit, BuiltAt)
	},
}

func userAgent() string {
	return "mittload/" + Version
}
