// Package cli implements the overlook command line.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "overlook",
	Short: "Time-travelling debugger for terminal applications",
	Long: `Overlook runs an application under a debugger that records every
message, lets you step back through the history of models and inspect
them, and exports or imports the history as a file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("overlook version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
