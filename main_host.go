//go:build !tinygo

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pulse/internal/buildinfo"
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Cooperative eight-slot task scheduler",
	Long: `pulse runs the eight-slot demo system on the host: timer and UART
interrupts are simulated, task output goes to stdout, diagnostics to stderr.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Long())
	},
}

func main() {
	rootCmd.Version = buildinfo.Short()
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
