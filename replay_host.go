//go:build !tinygo

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pulse/internal/trace"
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace-file>",
	Short: "Print a recorded round trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := trace.NewPrinter(cmd.OutOrStdout()).Replay(f)
		if err != nil {
			return fmt.Errorf("%s: after %d rounds: %w", args[0], n, err)
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().Bool("no-color", false, "disable colored output")
}
