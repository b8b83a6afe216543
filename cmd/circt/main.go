// Package main implements the circt CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dobios/circt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "circt",
	Short: "Hardware IR compiler and pass driver",
	Long:  `circt parses FIRRTL-like hardware descriptions and runs transformation pipelines over them`,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(optCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(passesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-pass timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output terminal.
func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return flag == "on" || (flag == "auto" && isTerminal(f))
}
