// Package main provides the command-line interface for the virtual
// memory translator.
package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vmtranslator",
	Short: "vmtranslator replays a virtual-address trace against a hierarchical page-table translator.",
	Long: `vmtranslator loads a translator geometry from a JSON config file, ` +
		`replays a trace of read/write operations against it, and reports the ` +
		`resulting fault/eviction/reclaim counters.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately, then exits through atexit so the registered handlers
// (trace flush, swap close) run on both success and failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
