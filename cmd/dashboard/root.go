package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Create call-center agents and campaigns step by step",
	Long: `dashboard runs the "Create Agent" and "New Campaign" wizards of the
call-center dashboard in a terminal, or replays them from an answers file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("flows-dir", "", "Directory with extra or overriding flow YAML files")
	rootCmd.PersistentFlags().String("log-level", "off", "Log level: off, debug, info, warn, error")
}
