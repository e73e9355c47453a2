package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dashboard "github.com/AI-call-center/modern-dashboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dashboard version %s\n", dashboard.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
