package main

import (
	"github.com/spf13/cobra"

	"github.com/AI-call-center/modern-dashboard/internal/cli"
)

var graphCmd = &cobra.Command{
	Use:   "graph <flow>",
	Short: "Export the flow as a Mermaid diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flowsDir, _ := cmd.Flags().GetString("flows-dir")
		catalog, err := cli.LoadCatalog(flowsDir)
		if err != nil {
			return err
		}
		def, err := catalog.Get(args[0])
		if err != nil {
			return err
		}
		return cli.Graph(cmd.OutOrStdout(), def)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
