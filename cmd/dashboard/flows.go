package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/AI-call-center/modern-dashboard/internal/cli"
	"github.com/AI-call-center/modern-dashboard/internal/logging"
)

var flowsCmd = &cobra.Command{
	Use:   "flows",
	Short: "List the available flows",
	Long: `Lists the builtin flows and those of --flows-dir. With --watch the list is
printed again every time a flow file in --flows-dir changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flowsDir, _ := cmd.Flags().GetString("flows-dir")
		watch, _ := cmd.Flags().GetBool("watch")

		catalog, err := cli.LoadCatalog(flowsDir)
		if err != nil {
			return err
		}
		if err := cli.ListFlows(cmd.OutOrStdout(), catalog); err != nil {
			return err
		}
		if !watch {
			return nil
		}
		if flowsDir == "" {
			return errors.New("--watch needs --flows-dir")
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		logLevel, _ := cmd.Flags().GetString("log-level")
		logger := logging.NewNop()
		if lvl, err := logging.ParseLevel(logLevel); err == nil && logLevel != "off" {
			logger = logging.New(cmd.ErrOrStderr(), lvl)
		}

		return cli.WatchFlows(sigCtx, flowsDir, logger, cli.ReloadPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	},
}

func init() {
	rootCmd.AddCommand(flowsCmd)

	flowsCmd.Flags().BoolP("watch", "w", false, "Reload and list again when flow files change")
}
