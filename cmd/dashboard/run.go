package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AI-call-center/modern-dashboard/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <flow>",
	Short: "Run a wizard",
	Long: `Runs a flow (agent, campaign, quick-agent or one from --flows-dir) until it
is submitted or cancelled, then prints the created configuration.

Without --answers the wizard is interactive and needs a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flowsDir, _ := cmd.Flags().GetString("flows-dir")
		logLevel, _ := cmd.Flags().GetString("log-level")
		answers, _ := cmd.Flags().GetString("answers")
		output, _ := cmd.Flags().GetString("output")
		withMetrics, _ := cmd.Flags().GetBool("metrics")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		opts := cli.RunOptions{
			FlowID:      args[0],
			FlowsDir:    flowsDir,
			AnswersPath: answers,
			Output:      output,
			LogLevel:    logLevel,
			Stdout:      cmd.OutOrStdout(),
			Stderr:      cmd.ErrOrStderr(),
		}
		if withMetrics {
			opts.Metrics = cmd.ErrOrStderr()
		}

		_, err := cli.Execute(sigCtx, opts)
		if err != nil && sigCtx.Signal() != nil {
			return nil // Exit 0 for interruptions
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("answers", "a", "", "Replay moves from a YAML answers file instead of prompting")
	runCmd.Flags().StringP("output", "o", "text", "Output format of the created configuration: text, json or yaml")
	runCmd.Flags().Bool("metrics", false, "Print the run's Prometheus metrics to stderr when the wizard closes")
}
