package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AI-call-center/modern-dashboard/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check flow files for consistency",
	Long:  `Parses each flow file and reports missing defaults, shared slices, duplicate steps and malformed rules.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			def, err := cli.ValidateFile(path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: flow %q with %d steps is valid ✅\n", path, def.ID, def.Len())
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d flows are invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
