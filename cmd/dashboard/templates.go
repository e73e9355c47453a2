package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AI-call-center/modern-dashboard/internal/cli"
	"github.com/AI-call-center/modern-dashboard/pkg/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [query]",
	Short: "Search greeting, prompt and first-message templates",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		tags, _ := cmd.Flags().GetStringSlice("tag")

		catalog, err := templates.Builtin()
		if err != nil {
			return err
		}
		q := templates.Query{Kind: templates.Kind(kind), Tags: tags}
		if len(args) > 0 {
			q.Text = args[0]
		}
		n, err := cli.SearchTemplates(cmd.OutOrStdout(), catalog, q)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "no templates match; known tags: %s\n", strings.Join(catalog.Tags(), ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesCmd.Flags().String("kind", "", "Only templates of this kind: greeting, prompt or first-message")
	templatesCmd.Flags().StringSlice("tag", nil, "Only templates carrying one of these tags")
}
