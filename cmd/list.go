package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd shows the owner's countdowns.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List countdowns sorted by target date",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	records, err := ctx.Repo.List(ctx.Config.OwnerKey)
	if err != nil {
		return err
	}
	return ctx.Formatter.PrintCountdowns(records, ctx.Clock.Today())
}
