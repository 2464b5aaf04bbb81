package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kihana2077/countdown/internal/commands"
)

// queryCmd describes a single countdown by id or name.
var queryCmd = &cobra.Command{
	Use:     "query ID_OR_NAME",
	Aliases: []string{"q", "find"},
	Short:   "Show one countdown by id or name",
	Long: `Look up a countdown by id or name and show its date and remaining days.

Examples:
  countdown query Birthday
  countdown query 3
  countdown query "Final exam"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

// recentCmd lists countdowns due soon.
var recentCmd = &cobra.Command{
	Use:   "recent [DAYS]",
	Short: "List countdowns within the next DAYS days (default 30)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(recentCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	msg, err := ctx.Handler.FindAndDescribe(ctx.Config.OwnerKey, args[0])
	return printResult(msg, err)
}

func runRecent(cmd *cobra.Command, args []string) error {
	days := commands.DefaultRecentDays
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return printResult("DAYS must be a number.", nil)
		}
		days = n
	}

	msg, err := ctx.Handler.Recent(ctx.Config.OwnerKey, days)
	return printResult(msg, err)
}
