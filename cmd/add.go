package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// addCmd creates a new countdown.
var addCmd = &cobra.Command{
	Use:     "add NAME DATE [REMARK...]",
	Aliases: []string{"a", "new"},
	Short:   "Add a countdown",
	Long: `Add a countdown toward a target date.

Accepted date formats (tried in order, first match wins):
  2026-06-20    ISO date
  2026/06/20    slash-separated
  2026年6月20日  localized full date
  06-20         month-day, completed with the current year
  6月20日        localized month-day

Examples:
  countdown add "Final exam" 2026-06-20
  countdown add Birthday 12-31 "cake day"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	date := args[1]
	remark := strings.Join(args[2:], " ")

	msg, err := ctx.Handler.Add(ctx.Config.OwnerKey, name, date, remark)
	return printResult(msg, err)
}
