package cmd

import (
	"github.com/spf13/cobra"
)

// deleteCmd removes a countdown by id or name.
var deleteCmd = &cobra.Command{
	Use:     "delete ID_OR_NAME",
	Aliases: []string{"rm", "del", "remove"},
	Short:   "Delete a countdown",
	Long: `Delete a countdown by its numeric id or by name.

Examples:
  countdown delete 3
  countdown delete Birthday`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	msg, err := ctx.Handler.Delete(ctx.Config.OwnerKey, args[0])
	return printResult(msg, err)
}
