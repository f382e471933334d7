package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lnr-dev/lnr/internal/action"
)

var getCmd = &cobra.Command{
	Use:   "get <issue>",
	Short: "Show one Linear issue",
	Long: `Show one Linear issue with its five most recent comments.

The issue may be referenced by short code (ENG-123, any casing), by its
Linear URL, or by its identifier.

Example:
  lnr get ENG-123
  lnr get https://linear.app/acme/issue/ENG-123/fix-the-thing`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, &action.Request{
			Action: action.ActionGet,
			ID:     args[0],
		})
	},
}
