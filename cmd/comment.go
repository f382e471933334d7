package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lnr-dev/lnr/internal/action"
)

var commentCmd = &cobra.Command{
	Use:   "comment <issue> [body]",
	Short: "Comment on a Linear issue",
	Long: `Add a comment to a Linear issue. The body may be given as the
remaining arguments or with --body.

Example:
  lnr comment ENG-123 "Fixed in the next release"
  lnr comment ENG-123 --body "Fixed in the next release"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := cmd.Flags().GetString("body")
		if err != nil {
			return err
		}
		if body == "" {
			body = strings.Join(args[1:], " ")
		}
		if strings.TrimSpace(body) == "" {
			return fmt.Errorf("comment body is required")
		}

		return runAction(cmd, &action.Request{
			Action: action.ActionComment,
			ID:     args[0],
			Body:   body,
		})
	},
}

func init() {
	commentCmd.Flags().StringP("body", "b", "", "Comment body")
}
