package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lnr-dev/lnr/internal/action"
)

var updateCmd = &cobra.Command{
	Use:   "update <issue>",
	Short: "Update a Linear issue",
	Long: `Update a Linear issue's state, priority and/or assignee. Only the
fields given as flags are changed; everything else is left untouched.

State names are fuzzy-matched against the issue's team workflow, so
"done", "wip" or "in prog" work. Assignees are email addresses, the
literal "me", or --unassign to clear.

Example:
  lnr update ENG-123 --state done
  lnr update ENG-123 --priority 1 --assignee jane@acme.com
  lnr update ENG-123 --unassign`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := cmd.Flags().GetString("state")
		if err != nil {
			return err
		}
		assignee, err := cmd.Flags().GetString("assignee")
		if err != nil {
			return err
		}
		unassign, err := cmd.Flags().GetBool("unassign")
		if err != nil {
			return err
		}
		priority, err := cmd.Flags().GetInt("priority")
		if err != nil {
			return err
		}

		if unassign && assignee != "" {
			return fmt.Errorf("--assignee and --unassign are mutually exclusive")
		}

		p, err := flagPriority(priority)
		if err != nil {
			return err
		}

		req := &action.Request{
			Action:   action.ActionUpdate,
			ID:       args[0],
			State:    state,
			Priority: p,
		}
		if unassign {
			req.AssigneeSet = true
		} else if assignee != "" {
			req.AssigneeSet = true
			req.Assignee = &assignee
		}
		return runAction(cmd, req)
	},
}

func init() {
	updateCmd.Flags().StringP("state", "s", "", "New state name (fuzzy-matched)")
	updateCmd.Flags().StringP("assignee", "a", "", "New assignee email, or 'me'")
	updateCmd.Flags().Bool("unassign", false, "Clear the assignee")
	updateCmd.Flags().IntP("priority", "p", -1, "New priority (0-4)")
}
