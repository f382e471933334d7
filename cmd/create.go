package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lnr-dev/lnr/internal/action"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a Linear issue",
	Long: `Create a Linear issue. Title and team are required; the team may be
given by key or name. Omitted optional fields are not sent.

Example:
  lnr create --team ENG --title "Payment webhook retries forever"
  lnr create -t ENG --title "Add dark mode" --priority 3 --body "Details..."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, err := cmd.Flags().GetString("title")
		if err != nil {
			return err
		}
		team, err := cmd.Flags().GetString("team")
		if err != nil {
			return err
		}
		body, err := cmd.Flags().GetString("body")
		if err != nil {
			return err
		}
		labels, err := cmd.Flags().GetStringArray("label")
		if err != nil {
			return err
		}
		priority, err := cmd.Flags().GetInt("priority")
		if err != nil {
			return err
		}

		if title == "" {
			return fmt.Errorf("--title is required")
		}
		if team == "" {
			return fmt.Errorf("--team is required")
		}
		p, err := flagPriority(priority)
		if err != nil {
			return err
		}

		return runAction(cmd, &action.Request{
			Action:   action.ActionCreate,
			Title:    title,
			Team:     team,
			Body:     body,
			Labels:   labels,
			Priority: p,
		})
	},
}

func init() {
	createCmd.Flags().String("title", "", "Issue title (required)")
	createCmd.Flags().StringP("team", "t", "", "Team key or name (required)")
	createCmd.Flags().StringP("body", "b", "", "Issue description")
	createCmd.Flags().StringArrayP("label", "l", nil, "Label name to attach (repeatable)")
	createCmd.Flags().IntP("priority", "p", -1, "Priority (0-4)")
}
