package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/lnr-dev/lnr/internal/action"
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search Linear issues",
	Long: `Search Linear issues.

With free text, runs a full-text search. With filter flags, builds a
conjunctive filter from only the flags given. With neither, lists your
open issues (not completed or canceled).

Example:
  lnr search "payment webhook"
  lnr search --assignee me --state "In Progress"
  lnr search --team ENG --priority 1`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		assignee, err := cmd.Flags().GetString("assignee")
		if err != nil {
			return err
		}
		state, err := cmd.Flags().GetString("state")
		if err != nil {
			return err
		}
		team, err := cmd.Flags().GetString("team")
		if err != nil {
			return err
		}
		priority, err := cmd.Flags().GetInt("priority")
		if err != nil {
			return err
		}
		if _, err := flagPriority(priority); err != nil {
			return err
		}

		req := buildSearchRequest(strings.Join(args, " "), assignee, state, team, priority)
		return runAction(cmd, req)
	},
}

// buildSearchRequest translates search arguments into one action request.
// Free text wins over filter flags; a priority of -1 means unset.
func buildSearchRequest(text, assignee, state, team string, priority int) *action.Request {
	req := &action.Request{Action: action.ActionSearch}

	if text != "" {
		req.Query = text
		return req
	}

	if assignee == "" && state == "" && team == "" && priority < 0 {
		return req
	}

	filter := &action.Filter{
		Assignee: assignee,
		State:    state,
		Team:     team,
	}
	if priority >= 0 {
		filter.Priority = &priority
	}
	req.Filter = filter
	return req
}

func init() {
	searchCmd.Flags().StringP("assignee", "a", "", "Filter by assignee email, or 'me'")
	searchCmd.Flags().StringP("state", "s", "", "Filter by exact state name")
	searchCmd.Flags().StringP("team", "t", "", "Filter by team key or name")
	searchCmd.Flags().IntP("priority", "p", -1, "Filter by priority (0-4)")
}
