package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lnr-dev/lnr/internal/linear"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams and their workflow states",
	Long: `List every team in the workspace with its key, name and workflow
state names. Useful for finding valid --team and --state values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, catalog, err := newDispatcher(cmd)
		if err != nil {
			return err
		}

		teams, err := catalog.Teams(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), linear.FormatTeams(teams))
		return nil
	},
}
