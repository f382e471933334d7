package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lnr-dev/lnr/internal/action"
)

var graphqlCmd = &cobra.Command{
	Use:   "graphql <query>",
	Short: "Run a raw GraphQL query against Linear",
	Long: `Run a raw GraphQL query or mutation against the Linear API. This is
the escape valve for anything the other commands don't cover; the query
and its result are passed through untyped.

Example:
  lnr graphql 'query { viewer { id name } }'
  lnr graphql 'query($id: String!) { issue(id: $id) { title } }' --variables '{"id":"ENG-1"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		variablesJSON, err := cmd.Flags().GetString("variables")
		if err != nil {
			return err
		}

		var variables map[string]any
		if variablesJSON != "" {
			if err := json.Unmarshal([]byte(variablesJSON), &variables); err != nil {
				return fmt.Errorf("invalid --variables JSON: %w", err)
			}
		}

		return runAction(cmd, &action.Request{
			Action:    action.ActionGraphQL,
			GraphQL:   args[0],
			Variables: variables,
		})
	},
}

func init() {
	graphqlCmd.Flags().String("variables", "", "Query variables as a JSON object")
}
