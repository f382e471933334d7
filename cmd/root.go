// Package cmd provides the command-line interface for the lnr tool.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lnr-dev/lnr/internal/action"
	"github.com/lnr-dev/lnr/internal/config"
	"github.com/lnr-dev/lnr/internal/linear"
)

var rootCmd = &cobra.Command{
	Use:   "lnr",
	Short: "lnr works with Linear issues from the command line",
	Long: `lnr is a command-line tool for working with Linear issues. It can search,
read, update, comment on and create issues, and run raw GraphQL queries
against the Linear API. The same operations are available to MCP clients
through 'lnr serve'.

The API key is resolved from --api-key, then LINEAR_API_KEY_CMD, then
LINEAR_API_KEY, then any LINEAR_-prefixed variable naming a key or token.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-key", "", "Linear API key (overrides environment)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(graphqlCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newDispatcher builds the client, catalog and dispatcher for one invocation.
func newDispatcher(cmd *cobra.Command) (*action.Dispatcher, *linear.Catalog, error) {
	apiKey, err := cmd.Flags().GetString("api-key")
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadConfig(apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	client, err := linear.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	catalog := linear.NewCatalog(client)
	return action.NewDispatcher(client, catalog), catalog, nil
}

// flagPriority validates an optional priority flag; -1 means unset.
func flagPriority(p int) (*int, error) {
	if p < 0 {
		return nil, nil
	}
	if !linear.ValidPriority(p) {
		return nil, fmt.Errorf("priority must be between 0 and 4, got %d", p)
	}
	return &p, nil
}

// runAction dispatches one request and prints the result to stdout.
func runAction(cmd *cobra.Command, req *action.Request) error {
	dispatcher, _, err := newDispatcher(cmd)
	if err != nil {
		return err
	}

	result, err := dispatcher.Dispatch(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}
