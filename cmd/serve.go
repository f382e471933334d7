package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lnr-dev/lnr/internal/logging"
	"github.com/lnr-dev/lnr/internal/mcp"
)

// serverVersion is reported to MCP clients during initialize.
const serverVersion = "1.0.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Run a Model Context Protocol server over stdin/stdout, exposing the
issue operations as a single tool for agent hosts. Reference data (teams,
workflow states, the authenticated user) is cached for the lifetime of
the process.

Example (Claude Desktop / MCP host config):
  lnr serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dispatcher, _, err := newDispatcher(cmd)
		if err != nil {
			return err
		}

		server := mcp.NewServer("lnr", serverVersion, dispatcher, logging.GetLogger(), os.Stdin, os.Stdout)
		return server.Run()
	},
}
